package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=savings_ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"

const (
	defaultHTTPAddr             = ":8080"
	defaultCurrency             = "CDF"
	defaultDisplayOffsetHours   = 1
	defaultWithdrawalFeePercent = "4"
	defaultMonthlyFeePercent    = "5"
	defaultMonthlyFeeWindow     = 30 * 24 * time.Hour
	defaultLedgerMaxAttempts    = 3
	defaultLedgerLockTimeout    = 5 * time.Second
	defaultKafkaLedgerTopic     = "ledger-entries"
	defaultKafkaPublishTimeout  = 2 * time.Second
	defaultAdminUsername        = "admin"
	defaultDirectorUsername     = "director"
	defaultLogLevel             = "info"
)

type Config struct {
	HTTPAddr             string
	DatabaseDSN          string
	Storage              string
	Currency             string
	DisplayLocation      *time.Location
	WithdrawalFeePercent decimal.Decimal
	MonthlyFeePercent    decimal.Decimal
	MonthlyFeeWindow     time.Duration
	LedgerMaxAttempts    int
	LedgerLockTimeout    time.Duration
	KafkaBrokers         []string
	KafkaLedgerTopic     string
	KafkaPublishTimeout  time.Duration
	AdminUsername        string
	AdminPassword        string
	DirectorUsername     string
	DirectorPassword     string
	LogLevel             string
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	storage := strings.ToLower(envOrDefault("STORAGE", StoragePostgres))
	if storage != StoragePostgres && storage != StorageMemory {
		return Config{}, fmt.Errorf("STORAGE must be %q or %q", StoragePostgres, StorageMemory)
	}

	offsetHours, err := envInt("DISPLAY_UTC_OFFSET_HOURS", defaultDisplayOffsetHours)
	if err != nil {
		return Config{}, err
	}
	if offsetHours < -12 || offsetHours > 14 {
		return Config{}, fmt.Errorf("DISPLAY_UTC_OFFSET_HOURS out of range: %d", offsetHours)
	}

	withdrawalFee, err := envPercent("WITHDRAWAL_FEE_PERCENT", defaultWithdrawalFeePercent)
	if err != nil {
		return Config{}, err
	}
	monthlyFee, err := envPercent("MONTHLY_FEE_PERCENT", defaultMonthlyFeePercent)
	if err != nil {
		return Config{}, err
	}

	window, err := envDuration("MONTHLY_FEE_WINDOW", defaultMonthlyFeeWindow)
	if err != nil {
		return Config{}, err
	}
	if window <= 0 {
		return Config{}, fmt.Errorf("MONTHLY_FEE_WINDOW must be positive")
	}

	maxAttempts, err := envInt("LEDGER_MAX_ATTEMPTS", defaultLedgerMaxAttempts)
	if err != nil {
		return Config{}, err
	}
	if maxAttempts < 1 {
		return Config{}, fmt.Errorf("LEDGER_MAX_ATTEMPTS must be at least 1")
	}

	lockTimeout, err := envDuration("LEDGER_LOCK_TIMEOUT", defaultLedgerLockTimeout)
	if err != nil {
		return Config{}, err
	}

	publishTimeout, err := envDuration("KAFKA_PUBLISH_TIMEOUT", defaultKafkaPublishTimeout)
	if err != nil {
		return Config{}, err
	}
	if publishTimeout <= 0 {
		return Config{}, fmt.Errorf("KAFKA_PUBLISH_TIMEOUT must be positive")
	}

	return Config{
		HTTPAddr:             envOrDefault("HTTP_ADDR", defaultHTTPAddr),
		DatabaseDSN:          normalizeConnectionString(envOrDefault("DATABASE_DSN", defaultConnectionString)),
		Storage:              storage,
		Currency:             strings.ToUpper(envOrDefault("CURRENCY", defaultCurrency)),
		DisplayLocation:      DisplayZone(offsetHours),
		WithdrawalFeePercent: withdrawalFee,
		MonthlyFeePercent:    monthlyFee,
		MonthlyFeeWindow:     window,
		LedgerMaxAttempts:    maxAttempts,
		LedgerLockTimeout:    lockTimeout,
		KafkaBrokers:         splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaLedgerTopic:     envOrDefault("KAFKA_LEDGER_TOPIC", defaultKafkaLedgerTopic),
		KafkaPublishTimeout:  publishTimeout,
		AdminUsername:        envOrDefault("ADMIN_USERNAME", defaultAdminUsername),
		AdminPassword:        strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
		DirectorUsername:     envOrDefault("DIRECTOR_USERNAME", defaultDirectorUsername),
		DirectorPassword:     strings.TrimSpace(os.Getenv("DIRECTOR_PASSWORD")),
		LogLevel:             envOrDefault("LOG_LEVEL", defaultLogLevel),
	}, nil
}

// DisplayZone is the fixed offset used when rendering instants to people.
func DisplayZone(offsetHours int) *time.Location {
	name := fmt.Sprintf("UTC%+d", offsetHours)
	if offsetHours == 0 {
		name = "UTC"
	}
	return time.FixedZone(name, offsetHours*60*60)
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return v, nil
}

func envPercent(key, fallback string) (decimal.Decimal, error) {
	raw := envOrDefault(key, fallback)
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be numeric: %w", key, err)
	}
	if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, fmt.Errorf("%s must be between 0 and 100", key)
	}
	return v, nil
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
