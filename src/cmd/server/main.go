package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stimlink/savings-ledger/src/internal/adapter/events/kafka"
	"github.com/stimlink/savings-ledger/src/internal/adapter/http/controller"
	"github.com/stimlink/savings-ledger/src/internal/adapter/http/middleware"
	"github.com/stimlink/savings-ledger/src/internal/adapter/http/router"
	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/memory"
	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/postgres"
	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/config"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
	"github.com/stimlink/savings-ledger/src/internal/usecase/services"
)

type repositories struct {
	accounts      repo_interfaces.AccountRepository
	ledger        repo_interfaces.LedgerStore
	notifications repo_interfaces.NotificationRepository
	news          repo_interfaces.NewsRepository
	contacts      repo_interfaces.ContactRepository
	staff         repo_interfaces.StaffRepository
	close         func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("server stopped with error", err, nil)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.close(); err != nil {
			logger.Error("close storage failed", err, nil)
		}
	}()

	ledgerOpts := []services.LedgerOption{
		services.WithLedgerRetry(cfg.LedgerMaxAttempts, 50*time.Millisecond),
		services.WithDisplayLocation(cfg.DisplayLocation),
	}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaLedgerTopic, cfg.KafkaPublishTimeout)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("close kafka publisher failed", err, nil)
			}
		}()
		ledgerOpts = append(ledgerOpts, services.WithEventPublisher(publisher), services.WithPublishTimeout(cfg.KafkaPublishTimeout))
		logger.Info("ledger events enabled", logger.Fields{
			"brokers": cfg.KafkaBrokers,
			"topic":   cfg.KafkaLedgerTopic,
		})
	}

	fees := services.NewFeePolicy(cfg.WithdrawalFeePercent, cfg.MonthlyFeePercent, cfg.MonthlyFeeWindow)
	ledgerService := services.NewLedgerService(repos.ledger, fees, cfg.Currency, ledgerOpts...)
	monthlyFees := services.NewMonthlyFeeScheduler(ledgerService)

	accountService := services.NewAccountService(repos.accounts, repos.notifications, repos.news, monthlyFees, cfg.Currency, cfg.DisplayLocation)
	statementService := services.NewStatementService(repos.accounts, repos.ledger, cfg.Currency, cfg.DisplayLocation)
	notificationService := services.NewNotificationService(repos.accounts, repos.notifications)
	newsService := services.NewNewsService(repos.news, cfg.DisplayLocation)
	contactService := services.NewContactService(repos.contacts, cfg.DisplayLocation)
	adminService := services.NewAdminService(repos.accounts, repos.contacts, repos.notifications, cfg.Currency, cfg.DisplayLocation)
	directorService := services.NewDirectorService(repos.accounts, repos.notifications)
	chargesService := services.NewChargesService(fees, cfg.Currency)
	staffService := services.NewStaffService(repos.staff)

	if err := staffService.EnsureStaff(ctx, domain.StaffRoleAdmin, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if err := staffService.EnsureStaff(ctx, domain.StaffRoleDirector, cfg.DirectorUsername, cfg.DirectorPassword); err != nil {
		return fmt.Errorf("bootstrap director: %w", err)
	}

	handler := router.New(router.Controllers{
		Account:   controller.NewAccountController(accountService),
		Ledger:    controller.NewLedgerController(ledgerService),
		Admin:     controller.NewAdminController(adminService, notificationService),
		Director:  controller.NewDirectorController(newsService, directorService),
		Statement: controller.NewStatementController(statementService),
		News:      controller.NewNewsController(newsService),
		Contact:   controller.NewContactController(contactService),
		Charges:   controller.NewChargesController(chargesService),
	}, router.AuthMiddlewares{
		User:     middleware.UserAuth(accountService),
		Admin:    middleware.StaffAuth(staffService, domain.StaffRoleAdmin),
		Director: middleware.StaffAuth(staffService, domain.StaffRoleDirector),
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", logger.Fields{
			"addr":     cfg.HTTPAddr,
			"storage":  cfg.Storage,
			"currency": cfg.Currency,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("http server shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("http server stopped", nil)
	return nil
}

func openRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Info("using in-memory storage", nil)
		db := memory.NewDB()
		return repositories{
			accounts:      memory.NewAccountRepository(db),
			ledger:        memory.NewLedgerStore(db),
			notifications: memory.NewNotificationRepository(db),
			news:          memory.NewNewsRepository(db),
			contacts:      memory.NewContactRepository(db),
			staff:         memory.NewStaffRepository(db),
			close:         func() error { return nil },
		}, nil
	}

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(openCtx, cfg.DatabaseDSN); err != nil {
		return repositories{}, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations applied", nil)

	db, err := postgres.Open(openCtx, cfg.DatabaseDSN)
	if err != nil {
		return repositories{}, err
	}

	return repositories{
		accounts:      postgres.NewAccountRepository(db),
		ledger:        postgres.NewLedgerStore(db, cfg.LedgerLockTimeout),
		notifications: postgres.NewNotificationRepository(db),
		news:          postgres.NewNewsRepository(db),
		contacts:      postgres.NewContactRepository(db),
		staff:         postgres.NewStaffRepository(db),
		close:         db.Close,
	}, nil
}
