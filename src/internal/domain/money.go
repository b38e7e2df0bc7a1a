package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point amount with exactly two fractional digits.
// Every constructor and arithmetic method rounds half-up to the cent, so
// rounding happens per operation and never only at output time.
type Money struct {
	d decimal.Decimal
}

var ZeroMoney = Money{}

func NewMoney(d decimal.Decimal) Money {
	return Money{d: d.Round(2)}
}

func NewMoneyFromInt(units int64) Money {
	return Money{d: decimal.NewFromInt(units)}
}

// MustMoney parses a canonical decimal string and panics on failure.
// Intended for constants and tests.
func MustMoney(value string) Money {
	m, err := ParseAmount(value)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseAmount is the single boundary where free text becomes Money.
// Administrative forms may use a comma as decimal separator.
func ParseAmount(raw string) (Money, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ZeroMoney, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}

	value = strings.ReplaceAll(value, ",", ".")
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return ZeroMoney, fmt.Errorf("%w: amount must be numeric", ErrInvalidAmount)
	}

	return NewMoney(parsed), nil
}

// ParsePositiveAmount parses raw and rejects anything that rounds to zero or below.
func ParsePositiveAmount(raw string) (Money, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return ZeroMoney, err
	}
	if !amount.IsPositive() {
		return ZeroMoney, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	}

	return amount, nil
}

func (m Money) Add(other Money) Money {
	return NewMoney(m.d.Add(other.d))
}

func (m Money) Sub(other Money) Money {
	return NewMoney(m.d.Sub(other.d))
}

func (m Money) MulRate(rate decimal.Decimal) Money {
	return NewMoney(m.d.Mul(rate))
}

func (m Money) Neg() Money {
	return Money{d: m.d.Neg()}
}

func (m Money) Abs() Money {
	return Money{d: m.d.Abs()}
}

func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

func (m Money) Equal(other Money) bool {
	return m.d.Equal(other.d)
}

func (m Money) LessThan(other Money) bool {
	return m.d.LessThan(other.d)
}

func (m Money) GreaterThan(other Money) bool {
	return m.d.GreaterThan(other.d)
}

func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

func (m Money) IsZero() bool {
	return m.d.IsZero()
}

func (m Money) Decimal() decimal.Decimal {
	return m.d
}

func (m Money) String() string {
	return m.d.StringFixed(2)
}

// Signed renders the amount with an explicit sign, e.g. "+25.00" or "-4.00".
func (m Money) Signed() string {
	if m.d.IsNegative() {
		return m.String()
	}
	return "+" + m.String()
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	parsed, err := ParseAmount(raw)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("scan money: %w", err)
	}

	*m = NewMoney(d)
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.d.StringFixed(2), nil
}
