package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmountAcceptsCommaSeparator(t *testing.T) {
	amount, err := ParseAmount(" 12,50 ")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if amount.String() != "12.50" {
		t.Fatalf("expected 12.50, got %s", amount)
	}
}

func TestParseAmountRoundsHalfUp(t *testing.T) {
	amount, err := ParseAmount("10.005")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if amount.String() != "10.01" {
		t.Fatalf("expected 10.01, got %s", amount)
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "abc", "1.2.3", "1,234.50"} {
		if _, err := ParseAmount(raw); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for %q, got %v", raw, err)
		}
	}
}

func TestParsePositiveAmountRejectsZeroAndNegative(t *testing.T) {
	for _, raw := range []string{"0", "-5", "0.004"} {
		if _, err := ParsePositiveAmount(raw); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for %q, got %v", raw, err)
		}
	}
}

func TestMoneyArithmeticRoundsEachStep(t *testing.T) {
	rate := decimal.RequireFromString("0.04")
	fee := MustMoney("97.00").MulRate(rate)
	if fee.String() != "3.88" {
		t.Fatalf("expected fee 3.88, got %s", fee)
	}

	third := MustMoney("10.00").MulRate(decimal.RequireFromString("0.3333"))
	if third.String() != "3.33" {
		t.Fatalf("expected 3.33, got %s", third)
	}
	if got := third.Add(third).Add(third); got.String() != "9.99" {
		t.Fatalf("expected per-step rounding to give 9.99, got %s", got)
	}
}

func TestMoneyJSONRoundTripUsesFixedString(t *testing.T) {
	raw, err := json.Marshal(MustMoney("5"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"5.00"` {
		t.Fatalf("expected \"5.00\", got %s", raw)
	}

	var m Money
	if err := json.Unmarshal([]byte(`"7,25"`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !m.Equal(MustMoney("7.25")) {
		t.Fatalf("expected 7.25, got %s", m)
	}
}

func TestMoneyScanAndValue(t *testing.T) {
	var m Money
	if err := m.Scan([]byte("100.456")); err != nil {
		t.Fatalf("scan: %v", err)
	}
	v, err := m.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != "100.46" {
		t.Fatalf("expected 100.46, got %v", v)
	}
}

func TestMoneySigned(t *testing.T) {
	if got := MustMoney("25").Signed(); got != "+25.00" {
		t.Fatalf("expected +25.00, got %s", got)
	}
	if got := MustMoney("-4").Signed(); got != "-4.00" {
		t.Fatalf("expected -4.00, got %s", got)
	}
}
