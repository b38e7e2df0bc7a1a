package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/usecase/services"
)

func TestFeePolicyWithdrawalFee(t *testing.T) {
	policy := services.DefaultFeePolicy()

	cases := []struct {
		gross string
		fee   string
		total string
	}{
		{"100", "4.00", "104.00"},
		{"97", "3.88", "100.88"},
		{"0.13", "0.01", "0.14"},
		{"0.12", "0.00", "0.12"},
		{"12.5", "0.50", "13.00"},
	}

	for _, tc := range cases {
		gross := domain.MustMoney(tc.gross)
		if got := policy.WithdrawalFee(gross).String(); got != tc.fee {
			t.Errorf("WithdrawalFee(%s): expected %s, got %s", tc.gross, tc.fee, got)
		}
		if got := policy.TotalDebit(gross).String(); got != tc.total {
			t.Errorf("TotalDebit(%s): expected %s, got %s", tc.gross, tc.total, got)
		}
	}
}

func TestFeePolicyMonthlyFee(t *testing.T) {
	policy := services.DefaultFeePolicy()

	if got := policy.MonthlyFee(domain.MustMoney("1000")).String(); got != "50.00" {
		t.Fatalf("expected 50.00, got %s", got)
	}
	if got := policy.MonthlyFee(domain.MustMoney("0.05")).String(); got != "0.00" {
		t.Fatalf("expected sub-cent fee to round to 0.00, got %s", got)
	}
	if got := policy.MonthlyFee(domain.ZeroMoney); !got.IsZero() {
		t.Fatalf("expected zero fee on zero balance, got %s", got)
	}
}

func TestFeePolicyIsMonthlyFeeDueWindowBoundaries(t *testing.T) {
	policy := services.DefaultFeePolicy()
	last := baseTime

	if !policy.IsMonthlyFeeDue(nil, baseTime) {
		t.Fatal("expected fee due when none was ever recorded")
	}
	if policy.IsMonthlyFeeDue(&last, last.Add(30*24*time.Hour-time.Second)) {
		t.Fatal("expected fee not due one second before the window closes")
	}
	if !policy.IsMonthlyFeeDue(&last, last.Add(30*24*time.Hour)) {
		t.Fatal("expected fee due exactly at the window")
	}

	local := last.In(time.FixedZone("UTC+1", 3600)).Add(31 * 24 * time.Hour)
	if !policy.IsMonthlyFeeDue(&last, local) {
		t.Fatal("expected due check to compare instants, not wall clocks")
	}
}

func TestFeePolicyCustomRates(t *testing.T) {
	policy := services.NewFeePolicy(decimal.NewFromFloat(2.5), decimal.NewFromInt(1), time.Hour)

	if got := policy.WithdrawalFee(domain.MustMoney("200")).String(); got != "5.00" {
		t.Fatalf("expected 5.00, got %s", got)
	}
	if got := policy.MonthlyFee(domain.MustMoney("200")).String(); got != "2.00" {
		t.Fatalf("expected 2.00, got %s", got)
	}
	last := baseTime
	if !policy.IsMonthlyFeeDue(&last, last.Add(time.Hour)) {
		t.Fatal("expected custom window to apply")
	}
}
