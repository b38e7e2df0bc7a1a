package services_test

import (
	"context"
	"testing"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/usecase/services"
)

func TestChargesServiceGetChargesSummarySuccess(t *testing.T) {
	svc := services.NewChargesService(services.DefaultFeePolicy(), testCurrency)

	resp, err := svc.GetChargesSummary(context.Background(), models.GetChargesRequest{Amount: "100"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if resp.Data.Amount != "100.00" || resp.Data.WithdrawalFee != "4.00" || resp.Data.TotalDebited != "104.00" {
		t.Fatalf("unexpected quote %+v", resp.Data)
	}
	if resp.Data.Currency != testCurrency {
		t.Fatalf("expected currency %s, got %s", testCurrency, resp.Data.Currency)
	}
}

func TestChargesServiceAcceptsCommaSeparator(t *testing.T) {
	svc := services.NewChargesService(services.DefaultFeePolicy(), testCurrency)

	resp, err := svc.GetChargesSummary(context.Background(), models.GetChargesRequest{Amount: "12,50"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.WithdrawalFee != "0.50" || resp.Data.TotalDebited != "13.00" {
		t.Fatalf("unexpected quote %+v", resp.Data)
	}
}

func TestChargesServiceValidationError(t *testing.T) {
	svc := services.NewChargesService(services.DefaultFeePolicy(), testCurrency)

	for _, amount := range []string{"", "abc", "0", "-3"} {
		resp, err := svc.GetChargesSummary(context.Background(), models.GetChargesRequest{Amount: amount})
		if err == nil {
			t.Fatalf("expected validation error for %q", amount)
		}
		if resp.Success || resp.Message != "validation failed" {
			t.Fatalf("unexpected response for %q: %+v", amount, resp)
		}
	}
}
