package services

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

// MonthlyFeeScheduler charges the recurring fee lazily, when an account is
// accessed. Concurrent checks for one account share a single ledger call;
// the due check itself runs under the account lock.
type MonthlyFeeScheduler struct {
	ledger *LedgerService
	group  singleflight.Group
}

func NewMonthlyFeeScheduler(ledger *LedgerService) *MonthlyFeeScheduler {
	return &MonthlyFeeScheduler{ledger: ledger}
}

// EnsureMonthlyFee reports whether this call (or the call it joined) charged a fee.
func (s *MonthlyFeeScheduler) EnsureMonthlyFee(ctx context.Context, accountNumber string, op domain.Operation) (bool, error) {
	// Joined callers share this run, so it must not die with the first caller's request.
	shared := context.WithoutCancel(ctx)
	v, err, joined := s.group.Do(accountNumber, func() (any, error) {
		_, applied, err := s.ledger.applyMonthlyFeeIfDue(shared, accountNumber, op)
		return applied, err
	})
	if err != nil {
		logger.Error("monthly fee scheduler check failed", err, logger.Fields{
			"accountNumber": accountNumber,
			"joined":        joined,
		})
		return false, err
	}

	return v.(bool), nil
}
