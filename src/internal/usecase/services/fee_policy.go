package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

const (
	DefaultWithdrawalFeePercent = 4
	DefaultMonthlyFeePercent    = 5
	DefaultMonthlyFeeWindow     = 30 * 24 * time.Hour
)

// FeePolicy holds the fee rules. All of its methods are pure.
type FeePolicy struct {
	withdrawalRate decimal.Decimal
	monthlyRate    decimal.Decimal
	window         time.Duration
}

func NewFeePolicy(withdrawalPercent decimal.Decimal, monthlyPercent decimal.Decimal, window time.Duration) FeePolicy {
	hundred := decimal.NewFromInt(100)
	return FeePolicy{
		withdrawalRate: withdrawalPercent.Div(hundred),
		monthlyRate:    monthlyPercent.Div(hundred),
		window:         window,
	}
}

func DefaultFeePolicy() FeePolicy {
	return NewFeePolicy(
		decimal.NewFromInt(DefaultWithdrawalFeePercent),
		decimal.NewFromInt(DefaultMonthlyFeePercent),
		DefaultMonthlyFeeWindow,
	)
}

func (p FeePolicy) WithdrawalFee(gross domain.Money) domain.Money {
	return gross.MulRate(p.withdrawalRate)
}

// TotalDebit is what a withdrawal of gross removes from the balance.
func (p FeePolicy) TotalDebit(gross domain.Money) domain.Money {
	return gross.Add(p.WithdrawalFee(gross))
}

func (p FeePolicy) MonthlyFee(balance domain.Money) domain.Money {
	if !balance.IsPositive() {
		return domain.ZeroMoney
	}
	return balance.MulRate(p.monthlyRate)
}

// IsMonthlyFeeDue reports whether a full window has elapsed since last. A nil
// last means no monthly fee was ever recorded.
func (p FeePolicy) IsMonthlyFeeDue(last *time.Time, now time.Time) bool {
	if last == nil {
		return true
	}
	return now.UTC().Sub(last.UTC()) >= p.window
}
