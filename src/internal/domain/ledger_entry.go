package domain

import (
	"fmt"
	"slices"
	"time"
)

type EntryKind string

const (
	EntryKindCredit        EntryKind = "credit"
	EntryKindDebit         EntryKind = "debit"
	EntryKindWithdrawalFee EntryKind = "withdrawal-fee"
	EntryKindMonthlyFee    EntryKind = "monthly-fee"
)

func (k EntryKind) Valid() bool {
	switch k {
	case EntryKindCredit, EntryKindDebit, EntryKindWithdrawalFee, EntryKindMonthlyFee:
		return true
	default:
		return false
	}
}

func (k EntryKind) Label() string {
	switch k {
	case EntryKindCredit:
		return "Credit"
	case EntryKindDebit:
		return "Debit"
	case EntryKindWithdrawalFee:
		return "Withdrawal fee"
	case EntryKindMonthlyFee:
		return "Account fee"
	default:
		return string(k)
	}
}

// LedgerEntry is an immutable balance-affecting record. Amount is signed:
// positive adds to the balance, negative removes from it.
type LedgerEntry struct {
	ID          int64
	OperationID string
	AccountID   int64
	Kind        EntryKind
	Amount      Money
	CreatedAt   time.Time
}

// NewLedgerEntry enforces the sign convention of each kind: debits are
// deposits and must be positive, everything else leaves the balance.
func NewLedgerEntry(accountID int64, operationID string, kind EntryKind, amount Money, at time.Time) (LedgerEntry, error) {
	if !kind.Valid() {
		return LedgerEntry{}, fmt.Errorf("unknown ledger entry kind %q", kind)
	}
	if operationID == "" {
		return LedgerEntry{}, fmt.Errorf("operation id is required")
	}
	if kind == EntryKindDebit && !amount.IsPositive() {
		return LedgerEntry{}, fmt.Errorf("%w: debit entry must be positive", ErrInvalidAmount)
	}
	// A withdrawal fee may round to zero on sub-cent withdrawals and is still recorded.
	if kind == EntryKindWithdrawalFee && amount.IsPositive() {
		return LedgerEntry{}, fmt.Errorf("%w: %s entry must not be positive", ErrInvalidAmount, kind)
	}
	if kind != EntryKindDebit && kind != EntryKindWithdrawalFee && !amount.IsNegative() {
		return LedgerEntry{}, fmt.Errorf("%w: %s entry must be negative", ErrInvalidAmount, kind)
	}

	return LedgerEntry{
		OperationID: operationID,
		AccountID:   accountID,
		Kind:        kind,
		Amount:      amount,
		CreatedAt:   at.UTC(),
	}, nil
}

// SortEntries orders entries for replay: by timestamp, then by insertion id.
func SortEntries(entries []LedgerEntry) {
	slices.SortStableFunc(entries, func(a, b LedgerEntry) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
}

// ReplayBalance sums entries in replay order.
func ReplayBalance(entries []LedgerEntry) Money {
	ordered := slices.Clone(entries)
	SortEntries(ordered)

	total := ZeroMoney
	for _, e := range ordered {
		total = total.Add(e.Amount)
	}
	return total
}
