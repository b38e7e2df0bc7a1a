package repo_interfaces

import (
	"context"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

// LedgerStore is the only path through which balances change. WithAccountLock
// runs fn in a single transaction that holds the account's exclusive lock
// until commit; an error from fn rolls back everything fn wrote.
type LedgerStore interface {
	WithAccountLock(ctx context.Context, accountNumber string, fn func(tx LedgerTx) error) error
	ListEntries(ctx context.Context, accountID int64) ([]domain.LedgerEntry, error)
}

type LedgerTx interface {
	Account() domain.Account
	LatestEntryOfKind(ctx context.Context, kind domain.EntryKind) (domain.LedgerEntry, bool, error)
	SetBalance(ctx context.Context, balance domain.Money) error
	AppendEntries(ctx context.Context, entries ...domain.LedgerEntry) ([]domain.LedgerEntry, error)
	AddNotifications(ctx context.Context, notifications ...domain.Notification) error
}
