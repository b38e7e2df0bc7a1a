package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/domain"
)

// LedgerStore serializes writers per account with a mutex and stages every
// write of a unit of work until fn returns without error.
type LedgerStore struct {
	db *DB
}

func NewLedgerStore(db *DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) WithAccountLock(ctx context.Context, accountNumber string, fn func(tx repo_interfaces.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lock, ok := s.db.accountLock(accountNumber)
	if !ok {
		return domain.ErrAccountNotFound
	}
	lock.Lock()
	defer lock.Unlock()

	s.db.mu.RLock()
	id, ok := s.db.accountIDs[accountNumber]
	account := s.db.accounts[id]
	committed := slices.Clone(s.db.entries[id])
	s.db.mu.RUnlock()
	if !ok {
		return domain.ErrAccountNotFound
	}

	tx := &stagedTx{db: s.db, account: account, committed: committed}
	if err := fn(tx); err != nil {
		return err
	}

	return s.commit(tx)
}

func (s *LedgerStore) commit(tx *stagedTx) error {
	if tx.account.Balance.IsNegative() {
		return fmt.Errorf("commit ledger transaction: balance of %s would be negative", tx.account.AccountNumber)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	stored, ok := s.db.accounts[tx.account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	stored.Balance = tx.account.Balance
	s.db.accounts[stored.ID] = stored

	s.db.entries[stored.ID] = append(s.db.entries[stored.ID], tx.entries...)
	for _, n := range tx.notifications {
		s.db.insertNotificationLocked(n)
	}

	return nil
}

func (s *LedgerStore) ListEntries(_ context.Context, accountID int64) ([]domain.LedgerEntry, error) {
	s.db.mu.RLock()
	entries := slices.Clone(s.db.entries[accountID])
	s.db.mu.RUnlock()

	domain.SortEntries(entries)
	if entries == nil {
		entries = make([]domain.LedgerEntry, 0)
	}
	return entries, nil
}

type stagedTx struct {
	db            *DB
	account       domain.Account
	committed     []domain.LedgerEntry
	entries       []domain.LedgerEntry
	notifications []domain.Notification
}

func (t *stagedTx) Account() domain.Account {
	return t.account
}

func (t *stagedTx) LatestEntryOfKind(_ context.Context, kind domain.EntryKind) (domain.LedgerEntry, bool, error) {
	var (
		latest domain.LedgerEntry
		found  bool
	)
	for _, entry := range append(slices.Clone(t.committed), t.entries...) {
		if entry.Kind != kind {
			continue
		}
		if !found || !entry.CreatedAt.Before(latest.CreatedAt) {
			latest, found = entry, true
		}
	}
	return latest, found, nil
}

func (t *stagedTx) SetBalance(_ context.Context, balance domain.Money) error {
	t.account.Balance = balance
	return nil
}

// AppendEntries reserves ids immediately, like a database sequence; a
// rolled-back unit of work leaves a gap.
func (t *stagedTx) AppendEntries(_ context.Context, entries ...domain.LedgerEntry) ([]domain.LedgerEntry, error) {
	stored := slices.Clone(entries)

	t.db.mu.Lock()
	for i := range stored {
		t.db.nextEntryID++
		stored[i].ID = t.db.nextEntryID
	}
	t.db.mu.Unlock()

	t.entries = append(t.entries, stored...)
	return stored, nil
}

func (t *stagedTx) AddNotifications(_ context.Context, notifications ...domain.Notification) error {
	t.notifications = append(t.notifications, notifications...)
	return nil
}
