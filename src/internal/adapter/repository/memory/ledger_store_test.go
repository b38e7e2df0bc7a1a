package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/domain"
)

func (db *DB) lockCount() int {
	db.locksMu.Lock()
	defer db.locksMu.Unlock()
	return len(db.locks)
}

func seedAccount(t *testing.T, db *DB, accountNumber string) domain.Account {
	t.Helper()

	account, err := domain.NewAccount(accountNumber, "KABILAJOSEPH", "joseph@example.com", "hash")
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	created, err := NewAccountRepository(db).Create(context.Background(), account)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return created
}

func TestLedgerStoreCommitsStagedWrites(t *testing.T) {
	db := NewDB()
	account := seedAccount(t, db, "STL-123-456-789")
	store := NewLedgerStore(db)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	err := store.WithAccountLock(context.Background(), account.AccountNumber, func(tx repo_interfaces.LedgerTx) error {
		entry, err := domain.NewLedgerEntry(tx.Account().ID, "op-1", domain.EntryKindDebit, domain.MustMoney("50.00"), at)
		if err != nil {
			return err
		}
		if _, err := tx.AppendEntries(context.Background(), entry); err != nil {
			return err
		}
		if err := tx.AddNotifications(context.Background(), domain.Notification{Username: account.Username, Message: "Debit: +50.00 CDF", CreatedAt: at}); err != nil {
			return err
		}
		return tx.SetBalance(context.Background(), domain.MustMoney("50.00"))
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := NewAccountRepository(db).GetByAccountNumber(context.Background(), account.AccountNumber)
	if !stored.Balance.Equal(domain.MustMoney("50.00")) {
		t.Fatalf("expected balance 50.00, got %s", stored.Balance)
	}

	entries, _ := store.ListEntries(context.Background(), account.ID)
	if len(entries) != 1 || entries[0].ID == 0 {
		t.Fatalf("expected one stored entry with id, got %+v", entries)
	}

	notifications, _ := NewNotificationRepository(db).ListByUsername(context.Background(), account.Username, 10)
	if len(notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifications))
	}
}

func TestLedgerStoreRollsBackOnError(t *testing.T) {
	db := NewDB()
	account := seedAccount(t, db, "STL-123-456-789")
	store := NewLedgerStore(db)
	boom := errors.New("boom")

	err := store.WithAccountLock(context.Background(), account.AccountNumber, func(tx repo_interfaces.LedgerTx) error {
		entry, _ := domain.NewLedgerEntry(tx.Account().ID, "op-1", domain.EntryKindDebit, domain.MustMoney("10.00"), time.Now())
		_, _ = tx.AppendEntries(context.Background(), entry)
		_ = tx.SetBalance(context.Background(), domain.MustMoney("10.00"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	stored, _ := NewAccountRepository(db).GetByAccountNumber(context.Background(), account.AccountNumber)
	if !stored.Balance.IsZero() {
		t.Fatalf("expected untouched balance, got %s", stored.Balance)
	}
	entries, _ := store.ListEntries(context.Background(), account.ID)
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestLedgerStoreRejectsNegativeBalance(t *testing.T) {
	db := NewDB()
	account := seedAccount(t, db, "STL-123-456-789")

	err := NewLedgerStore(db).WithAccountLock(context.Background(), account.AccountNumber, func(tx repo_interfaces.LedgerTx) error {
		return tx.SetBalance(context.Background(), domain.MustMoney("-1.00"))
	})
	if err == nil {
		t.Fatal("expected commit to reject a negative balance")
	}
}

func TestLedgerStoreUnknownAccount(t *testing.T) {
	err := NewLedgerStore(NewDB()).WithAccountLock(context.Background(), "STL-000-000-000", func(repo_interfaces.LedgerTx) error {
		t.Fatal("fn must not run for an unknown account")
		return nil
	})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLedgerStoreKeepsNoLocksForUnknownAccounts(t *testing.T) {
	db := NewDB()
	account := seedAccount(t, db, "STL-123-456-789")
	store := NewLedgerStore(db)

	for i := 0; i < 100; i++ {
		number := fmt.Sprintf("STL-000-000-%03d", i)
		err := store.WithAccountLock(context.Background(), number, func(repo_interfaces.LedgerTx) error { return nil })
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("%s: expected ErrAccountNotFound, got %v", number, err)
		}
	}
	if got := db.lockCount(); got != 0 {
		t.Fatalf("expected no locks for unknown accounts, got %d", got)
	}

	if err := store.WithAccountLock(context.Background(), account.AccountNumber, func(repo_interfaces.LedgerTx) error { return nil }); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := db.lockCount(); got != 1 {
		t.Fatalf("expected 1 lock, got %d", got)
	}
}

func TestLedgerStoreSerializesPerAccount(t *testing.T) {
	db := NewDB()
	account := seedAccount(t, db, "STL-123-456-789")
	store := NewLedgerStore(db)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.WithAccountLock(context.Background(), account.AccountNumber, func(tx repo_interfaces.LedgerTx) error {
				return tx.SetBalance(context.Background(), tx.Account().Balance.Add(domain.MustMoney("1.00")))
			})
		}()
	}
	wg.Wait()

	stored, _ := NewAccountRepository(db).GetByAccountNumber(context.Background(), account.AccountNumber)
	if !stored.Balance.Equal(domain.MustMoney("50.00")) {
		t.Fatalf("expected 50.00 after serialized increments, got %s", stored.Balance)
	}
}
