package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/memory"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/usecase/services"
)

const testCurrency = "CDF"

var baseTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	db            *memory.DB
	accounts      *memory.AccountRepository
	ledgerStore   *memory.LedgerStore
	notifications *memory.NotificationRepository
	news          *memory.NewsRepository
	contacts      *memory.ContactRepository
	ledger        *services.LedgerService
	monthlyFees   *services.MonthlyFeeScheduler
}

func newFixture(t *testing.T, opts ...services.LedgerOption) *fixture {
	t.Helper()

	db := memory.NewDB()
	f := &fixture{
		db:            db,
		accounts:      memory.NewAccountRepository(db),
		ledgerStore:   memory.NewLedgerStore(db),
		notifications: memory.NewNotificationRepository(db),
		news:          memory.NewNewsRepository(db),
		contacts:      memory.NewContactRepository(db),
	}

	opts = append([]services.LedgerOption{
		services.WithLedgerRetry(3, 0),
		services.WithLedgerClock(func() time.Time { return baseTime }),
	}, opts...)
	f.ledger = services.NewLedgerService(f.ledgerStore, services.DefaultFeePolicy(), testCurrency, opts...)
	f.monthlyFees = services.NewMonthlyFeeScheduler(f.ledger)
	return f
}

func (f *fixture) seedAccount(t *testing.T, accountNumber string, username string) domain.Account {
	t.Helper()

	account, err := domain.NewAccount(accountNumber, username, username+"@example.com", "hash")
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	account.LastName = "Kabila"
	account.MiddleName = "Kabange"
	account.FirstName = "Joseph"

	created, err := f.accounts.Create(context.Background(), account)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return created
}

func (f *fixture) balance(t *testing.T, accountNumber string) domain.Money {
	t.Helper()

	account, err := f.accounts.GetByAccountNumber(context.Background(), accountNumber)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	return account.Balance
}

func (f *fixture) entries(t *testing.T, accountID int64) []domain.LedgerEntry {
	t.Helper()

	entries, err := f.ledgerStore.ListEntries(context.Background(), accountID)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	return entries
}

func (f *fixture) deposit(t *testing.T, accountNumber string, amount string, at time.Time) {
	t.Helper()

	if _, err := f.ledger.Debit(context.Background(), accountNumber, domain.MustMoney(amount), domain.Operation{Actor: "admin", At: at}); err != nil {
		t.Fatalf("deposit %s: %v", amount, err)
	}
}

func (f *fixture) messages(t *testing.T, username string) []string {
	t.Helper()

	notifications, err := f.notifications.ListByUsername(context.Background(), username, 0)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	out := make([]string, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, n.Message)
	}
	return out
}
