package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/usecase/services"
)

type conflictingStore struct {
	repo_interfaces.LedgerStore
	mu        sync.Mutex
	conflicts int
	calls     int
}

func (s *conflictingStore) WithAccountLock(ctx context.Context, accountNumber string, fn func(tx repo_interfaces.LedgerTx) error) error {
	s.mu.Lock()
	s.calls++
	conflict := s.calls <= s.conflicts
	s.mu.Unlock()

	if conflict {
		return fmt.Errorf("lock account: %w", domain.ErrConcurrencyConflict)
	}
	return s.LedgerStore.WithAccountLock(ctx, accountNumber, fn)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.LedgerEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event domain.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

// stalledPublisher blocks until the publish context ends, like a broker outage.
type stalledPublisher struct {
	mu    sync.Mutex
	calls int
}

func (p *stalledPublisher) Publish(ctx context.Context, _ string, _ domain.LedgerEvent) error {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	<-ctx.Done()
	return ctx.Err()
}

func TestLedgerServiceDebitAccumulates(t *testing.T) {
	f := newFixture(t)
	account := f.seedAccount(t, "STL-100-200-300", "KABILAJOSEPH")

	f.deposit(t, account.AccountNumber, "50", baseTime)
	f.deposit(t, account.AccountNumber, "25", baseTime.Add(time.Minute))

	if got := f.balance(t, account.AccountNumber).String(); got != "75.00" {
		t.Fatalf("expected balance 75.00, got %s", got)
	}

	entries := f.entries(t, account.ID)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Kind != domain.EntryKindDebit || !e.Amount.IsPositive() {
			t.Fatalf("expected positive debit entry, got %+v", e)
		}
	}
	if got := domain.ReplayBalance(entries).String(); got != "75.00" {
		t.Fatalf("expected replay 75.00, got %s", got)
	}

	messages := f.messages(t, account.Username)
	if len(messages) != 2 || messages[0] != "Debit: +25.00 CDF" || messages[1] != "Debit: +50.00 CDF" {
		t.Fatalf("unexpected notifications %v", messages)
	}
}

func TestLedgerServiceCreditChargesWithdrawalFee(t *testing.T) {
	f := newFixture(t)
	account := f.seedAccount(t, "STL-100-200-301", "KABILAJOSEPH")
	f.deposit(t, account.AccountNumber, "200", baseTime)

	result, err := f.ledger.Credit(context.Background(), account.AccountNumber, domain.MustMoney("100"), domain.Operation{Actor: "admin", At: baseTime.Add(time.Hour)})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if got := result.Account.Balance.String(); got != "96.00" {
		t.Fatalf("expected result balance 96.00, got %s", got)
	}
	if got := f.balance(t, account.AccountNumber).String(); got != "96.00" {
		t.Fatalf("expected stored balance 96.00, got %s", got)
	}
	if got := result.Fee.String(); got != "4.00" {
		t.Fatalf("expected fee 4.00, got %s", got)
	}

	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	withdrawal, fee := result.Entries[0], result.Entries[1]
	if withdrawal.Kind != domain.EntryKindCredit || withdrawal.Amount.String() != "-100.00" {
		t.Fatalf("unexpected withdrawal entry %+v", withdrawal)
	}
	if fee.Kind != domain.EntryKindWithdrawalFee || fee.Amount.String() != "-4.00" {
		t.Fatalf("unexpected fee entry %+v", fee)
	}
	if withdrawal.OperationID == "" || withdrawal.OperationID != fee.OperationID {
		t.Fatalf("expected shared operation id, got %q and %q", withdrawal.OperationID, fee.OperationID)
	}
	if !withdrawal.CreatedAt.Equal(fee.CreatedAt) {
		t.Fatalf("expected shared timestamp, got %s and %s", withdrawal.CreatedAt, fee.CreatedAt)
	}
	if withdrawal.ID == 0 || fee.ID <= withdrawal.ID {
		t.Fatalf("expected increasing entry ids, got %d and %d", withdrawal.ID, fee.ID)
	}

	if got := domain.ReplayBalance(f.entries(t, account.ID)).String(); got != "96.00" {
		t.Fatalf("expected replay 96.00, got %s", got)
	}

	messages := f.messages(t, account.Username)
	want := map[string]bool{"Credit: -100.00 CDF": false, "Withdrawal fee: -4.00 CDF": false}
	for _, m := range messages {
		if _, ok := want[m]; ok {
			want[m] = true
		}
	}
	for m, seen := range want {
		if !seen {
			t.Fatalf("expected notification %q in %v", m, messages)
		}
	}
}

func TestLedgerServiceCreditInsufficientFundsLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	account := f.seedAccount(t, "STL-100-200-302", "KABILAJOSEPH")
	f.deposit(t, account.AccountNumber, "100", baseTime)

	_, err := f.ledger.Credit(context.Background(), account.AccountNumber, domain.MustMoney("97"), domain.Operation{Actor: "admin"})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	if got := f.balance(t, account.AccountNumber).String(); got != "100.00" {
		t.Fatalf("expected balance unchanged at 100.00, got %s", got)
	}
	if got := len(f.entries(t, account.ID)); got != 1 {
		t.Fatalf("expected only the deposit entry, got %d", got)
	}
	if got := len(f.messages(t, account.Username)); got != 1 {
		t.Fatalf("expected only the deposit notification, got %d", got)
	}
}

func TestLedgerServiceCreditExactBalance(t *testing.T) {
	f := newFixture(t)
	account := f.seedAccount(t, "STL-100-200-303", "KABILAJOSEPH")
	f.deposit(t, account.AccountNumber, "104", baseTime)

	if _, err := f.ledger.Credit(context.Background(), account.AccountNumber, domain.MustMoney("100"), domain.Operation{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := f.balance(t, account.AccountNumber); !got.IsZero() {
		t.Fatalf("expected zero balance, got %s", got)
	}
}

func TestLedgerServiceSubCentWithdrawalRecordsZeroFeeEntry(t *testing.T) {
	f := newFixture(t)
	account := f.seedAccount(t, "STL-100-200-304", "KABILAJOSEPH")
	f.deposit(t, account.AccountNumber, "10", baseTime)

	result, err := f.ledger.Credit(context.Background(), account.AccountNumber, domain.MustMoney("0.10"), domain.Operation{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected credit and fee entries, got %+v", result.Entries)
	}
	credit, fee := result.Entries[0], result.Entries[1]
	if credit.Kind != domain.EntryKindCredit || credit.Amount.String() != "-0.10" {
		t.Fatalf("unexpected credit entry %+v", credit)
	}
	if fee.Kind != domain.EntryKindWithdrawalFee || !fee.Amount.IsZero() {
		t.Fatalf("unexpected fee entry %+v", fee)
	}
	if credit.OperationID != fee.OperationID || !credit.CreatedAt.Equal(fee.CreatedAt) {
		t.Fatal("expected both entries to share operation id and timestamp")
	}
	if got := f.balance(t, account.AccountNumber).String(); got != "9.90" {
		t.Fatalf("expected balance 9.90, got %s", got)
	}
	if got := len(f.entries(t, account.ID)); got != 3 {
		t.Fatalf("expected 3 stored entries, got %d", got)
	}

	msgs := f.messages(t, account.Username)
	var sawFee bool
	for _, m := range msgs {
		if m == "Withdrawal fee: -0.00 "+testCurrency {
			sawFee = true
		}
	}
	if !sawFee {
		t.Fatalf("expected zero withdrawal fee notification, got %v", msgs)
	}
}

func TestLedgerServiceRejectsNonPositiveAmounts(t *testing.T) {
	f := newFixture(t)
	account := f.seedAccount(t, "STL-100-200-305", "KABILAJOSEPH")

	if _, err := f.ledger.Debit(context.Background(), account.AccountNumber, domain.ZeroMoney, domain.Operation{}); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount on debit, got %v", err)
	}
	if _, err := f.ledger.Credit(context.Background(), account.AccountNumber, domain.MustMoney("-5"), domain.Operation{}); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount on credit, got %v", err)
	}
	if got := len(f.entries(t, account.ID)); got != 0 {
		t.Fatalf("expected no entries, got %d", got)
	}
}

func TestLedgerServiceUnknownAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.Debit(context.Background(), "STL-999-999-999", domain.MustMoney("10"), domain.Operation{})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
}

func TestLedgerServiceConcurrentOperationsKeepBalanceConsistent(t *testing.T) {
	f := newFixture(t)
	account := f.seedAccount(t, "STL-100-200-306", "KABILAJOSEPH")
	f.deposit(t, account.AccountNumber, "1000", baseTime)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := f.ledger.Credit(context.Background(), account.AccountNumber, domain.MustMoney("10"), domain.Operation{Actor: "admin"}); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := f.ledger.Debit(context.Background(), account.AccountNumber, domain.MustMoney("5"), domain.Operation{Actor: "admin"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1000 - 20*10.40 + 20*5
	if got := f.balance(t, account.AccountNumber).String(); got != "892.00" {
		t.Fatalf("expected balance 892.00, got %s", got)
	}
	entries := f.entries(t, account.ID)
	if got := len(entries); got != 1+workers*3 {
		t.Fatalf("expected %d entries, got %d", 1+workers*3, got)
	}
	if got := domain.ReplayBalance(entries).String(); got != "892.00" {
		t.Fatalf("expected replay 892.00, got %s", got)
	}
}

func TestLedgerServiceRetriesConcurrencyConflicts(t *testing.T) {
	f := newFixture(t)
	account := f.seedAccount(t, "STL-100-200-307", "KABILAJOSEPH")

	store := &conflictingStore{LedgerStore: f.ledgerStore, conflicts: 2}
	ledger := services.NewLedgerService(store, services.DefaultFeePolicy(), testCurrency, services.WithLedgerRetry(3, 0))

	if _, err := ledger.Debit(context.Background(), account.AccountNumber, domain.MustMoney("10"), domain.Operation{}); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if store.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", store.calls)
	}
	if got := f.balance(t, account.AccountNumber).String(); got != "10.00" {
		t.Fatalf("expected balance 10.00, got %s", got)
	}
}

func TestLedgerServiceGivesUpAfterMaxAttempts(t *testing.T) {
	f := newFixture(t)
	account := f.seedAccount(t, "STL-100-200-308", "KABILAJOSEPH")

	store := &conflictingStore{LedgerStore: f.ledgerStore, conflicts: 10}
	ledger := services.NewLedgerService(store, services.DefaultFeePolicy(), testCurrency, services.WithLedgerRetry(3, 0))

	_, err := ledger.Debit(context.Background(), account.AccountNumber, domain.MustMoney("10"), domain.Operation{})
	if !errors.Is(err, domain.ErrConcurrencyConflict) {
		t.Fatalf("expected concurrency conflict, got %v", err)
	}
	if store.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", store.calls)
	}
	if got := f.balance(t, account.AccountNumber); !got.IsZero() {
		t.Fatalf("expected untouched balance, got %s", got)
	}
}

func TestLedgerServicePublishesOneEventPerEntry(t *testing.T) {
	publisher := &recordingPublisher{}
	f := newFixture(t, services.WithEventPublisher(publisher), services.WithOperationIDs(func() string { return "op-fixed" }))
	account := f.seedAccount(t, "STL-100-200-309", "KABILAJOSEPH")
	f.deposit(t, account.AccountNumber, "200", baseTime)

	if _, err := f.ledger.Credit(context.Background(), account.AccountNumber, domain.MustMoney("100"), domain.Operation{Actor: "admin"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if len(publisher.events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(publisher.events))
	}
	last := publisher.events[2]
	if last.EventType != domain.EventLedgerEntryPosted || last.Kind != domain.EntryKindWithdrawalFee {
		t.Fatalf("unexpected event %+v", last)
	}
	if last.OperationID != "op-fixed" || last.AccountNumber != account.AccountNumber || last.Actor != "admin" {
		t.Fatalf("unexpected event identity %+v", last)
	}
	if last.BalanceAfter.String() != "96.00" || last.Currency != testCurrency || last.EntryID == 0 {
		t.Fatalf("unexpected event payload %+v", last)
	}
}

func TestLedgerServicePublishFailureDoesNotUndoCommit(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("broker unavailable")}
	f := newFixture(t, services.WithEventPublisher(publisher))
	account := f.seedAccount(t, "STL-100-200-310", "KABILAJOSEPH")

	if _, err := f.ledger.Debit(context.Background(), account.AccountNumber, domain.MustMoney("30"), domain.Operation{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := f.balance(t, account.AccountNumber).String(); got != "30.00" {
		t.Fatalf("expected balance 30.00, got %s", got)
	}
}

func TestLedgerServiceAdminOperation(t *testing.T) {
	f := newFixture(t)
	account := f.seedAccount(t, "STL-100-200-311", "KABILAJOSEPH")

	resp, err := f.ledger.AdminOperation(context.Background(), account.AccountNumber, models.AdminOperationRequest{
		Type:    "Debit",
		Amount:  "25,50",
		Confirm: true,
	}, "admin")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if resp.Data.Type != models.OperationTypeDebit || resp.Data.Amount != "25.50" || resp.Data.Balance != "25.50" {
		t.Fatalf("unexpected response %+v", resp.Data)
	}
	if len(resp.Data.Entries) != 1 || resp.Data.Entries[0].Label != "Debit" {
		t.Fatalf("unexpected entries %+v", resp.Data.Entries)
	}

	resp, err = f.ledger.AdminOperation(context.Background(), account.AccountNumber, models.AdminOperationRequest{
		Type:    "credit",
		Amount:  "25",
		Confirm: true,
	}, "admin")
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if resp.Success || resp.Message != "Insufficient funds" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if got := f.balance(t, account.AccountNumber).String(); got != "25.50" {
		t.Fatalf("expected balance to stay 25.50, got %s", got)
	}
	if got := len(f.entries(t, account.ID)); got != 1 {
		t.Fatalf("expected 1 entry after rejection, got %d", got)
	}
}

func TestLedgerServiceAdminOperationValidation(t *testing.T) {
	f := newFixture(t)
	account := f.seedAccount(t, "STL-100-200-312", "KABILAJOSEPH")

	cases := []struct {
		name string
		req  models.AdminOperationRequest
	}{
		{"unconfirmed", models.AdminOperationRequest{Type: "debit", Amount: "10"}},
		{"unknown type", models.AdminOperationRequest{Type: "transfer", Amount: "10", Confirm: true}},
		{"non numeric", models.AdminOperationRequest{Type: "debit", Amount: "ten", Confirm: true}},
		{"rounds to zero", models.AdminOperationRequest{Type: "debit", Amount: "0.004", Confirm: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := f.ledger.AdminOperation(context.Background(), account.AccountNumber, tc.req, "admin")
			if err == nil {
				t.Fatal("expected validation error")
			}
			if resp.Success || resp.Message != "validation failed" {
				t.Fatalf("unexpected response %+v", resp)
			}
		})
	}

	resp, err := f.ledger.AdminOperation(context.Background(), "STL-000-000-000", models.AdminOperationRequest{Type: "debit", Amount: "10", Confirm: true}, "admin")
	if !errors.Is(err, domain.ErrAccountNotFound) || resp.Message != "Account not found" {
		t.Fatalf("expected account not found, got %v / %+v", err, resp)
	}
}

func TestLedgerServicePublishIsBoundedByTimeout(t *testing.T) {
	publisher := &stalledPublisher{}
	f := newFixture(t, services.WithEventPublisher(publisher), services.WithPublishTimeout(30*time.Millisecond))
	account := f.seedAccount(t, "STL-100-200-320", "KABILAJOSEPH")
	f.deposit(t, account.AccountNumber, "200", baseTime)

	start := time.Now()
	if _, err := f.ledger.Credit(context.Background(), account.AccountNumber, domain.MustMoney("100"), domain.Operation{}); err != nil {
		t.Fatalf("expected commit to succeed despite stalled broker, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected credit to return within the publish timeout, took %s", elapsed)
	}
	if got := f.balance(t, account.AccountNumber).String(); got != "96.00" {
		t.Fatalf("expected balance 96.00, got %s", got)
	}
}
