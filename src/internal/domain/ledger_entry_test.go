package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewLedgerEntryEnforcesSign(t *testing.T) {
	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	if _, err := NewLedgerEntry(1, "op", EntryKindDebit, MustMoney("-1"), at); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected negative debit to be rejected, got %v", err)
	}
	if _, err := NewLedgerEntry(1, "op", EntryKindCredit, MustMoney("1"), at); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected positive credit to be rejected, got %v", err)
	}
	if _, err := NewLedgerEntry(1, "op", EntryKind("bonus"), MustMoney("1"), at); err == nil {
		t.Fatal("expected unknown kind to be rejected")
	}

	if _, err := NewLedgerEntry(1, "op", EntryKindMonthlyFee, ZeroMoney, at); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected zero monthly fee to be rejected, got %v", err)
	}
	if _, err := NewLedgerEntry(1, "op", EntryKindWithdrawalFee, MustMoney("0.01"), at); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected positive withdrawal fee to be rejected, got %v", err)
	}
	if _, err := NewLedgerEntry(1, "op", EntryKindWithdrawalFee, ZeroMoney, at); err != nil {
		t.Fatalf("expected zero withdrawal fee to be accepted, got %v", err)
	}

	entry, err := NewLedgerEntry(1, "op", EntryKindMonthlyFee, MustMoney("-2.50"), at.In(time.FixedZone("WAT", 3600)))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if entry.CreatedAt.Location() != time.UTC {
		t.Fatal("expected entry timestamp normalised to UTC")
	}
}

func TestReplayBalanceOrdersByTimeThenID(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []LedgerEntry{
		{ID: 3, Kind: EntryKindWithdrawalFee, Amount: MustMoney("-4.00"), CreatedAt: t0.Add(time.Hour)},
		{ID: 1, Kind: EntryKindDebit, Amount: MustMoney("200.00"), CreatedAt: t0},
		{ID: 2, Kind: EntryKindCredit, Amount: MustMoney("-100.00"), CreatedAt: t0.Add(time.Hour)},
	}

	if got := ReplayBalance(entries); !got.Equal(MustMoney("96.00")) {
		t.Fatalf("expected 96.00, got %s", got)
	}
	if entries[0].ID != 3 {
		t.Fatal("expected ReplayBalance to leave the input slice untouched")
	}

	SortEntries(entries)
	for i, want := range []int64{1, 2, 3} {
		if entries[i].ID != want {
			t.Fatalf("position %d: expected id %d, got %d", i, want, entries[i].ID)
		}
	}
}
