package domain

import (
	"context"
	"time"
)

const EventLedgerEntryPosted = "ledger.entry.posted"

type LedgerEvent struct {
	EventType     string    `json:"eventType"`
	EntryID       int64     `json:"entryId"`
	OperationID   string    `json:"operationId"`
	AccountNumber string    `json:"accountNumber"`
	Kind          EntryKind `json:"kind"`
	Amount        Money     `json:"amount"`
	BalanceAfter  Money     `json:"balanceAfter"`
	Currency      string    `json:"currency"`
	Actor         string    `json:"actor"`
	OccurredAt    time.Time `json:"occurredAt"`
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, event LedgerEvent) error
}
