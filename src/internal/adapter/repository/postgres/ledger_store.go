package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

type LedgerStore struct {
	db          *sql.DB
	lockTimeout time.Duration
}

func NewLedgerStore(db *sql.DB, lockTimeout time.Duration) *LedgerStore {
	return &LedgerStore{db: db, lockTimeout: lockTimeout}
}

func (s *LedgerStore) WithAccountLock(ctx context.Context, accountNumber string, fn func(tx repo_interfaces.LedgerTx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger store begin tx failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if s.lockTimeout > 0 {
		// SET does not take bind parameters; the value is an integer we format ourselves.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("set ledger lock timeout: %w", err)
		}
	}

	var account domain.Account
	err = scanAccount(tx.QueryRowContext(ctx, selectAccountColumns+`
WHERE account_number = $1
FOR UPDATE`, accountNumber), &account)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrAccountNotFound
			return err
		}
		err = fmt.Errorf("lock account: %w", mapConflict(err))
		logger.Error("ledger store lock account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return err
	}

	if err = fn(&ledgerTx{tx: tx, account: account}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit ledger transaction: %w", mapConflict(err))
		logger.Error("ledger store commit failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return err
	}

	return nil
}

func (s *LedgerStore) ListEntries(ctx context.Context, accountID int64) ([]domain.LedgerEntry, error) {
	const query = `
SELECT id, operation_id, account_id, kind, amount, created_at
FROM ledger_entries
WHERE account_id = $1
ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		logger.Error("ledger store list entries failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := scanEntry(rows, &entry); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}

	return entries, nil
}

type ledgerTx struct {
	tx      *sql.Tx
	account domain.Account
}

func (t *ledgerTx) Account() domain.Account {
	return t.account
}

func (t *ledgerTx) LatestEntryOfKind(ctx context.Context, kind domain.EntryKind) (domain.LedgerEntry, bool, error) {
	const query = `
SELECT id, operation_id, account_id, kind, amount, created_at
FROM ledger_entries
WHERE account_id = $1
  AND kind = $2
ORDER BY created_at DESC, id DESC
LIMIT 1`

	var entry domain.LedgerEntry
	if err := scanEntry(t.tx.QueryRowContext(ctx, query, t.account.ID, kind), &entry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LedgerEntry{}, false, nil
		}
		return domain.LedgerEntry{}, false, fmt.Errorf("latest %s entry: %w", kind, mapConflict(err))
	}

	return entry, true, nil
}

func (t *ledgerTx) SetBalance(ctx context.Context, balance domain.Money) error {
	result, err := t.tx.ExecContext(ctx, `UPDATE accounts SET balance = $2 WHERE id = $1`, t.account.ID, balance)
	if err != nil {
		return fmt.Errorf("set account balance: %w", mapConflict(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set account balance rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}

	t.account.Balance = balance
	return nil
}

func (t *ledgerTx) AppendEntries(ctx context.Context, entries ...domain.LedgerEntry) ([]domain.LedgerEntry, error) {
	const query = `
INSERT INTO ledger_entries (
	operation_id,
	account_id,
	kind,
	amount,
	created_at
) VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	stored := make([]domain.LedgerEntry, 0, len(entries))
	for _, entry := range entries {
		if err := t.tx.QueryRowContext(
			ctx,
			query,
			entry.OperationID,
			entry.AccountID,
			entry.Kind,
			entry.Amount,
			entry.CreatedAt,
		).Scan(&entry.ID); err != nil {
			return nil, fmt.Errorf("append %s entry: %w", entry.Kind, mapConflict(err))
		}
		stored = append(stored, entry)
	}

	return stored, nil
}

func (t *ledgerTx) AddNotifications(ctx context.Context, notifications ...domain.Notification) error {
	for _, n := range notifications {
		if _, err := t.tx.ExecContext(
			ctx,
			`INSERT INTO notifications (username, message, created_at) VALUES ($1, $2, $3)`,
			n.Username,
			n.Message,
			n.CreatedAt,
		); err != nil {
			return fmt.Errorf("add notification: %w", mapConflict(err))
		}
	}

	return nil
}

func scanEntry(row rowScanner, entry *domain.LedgerEntry) error {
	if err := row.Scan(
		&entry.ID,
		&entry.OperationID,
		&entry.AccountID,
		&entry.Kind,
		&entry.Amount,
		&entry.CreatedAt,
	); err != nil {
		return err
	}

	entry.CreatedAt = entry.CreatedAt.UTC()
	return nil
}
