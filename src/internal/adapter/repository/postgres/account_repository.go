package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

const selectAccountColumns = `
SELECT id, account_number, username, email, last_name, middle_name, first_name, gender, address, phone, password_hash, balance, created_at
FROM accounts`

type rowScanner interface {
	Scan(dest ...any) error
}

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"accountNumber": account.AccountNumber,
		"username":      account.Username,
		"email":         account.Email,
	})

	const query = `
INSERT INTO accounts (
	account_number,
	username,
	email,
	last_name,
	middle_name,
	first_name,
	gender,
	address,
	phone,
	password_hash,
	balance
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.AccountNumber,
		account.Username,
		account.Email,
		account.LastName,
		account.MiddleName,
		account.FirstName,
		account.Gender,
		account.Address,
		account.Phone,
		account.PasswordHash,
		account.Balance,
	).Scan(&account.ID, &account.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			logger.Info("account repository create duplicate", logger.Fields{
				"accountNumber": account.AccountNumber,
				"username":      account.Username,
			})
			return domain.Account{}, fmt.Errorf("create account: %w", domain.ErrDuplicateRecord)
		}
		logger.Error("account repository create failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.CreatedAt = account.CreatedAt.UTC()
	logger.Info("account repository create success", logger.Fields{
		"accountId":     account.ID,
		"accountNumber": account.AccountNumber,
	})

	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	logger.Info("account repository get by account number", logger.Fields{
		"accountNumber": accountNumber,
	})

	var account domain.Account
	if err := scanAccount(r.db.QueryRowContext(ctx, selectAccountColumns+`
WHERE account_number = $1`, accountNumber), &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"accountNumber": accountNumber,
			})
			return domain.Account{}, domain.ErrAccountNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, fmt.Errorf("get account by account number: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByIdentifier(ctx context.Context, email string, username string) (domain.Account, error) {
	var account domain.Account
	if err := scanAccount(r.db.QueryRowContext(ctx, selectAccountColumns+`
WHERE email = $1 OR username = $2
ORDER BY id
LIMIT 1`, email, username), &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		logger.Error("account repository get by identifier failed", err, logger.Fields{
			"email":    email,
			"username": username,
		})
		return domain.Account{}, fmt.Errorf("get account by identifier: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber)
}

func (r *AccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`, username)
}

func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email)
}

func (r *AccountRepository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		logger.Error("account repository exists check failed", err, logger.Fields{
			"value": arg,
		})
		return false, fmt.Errorf("check account existence: %w", err)
	}

	return exists, nil
}

func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, accountID int64, passwordHash string) error {
	logger.Info("account repository update password hash", logger.Fields{
		"accountId": accountID,
	})

	result, err := r.db.ExecContext(ctx, `UPDATE accounts SET password_hash = $2 WHERE id = $1`, accountID, passwordHash)
	if err != nil {
		logger.Error("account repository update password hash failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("update password hash: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password hash rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

func (r *AccountRepository) TotalBalance(ctx context.Context) (domain.Money, error) {
	var total domain.Money
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(balance), 0) FROM accounts`).Scan(&total); err != nil {
		return domain.ZeroMoney, fmt.Errorf("sum account balances: %w", err)
	}
	return total, nil
}

func scanAccount(row rowScanner, account *domain.Account) error {
	if err := row.Scan(
		&account.ID,
		&account.AccountNumber,
		&account.Username,
		&account.Email,
		&account.LastName,
		&account.MiddleName,
		&account.FirstName,
		&account.Gender,
		&account.Address,
		&account.Phone,
		&account.PasswordHash,
		&account.Balance,
		&account.CreatedAt,
	); err != nil {
		return err
	}

	account.CreatedAt = account.CreatedAt.UTC()
	return nil
}
