package memory

import (
	"context"
	"fmt"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.accounts {
		if existing.AccountNumber == account.AccountNumber ||
			existing.Username == account.Username ||
			existing.Email == account.Email {
			return domain.Account{}, fmt.Errorf("create account: %w", domain.ErrDuplicateRecord)
		}
	}

	r.db.nextAccountID++
	account.ID = r.db.nextAccountID
	account.CreatedAt = r.db.now().UTC()
	r.db.accounts[account.ID] = account
	r.db.accountIDs[account.AccountNumber] = account.ID

	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, ok := r.db.accountIDs[accountNumber]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return r.db.accounts[id], nil
}

func (r *AccountRepository) GetByIdentifier(_ context.Context, email string, username string) (domain.Account, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var (
		found domain.Account
		ok    bool
	)
	for _, account := range r.db.accounts {
		if account.Email != email && account.Username != username {
			continue
		}
		if !ok || account.ID < found.ID {
			found, ok = account, true
		}
	}
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return found, nil
}

func (r *AccountRepository) ExistsByAccountNumber(_ context.Context, accountNumber string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.db.accountIDs[accountNumber]
	return ok, nil
}

func (r *AccountRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	return r.any(func(a domain.Account) bool { return a.Username == username }), nil
}

func (r *AccountRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return r.any(func(a domain.Account) bool { return a.Email == email }), nil
}

func (r *AccountRepository) any(match func(domain.Account) bool) bool {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, account := range r.db.accounts {
		if match(account) {
			return true
		}
	}
	return false
}

func (r *AccountRepository) UpdatePasswordHash(_ context.Context, accountID int64, passwordHash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	account, ok := r.db.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.PasswordHash = passwordHash
	r.db.accounts[accountID] = account
	return nil
}

func (r *AccountRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return int64(len(r.db.accounts)), nil
}

func (r *AccountRepository) TotalBalance(_ context.Context) (domain.Money, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	total := domain.ZeroMoney
	for _, account := range r.db.accounts {
		total = total.Add(account.Balance)
	}
	return total, nil
}
