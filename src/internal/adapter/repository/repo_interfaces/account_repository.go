package repo_interfaces

import (
	"context"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	GetByIdentifier(ctx context.Context, email string, username string) (domain.Account, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePasswordHash(ctx context.Context, accountID int64, passwordHash string) error
	Count(ctx context.Context) (int64, error)
	TotalBalance(ctx context.Context) (domain.Money, error)
}
