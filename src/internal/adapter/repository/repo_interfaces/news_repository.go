package repo_interfaces

import (
	"context"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

type NewsRepository interface {
	Create(ctx context.Context, news domain.News) (domain.News, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.News, error)
	MarkAllRead(ctx context.Context, accountID int64) error
	CountUnread(ctx context.Context, accountID int64) (int64, error)
}
