package repo_interfaces

import (
	"context"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, message domain.ContactMessage) (domain.ContactMessage, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ContactMessage, error)
	Count(ctx context.Context) (int64, error)
}
