package repo_interfaces

import (
	"context"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) (domain.Notification, error)
	ListByUsername(ctx context.Context, username string, limit int) ([]domain.Notification, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Notification, error)
}
