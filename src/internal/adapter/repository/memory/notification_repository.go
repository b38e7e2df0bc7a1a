package memory

import (
	"context"
	"slices"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

type NotificationRepository struct {
	db *DB
}

func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(_ context.Context, notification domain.Notification) (domain.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return r.db.insertNotificationLocked(notification), nil
}

func (r *NotificationRepository) ListByUsername(_ context.Context, username string, limit int) ([]domain.Notification, error) {
	return r.list(limit, func(n domain.Notification) bool { return n.Username == username }), nil
}

func (r *NotificationRepository) ListRecent(_ context.Context, limit int) ([]domain.Notification, error) {
	return r.list(limit, func(domain.Notification) bool { return true }), nil
}

// list returns matches newest first.
func (r *NotificationRepository) list(limit int, match func(domain.Notification) bool) []domain.Notification {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]domain.Notification, 0)
	for _, n := range r.db.notifications {
		if match(n) {
			out = append(out, n)
		}
	}

	slices.SortStableFunc(out, func(a, b domain.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
