package memory

import (
	"context"
	"slices"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

type ContactRepository struct {
	db *DB
}

func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(_ context.Context, message domain.ContactMessage) (domain.ContactMessage, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.nextContactID++
	message.ID = r.db.nextContactID
	if message.CreatedAt.IsZero() {
		message.CreatedAt = r.db.now()
	}
	message.CreatedAt = message.CreatedAt.UTC()
	r.db.contacts = append(r.db.contacts, message)

	return message, nil
}

func (r *ContactRepository) ListRecent(_ context.Context, limit int) ([]domain.ContactMessage, error) {
	r.db.mu.RLock()
	out := slices.Clone(r.db.contacts)
	r.db.mu.RUnlock()

	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = make([]domain.ContactMessage, 0)
	}
	return out, nil
}

func (r *ContactRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return int64(len(r.db.contacts)), nil
}
