package memory

import (
	"context"
	"fmt"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

type StaffRepository struct {
	db *DB
}

func NewStaffRepository(db *DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(_ context.Context, member domain.StaffMember) (domain.StaffMember, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.staff {
		if existing.Role == member.Role && existing.Username == member.Username {
			return domain.StaffMember{}, fmt.Errorf("create staff member: %w", domain.ErrDuplicateRecord)
		}
	}

	r.db.nextStaffID++
	member.ID = r.db.nextStaffID
	member.CreatedAt = r.db.now().UTC()
	r.db.staff = append(r.db.staff, member)

	return member, nil
}

func (r *StaffRepository) GetByUsername(_ context.Context, role domain.StaffRole, username string) (domain.StaffMember, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, member := range r.db.staff {
		if member.Role == role && member.Username == username {
			return member, nil
		}
	}
	return domain.StaffMember{}, domain.ErrRecordNotFound
}
