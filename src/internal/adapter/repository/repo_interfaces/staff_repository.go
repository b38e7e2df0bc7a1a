package repo_interfaces

import (
	"context"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

type StaffRepository interface {
	Create(ctx context.Context, member domain.StaffMember) (domain.StaffMember, error)
	GetByUsername(ctx context.Context, role domain.StaffRole, username string) (domain.StaffMember, error)
}
