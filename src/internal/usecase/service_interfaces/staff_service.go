package service_interfaces

import (
	"context"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

type StaffAuthenticator interface {
	Authenticate(ctx context.Context, role domain.StaffRole, username string, password string) (domain.StaffMember, error)
}
