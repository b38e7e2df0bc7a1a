package service_interfaces

import (
	"context"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/domain"
)

type AccountService interface {
	Register(ctx context.Context, req models.SignupRequest) (commons.Response[models.AccountResponse], error)
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.AccountResponse], error)
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (commons.Response[models.ForgotPasswordResponse], error)
	Dashboard(ctx context.Context, accountNumber string) (commons.Response[models.DashboardResponse], error)
}

type AccountAuthenticator interface {
	Authenticate(ctx context.Context, identifier string, password string) (domain.Account, error)
}
