package service_interfaces

import (
	"context"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
)

type AdminService interface {
	Overview(ctx context.Context) (commons.Response[models.AdminOverviewResponse], error)
}

type NotificationService interface {
	SendCustomerMessage(ctx context.Context, accountNumber string, req models.CustomerMessageRequest) (commons.Response[models.CustomerMessageResponse], error)
}

type DirectorService interface {
	ResetPassword(ctx context.Context, req models.PasswordResetRequest) (commons.Response[models.PasswordResetResponse], error)
}
