package service_interfaces

import (
	"context"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
)

type LedgerService interface {
	AdminOperation(ctx context.Context, accountNumber string, req models.AdminOperationRequest, actor string) (commons.Response[models.LedgerOperationResponse], error)
}
