package service_interfaces

import (
	"context"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
)

type ContactService interface {
	Submit(ctx context.Context, req models.ContactRequest) (commons.Response[models.ContactResponse], error)
}
