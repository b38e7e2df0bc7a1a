package service_interfaces

import (
	"context"
	"io"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
)

type StatementService interface {
	Statement(ctx context.Context, accountNumber string) (commons.Response[models.StatementResponse], error)
	WriteCSV(w io.Writer, statement models.StatementResponse) error
}
