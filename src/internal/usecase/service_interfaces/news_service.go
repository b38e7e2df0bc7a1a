package service_interfaces

import (
	"context"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
)

type NewsService interface {
	List(ctx context.Context) (commons.Response[[]models.NewsResponse], error)
	ListForAccount(ctx context.Context, accountID int64) (commons.Response[[]models.NewsResponse], error)
	Publish(ctx context.Context, req models.PublishNewsRequest) (commons.Response[models.NewsResponse], error)
	Delete(ctx context.Context, id int64) (commons.Response[struct{}], error)
}
