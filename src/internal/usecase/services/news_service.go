package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

type NewsService struct {
	newsRepo repo_interfaces.NewsRepository
	location *time.Location
	now      func() time.Time
}

func NewNewsService(newsRepo repo_interfaces.NewsRepository, location *time.Location) *NewsService {
	if location == nil {
		location = time.UTC
	}
	return &NewsService{newsRepo: newsRepo, location: location, now: time.Now}
}

func (s *NewsService) List(ctx context.Context) (commons.Response[[]models.NewsResponse], error) {
	items, err := s.newsRepo.List(ctx)
	if err != nil {
		logger.Error("news service list failed", err, nil)
		return commons.ErrorResponse[[]models.NewsResponse]("failed to list news", "Unable to fetch news right now"), err
	}

	return commons.SuccessResponse("news fetched successfully", toNewsResponses(items, s.location)), nil
}

// ListForAccount lists news and records every item as read by the account.
func (s *NewsService) ListForAccount(ctx context.Context, accountID int64) (commons.Response[[]models.NewsResponse], error) {
	response, err := s.List(ctx)
	if err != nil {
		return response, err
	}

	if err := s.newsRepo.MarkAllRead(ctx, accountID); err != nil {
		logger.Error("news service mark read failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[[]models.NewsResponse]("failed to list news", "Unable to fetch news right now"), err
	}

	return response, nil
}

func (s *NewsService) Publish(ctx context.Context, req models.PublishNewsRequest) (commons.Response[models.NewsResponse], error) {
	logger.Info("news service publish request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.NewsResponse]("validation failed", err.Error()), err
	}

	created, err := s.newsRepo.Create(ctx, domain.News{
		Title:       strings.TrimSpace(req.Title),
		Content:     strings.TrimSpace(req.Content),
		PublishedAt: s.now().UTC(),
	})
	if err != nil {
		logger.Error("news service publish failed", err, nil)
		return commons.ErrorResponse[models.NewsResponse]("failed to publish news", "Unable to publish news right now"), err
	}

	logger.Info("news service publish success", logger.Fields{
		"newsId": created.ID,
	})

	return commons.SuccessResponse("news published successfully", toNewsResponse(created, s.location)), nil
}

func (s *NewsService) Delete(ctx context.Context, id int64) (commons.Response[struct{}], error) {
	logger.Info("news service delete request", logger.Fields{
		"newsId": id,
	})

	if err := s.newsRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("News not found"), err
		}
		logger.Error("news service delete failed", err, logger.Fields{
			"newsId": id,
		})
		return commons.ErrorResponse[struct{}]("failed to delete news", "Unable to delete news right now"), err
	}

	return commons.SuccessResponse("news deleted successfully", struct{}{}), nil
}
