package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

type NotificationService struct {
	accountRepo      repo_interfaces.AccountRepository
	notificationRepo repo_interfaces.NotificationRepository
	now              func() time.Time
}

func NewNotificationService(accountRepo repo_interfaces.AccountRepository, notificationRepo repo_interfaces.NotificationRepository) *NotificationService {
	return &NotificationService{
		accountRepo:      accountRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

func (s *NotificationService) SendCustomerMessage(ctx context.Context, accountNumber string, req models.CustomerMessageRequest) (commons.Response[models.CustomerMessageResponse], error) {
	logger.Info("notification service customer message request", logger.Fields{
		"accountNumber": accountNumber,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CustomerMessageResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByAccountNumber(ctx, strings.TrimSpace(accountNumber))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.CustomerMessageResponse]("Account not found"), err
		}
		logger.Error("notification service account lookup failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.CustomerMessageResponse]("failed to send message", "Unable to send message right now"), err
	}

	message := fmt.Sprintf("Customer service: %s", strings.TrimSpace(req.Message))
	if _, err := s.notificationRepo.Create(ctx, domain.Notification{
		Username:  account.Username,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		logger.Error("notification service create failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.CustomerMessageResponse]("failed to send message", "Unable to send message right now"), err
	}

	logger.Info("notification service customer message success", logger.Fields{
		"accountNumber": account.AccountNumber,
		"username":      account.Username,
	})

	return commons.SuccessResponse("message sent successfully", models.CustomerMessageResponse{
		AccountNumber: account.AccountNumber,
		Username:      account.Username,
		Message:       message,
	}), nil
}
