package services

import (
	"context"
	"strings"
	"time"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

const overviewLimit = 200

type AdminService struct {
	accountRepo      repo_interfaces.AccountRepository
	contactRepo      repo_interfaces.ContactRepository
	notificationRepo repo_interfaces.NotificationRepository
	currency         string
	location         *time.Location
}

func NewAdminService(
	accountRepo repo_interfaces.AccountRepository,
	contactRepo repo_interfaces.ContactRepository,
	notificationRepo repo_interfaces.NotificationRepository,
	currency string,
	location *time.Location,
) *AdminService {
	if location == nil {
		location = time.UTC
	}
	return &AdminService{
		accountRepo:      accountRepo,
		contactRepo:      contactRepo,
		notificationRepo: notificationRepo,
		currency:         strings.TrimSpace(currency),
		location:         location,
	}
}

func (s *AdminService) Overview(ctx context.Context) (commons.Response[models.AdminOverviewResponse], error) {
	logger.Info("admin service overview request", nil)

	failed := func(err error) (commons.Response[models.AdminOverviewResponse], error) {
		logger.Error("admin service overview failed", err, nil)
		return commons.ErrorResponse[models.AdminOverviewResponse]("failed to load overview", "Unable to load overview right now"), err
	}

	accounts, err := s.accountRepo.Count(ctx)
	if err != nil {
		return failed(err)
	}
	contacts, err := s.contactRepo.Count(ctx)
	if err != nil {
		return failed(err)
	}
	total, err := s.accountRepo.TotalBalance(ctx)
	if err != nil {
		return failed(err)
	}
	notifications, err := s.notificationRepo.ListRecent(ctx, overviewLimit)
	if err != nil {
		return failed(err)
	}
	recentContacts, err := s.contactRepo.ListRecent(ctx, overviewLimit)
	if err != nil {
		return failed(err)
	}

	contactResponses := make([]models.ContactResponse, 0, len(recentContacts))
	for _, c := range recentContacts {
		contactResponses = append(contactResponses, toContactResponse(c, s.location))
	}

	response := models.AdminOverviewResponse{
		AccountCount:  accounts,
		ContactCount:  contacts,
		TotalBalance:  total.String(),
		Currency:      s.currency,
		Notifications: toNotificationResponses(notifications, s.location),
		Contacts:      contactResponses,
	}

	return commons.SuccessResponse("overview fetched successfully", response), nil
}
