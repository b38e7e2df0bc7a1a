package services

import (
	"context"
	"strings"
	"time"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

type ContactService struct {
	contactRepo repo_interfaces.ContactRepository
	location    *time.Location
	now         func() time.Time
}

func NewContactService(contactRepo repo_interfaces.ContactRepository, location *time.Location) *ContactService {
	if location == nil {
		location = time.UTC
	}
	return &ContactService{contactRepo: contactRepo, location: location, now: time.Now}
}

func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) (commons.Response[models.ContactResponse], error) {
	logger.Info("contact service submit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.ContactResponse]("validation failed", err.Error()), err
	}

	created, err := s.contactRepo.Create(ctx, domain.ContactMessage{
		LastName:   strings.TrimSpace(req.LastName),
		MiddleName: strings.TrimSpace(req.MiddleName),
		FirstName:  strings.TrimSpace(req.FirstName),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Message:    strings.TrimSpace(req.Message),
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		logger.Error("contact service submit failed", err, nil)
		return commons.ErrorResponse[models.ContactResponse]("failed to send message", "Unable to send message right now"), err
	}

	return commons.SuccessResponse("message sent successfully", toContactResponse(created, s.location)), nil
}
