package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

type DirectorService struct {
	accountRepo      repo_interfaces.AccountRepository
	notificationRepo repo_interfaces.NotificationRepository
	intn             func(n int) int
	now              func() time.Time
}

func NewDirectorService(accountRepo repo_interfaces.AccountRepository, notificationRepo repo_interfaces.NotificationRepository) *DirectorService {
	return &DirectorService{
		accountRepo:      accountRepo,
		notificationRepo: notificationRepo,
		intn:             rand.Intn,
		now:              time.Now,
	}
}

// ResetPassword replaces the account password with a temporary one. The
// temporary password is only delivered through the account's notifications.
func (s *DirectorService) ResetPassword(ctx context.Context, req models.PasswordResetRequest) (commons.Response[models.PasswordResetResponse], error) {
	logger.Info("director service reset password request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.PasswordResetResponse]("validation failed", err.Error()), err
	}

	identifier := strings.TrimSpace(req.Identifier)
	account, err := s.accountRepo.GetByIdentifier(ctx, strings.ToLower(identifier), strings.ToUpper(identifier))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.PasswordResetResponse]("Account not found"), err
		}
		logger.Error("director service account lookup failed", err, nil)
		return commons.ErrorResponse[models.PasswordResetResponse]("failed to reset password", "Unable to reset password right now"), err
	}

	temporary := s.temporaryPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(temporary), bcrypt.DefaultCost)
	if err != nil {
		wrappedErr := fmt.Errorf("hash temporary password: %w", err)
		logger.Error("director service hash failed", wrappedErr, nil)
		return commons.ErrorResponse[models.PasswordResetResponse]("failed to reset password", "Unable to reset password right now"), wrappedErr
	}

	if err := s.accountRepo.UpdatePasswordHash(ctx, account.ID, string(hash)); err != nil {
		logger.Error("director service update password failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return commons.ErrorResponse[models.PasswordResetResponse]("failed to reset password", "Unable to reset password right now"), err
	}

	if _, err := s.notificationRepo.Create(ctx, domain.Notification{
		Username:  account.Username,
		Message:   "Password reset. New password: " + temporary,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		logger.Error("director service reset notification failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return commons.ErrorResponse[models.PasswordResetResponse]("failed to reset password", "Unable to reset password right now"), err
	}

	logger.Info("director service reset password success", logger.Fields{
		"accountNumber": account.AccountNumber,
	})

	return commons.SuccessResponse("password reset successfully", models.PasswordResetResponse{
		AccountNumber: account.AccountNumber,
		Username:      account.Username,
	}), nil
}

func (s *DirectorService) temporaryPassword() string {
	return fmt.Sprintf("TMP%d", 1_000_000+s.intn(9_000_000))
}
