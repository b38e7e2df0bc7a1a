package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

type StaffService struct {
	staffRepo repo_interfaces.StaffRepository
}

func NewStaffService(staffRepo repo_interfaces.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

func (s *StaffService) Authenticate(ctx context.Context, role domain.StaffRole, username string, password string) (domain.StaffMember, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.StaffMember{}, domain.ErrInvalidCredentials
	}

	member, err := s.staffRepo.GetByUsername(ctx, role, username)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.StaffMember{}, domain.ErrInvalidCredentials
		}
		return domain.StaffMember{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.StaffMember{}, domain.ErrInvalidCredentials
		}
		return domain.StaffMember{}, fmt.Errorf("compare staff password: %w", err)
	}

	return member, nil
}

// EnsureStaff provisions a bootstrap staff account when it does not exist yet.
// An existing account keeps its stored password.
func (s *StaffService) EnsureStaff(ctx context.Context, role domain.StaffRole, username string, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		logger.Info("staff service bootstrap skipped", logger.Fields{
			"role":     role,
			"username": username,
		})
		return nil
	}

	_, err := s.staffRepo.GetByUsername(ctx, role, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return fmt.Errorf("lookup %s %s: %w", role, username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash staff password: %w", err)
	}

	if _, err := s.staffRepo.Create(ctx, domain.StaffMember{
		Username:     username,
		Role:         role,
		PasswordHash: string(hash),
	}); err != nil && !errors.Is(err, domain.ErrDuplicateRecord) {
		return fmt.Errorf("create %s %s: %w", role, username, err)
	}

	logger.Info("staff service bootstrap account ready", logger.Fields{
		"role":     role,
		"username": username,
	})
	return nil
}
