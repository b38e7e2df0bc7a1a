package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

const (
	maxRegistrationAttempts = 20
	dashboardNotifications  = 100
)

type MonthlyFeeEnsurer interface {
	EnsureMonthlyFee(ctx context.Context, accountNumber string, op domain.Operation) (bool, error)
}

type AccountService struct {
	accountRepo      repo_interfaces.AccountRepository
	notificationRepo repo_interfaces.NotificationRepository
	newsRepo         repo_interfaces.NewsRepository
	monthlyFees      MonthlyFeeEnsurer
	currency         string
	location         *time.Location
	intn             func(n int) int
	now              func() time.Time
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	notificationRepo repo_interfaces.NotificationRepository,
	newsRepo repo_interfaces.NewsRepository,
	monthlyFees MonthlyFeeEnsurer,
	currency string,
	location *time.Location,
) *AccountService {
	if location == nil {
		location = time.UTC
	}
	return &AccountService{
		accountRepo:      accountRepo,
		notificationRepo: notificationRepo,
		newsRepo:         newsRepo,
		monthlyFees:      monthlyFees,
		currency:         strings.TrimSpace(currency),
		location:         location,
		intn:             rand.Intn,
		now:              time.Now,
	}
}

func (s *AccountService) Register(ctx context.Context, req models.SignupRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service register validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.accountRepo.ExistsByEmail(ctx, email)
	if err != nil {
		logger.Error("account service register email check failed", err, logger.Fields{
			"email": email,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to register", "Unable to create account right now"), err
	}
	if taken {
		err := fmt.Errorf("email %s: %w", email, domain.ErrDuplicateRecord)
		return commons.ErrorResponse[models.AccountResponse]("Email already in use"), err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		wrappedErr := fmt.Errorf("hash password: %w", err)
		logger.Error("account service register hash failed", wrappedErr, nil)
		return commons.ErrorResponse[models.AccountResponse]("failed to register", "Unable to create account right now"), wrappedErr
	}

	baseUsername := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(req.LastName)+strings.TrimSpace(req.FirstName), " ", ""))

	var created domain.Account
	for attempt := 1; attempt <= maxRegistrationAttempts; attempt++ {
		username, err := s.pickUsername(ctx, baseUsername, attempt > 1)
		if err != nil {
			logger.Error("account service register username check failed", err, logger.Fields{
				"username": baseUsername,
			})
			return commons.ErrorResponse[models.AccountResponse]("failed to register", "Unable to create account right now"), err
		}

		accountNumber := domain.GenerateAccountNumber(s.intn)
		exists, err := s.accountRepo.ExistsByAccountNumber(ctx, accountNumber)
		if err != nil {
			logger.Error("account service register account number check failed", err, logger.Fields{
				"accountNumber": accountNumber,
			})
			return commons.ErrorResponse[models.AccountResponse]("failed to register", "Unable to create account right now"), err
		}
		if exists {
			continue
		}

		account, err := domain.NewAccount(accountNumber, username, email, string(hash))
		if err != nil {
			return commons.ErrorResponse[models.AccountResponse]("failed to register", "Unable to create account right now"), err
		}
		account.LastName = strings.TrimSpace(req.LastName)
		account.MiddleName = strings.TrimSpace(req.MiddleName)
		account.FirstName = strings.TrimSpace(req.FirstName)
		account.Gender = strings.TrimSpace(req.Gender)
		account.Address = strings.TrimSpace(req.Address)
		account.Phone = strings.TrimSpace(req.Phone)

		created, err = s.accountRepo.Create(ctx, account)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateRecord) {
			logger.Error("account service register repository failed", err, logger.Fields{
				"accountNumber": accountNumber,
			})
			return commons.ErrorResponse[models.AccountResponse]("failed to register", "Unable to create account right now"), err
		}

		// Lost a race on one of the unique columns. Email is the only one the user must change.
		if taken, checkErr := s.accountRepo.ExistsByEmail(ctx, email); checkErr == nil && taken {
			return commons.ErrorResponse[models.AccountResponse]("Email already in use"), err
		}
		logger.Info("account service register collision, retrying", logger.Fields{
			"attempt":       attempt,
			"accountNumber": accountNumber,
			"username":      username,
		})
	}
	if created.ID == 0 {
		err := fmt.Errorf("no free account number after %d attempts", maxRegistrationAttempts)
		logger.Error("account service register exhausted attempts", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("failed to register", "Unable to create account right now"), err
	}

	if _, err := s.notificationRepo.Create(ctx, domain.Notification{
		Username:  created.Email,
		Message:   fmt.Sprintf("New client: %s_%s_%s", created.LastName, created.MiddleName, created.FirstName),
		CreatedAt: s.now().UTC(),
	}); err != nil {
		logger.Error("account service register notification failed", err, logger.Fields{
			"accountNumber": created.AccountNumber,
		})
	}

	logger.Info("account service register success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
		"username":      created.Username,
	})

	return commons.SuccessResponse("account created successfully", toAccountResponse(created, s.currency, s.location)), nil
}

func (s *AccountService) pickUsername(ctx context.Context, base string, forceSuffix bool) (string, error) {
	if !forceSuffix {
		exists, err := s.accountRepo.ExistsByUsername(ctx, base)
		if err != nil {
			return "", err
		}
		if !exists {
			return base, nil
		}
	}
	return base + strconv.Itoa(100+s.intn(900)), nil
}

// Authenticate resolves identifier as a lower-cased email or an upper-cased
// username and checks password against the stored hash.
func (s *AccountService) Authenticate(ctx context.Context, identifier string, password string) (domain.Account, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return domain.Account{}, domain.ErrInvalidCredentials
	}

	account, err := s.accountRepo.GetByIdentifier(ctx, strings.ToLower(identifier), strings.ToUpper(identifier))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, domain.ErrInvalidCredentials
		}
		return domain.Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.Account{}, domain.ErrInvalidCredentials
		}
		return domain.Account{}, fmt.Errorf("compare password: %w", err)
	}

	return account, nil
}

func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.Authenticate(ctx, req.Identifier, strings.TrimSpace(req.Password))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			logger.Info("account service login rejected", logger.Fields{
				"identifier": req.Identifier,
			})
			return commons.ErrorResponse[models.AccountResponse]("Invalid credentials"), err
		}
		logger.Error("account service login failed", err, logger.Fields{
			"identifier": req.Identifier,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to login", "Unable to login right now"), err
	}

	account, err = s.refreshAfterMonthlyFee(ctx, account)
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("failed to login", "Unable to login right now"), err
	}

	logger.Info("account service login success", logger.Fields{
		"accountNumber": account.AccountNumber,
	})

	return commons.SuccessResponse("login successful", toAccountResponse(account, s.currency, s.location)), nil
}

func (s *AccountService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (commons.Response[models.ForgotPasswordResponse], error) {
	logger.Info("account service forgot password request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.ForgotPasswordResponse]("validation failed", err.Error()), err
	}

	identifier := strings.ToUpper(strings.TrimSpace(req.Identifier))
	if _, err := s.notificationRepo.Create(ctx, domain.Notification{
		Username:  identifier,
		Message:   "Password recovery requested",
		CreatedAt: s.now().UTC(),
	}); err != nil {
		logger.Error("account service forgot password notification failed", err, logger.Fields{
			"identifier": identifier,
		})
		return commons.ErrorResponse[models.ForgotPasswordResponse]("failed to record request", "Unable to record request right now"), err
	}

	return commons.SuccessResponse("recovery request received", models.ForgotPasswordResponse{Identifier: identifier}), nil
}

func (s *AccountService) Dashboard(ctx context.Context, accountNumber string) (commons.Response[models.DashboardResponse], error) {
	logger.Info("account service dashboard request", logger.Fields{
		"accountNumber": accountNumber,
	})

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.DashboardResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.DashboardResponse]("failed to load dashboard", "Unable to load dashboard right now"), err
	}

	account, err = s.refreshAfterMonthlyFee(ctx, account)
	if err != nil {
		return commons.ErrorResponse[models.DashboardResponse]("failed to load dashboard", "Unable to load dashboard right now"), err
	}

	notifications, err := s.notificationRepo.ListByUsername(ctx, account.Username, dashboardNotifications)
	if err != nil {
		logger.Error("account service dashboard notifications failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.DashboardResponse]("failed to load dashboard", "Unable to load dashboard right now"), err
	}

	unread, err := s.newsRepo.CountUnread(ctx, account.ID)
	if err != nil {
		logger.Error("account service dashboard unread news failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.DashboardResponse]("failed to load dashboard", "Unable to load dashboard right now"), err
	}

	response := models.DashboardResponse{
		Account:       toAccountResponse(account, s.currency, s.location),
		Notifications: toNotificationResponses(notifications, s.location),
		UnreadNews:    unread,
	}

	return commons.SuccessResponse("dashboard fetched successfully", response), nil
}

// refreshAfterMonthlyFee runs the recurring fee check and reloads the account
// when a fee was charged.
func (s *AccountService) refreshAfterMonthlyFee(ctx context.Context, account domain.Account) (domain.Account, error) {
	applied, err := s.monthlyFees.EnsureMonthlyFee(ctx, account.AccountNumber, domain.Operation{Actor: account.Username})
	if err != nil {
		logger.Error("account service monthly fee check failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, err
	}
	if !applied {
		return account, nil
	}

	refreshed, err := s.accountRepo.GetByAccountNumber(ctx, account.AccountNumber)
	if err != nil {
		return domain.Account{}, fmt.Errorf("reload account after monthly fee: %w", err)
	}
	return refreshed, nil
}
