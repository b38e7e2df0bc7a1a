package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

const (
	defaultLedgerMaxAttempts = 3
	defaultLedgerBackoff     = 50 * time.Millisecond
	defaultPublishTimeout    = 2 * time.Second
)

// LedgerResult describes one committed unit of work.
type LedgerResult struct {
	Account domain.Account
	Entries []domain.LedgerEntry
	Fee     domain.Money
}

// LedgerService is the account balance engine. It is the only caller of
// LedgerStore.WithAccountLock, so every balance change goes through it.
type LedgerService struct {
	store          repo_interfaces.LedgerStore
	fees           FeePolicy
	publisher      domain.EventPublisher
	publishTimeout time.Duration
	currency       string
	location       *time.Location
	maxAttempts    int
	backoff        time.Duration
	now            func() time.Time
	newOperationID func() string
}

type LedgerOption func(*LedgerService)

func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(s *LedgerService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLedgerRetry(maxAttempts int, backoff time.Duration) LedgerOption {
	return func(s *LedgerService) {
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
		if backoff >= 0 {
			s.backoff = backoff
		}
	}
}

func WithEventPublisher(publisher domain.EventPublisher) LedgerOption {
	return func(s *LedgerService) {
		s.publisher = publisher
	}
}

// WithPublishTimeout bounds the time spent publishing the events of one
// committed operation.
func WithPublishTimeout(timeout time.Duration) LedgerOption {
	return func(s *LedgerService) {
		if timeout > 0 {
			s.publishTimeout = timeout
		}
	}
}

func WithOperationIDs(next func() string) LedgerOption {
	return func(s *LedgerService) {
		if next != nil {
			s.newOperationID = next
		}
	}
}

func WithDisplayLocation(loc *time.Location) LedgerOption {
	return func(s *LedgerService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func NewLedgerService(store repo_interfaces.LedgerStore, fees FeePolicy, currency string, opts ...LedgerOption) *LedgerService {
	s := &LedgerService{
		store:          store,
		fees:           fees,
		currency:       strings.TrimSpace(currency),
		location:       time.UTC,
		maxAttempts:    defaultLedgerMaxAttempts,
		backoff:        defaultLedgerBackoff,
		publishTimeout: defaultPublishTimeout,
		now:            time.Now,
		newOperationID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Debit deposits amount into the account.
func (s *LedgerService) Debit(ctx context.Context, accountNumber string, amount domain.Money, op domain.Operation) (LedgerResult, error) {
	logger.Info("ledger service debit request", logger.Fields{
		"accountNumber": accountNumber,
		"amount":        amount.String(),
		"actor":         op.Actor,
	})

	if !amount.IsPositive() {
		err := fmt.Errorf("%w: debit amount must be greater than zero", domain.ErrInvalidAmount)
		logger.Error("ledger service debit validation failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return LedgerResult{}, err
	}

	at := op.Instant(s.now)
	operationID := s.newOperationID()

	var result LedgerResult
	err := s.withRetry(ctx, accountNumber, func(tx repo_interfaces.LedgerTx) error {
		account := tx.Account()

		entry, err := domain.NewLedgerEntry(account.ID, operationID, domain.EntryKindDebit, amount, at)
		if err != nil {
			return err
		}

		balance := account.Balance.Add(amount)
		if err := tx.SetBalance(ctx, balance); err != nil {
			return err
		}

		stored, err := tx.AppendEntries(ctx, entry)
		if err != nil {
			return err
		}

		if err := tx.AddNotifications(ctx, domain.Notification{
			Username:  account.Username,
			Message:   fmt.Sprintf("Debit: +%s %s", amount, s.currency),
			CreatedAt: at,
		}); err != nil {
			return err
		}

		account.Balance = balance
		result = LedgerResult{Account: account, Entries: stored, Fee: domain.ZeroMoney}
		return nil
	})
	if err != nil {
		logger.Error("ledger service debit failed", err, logger.Fields{
			"accountNumber": accountNumber,
			"amount":        amount.String(),
		})
		return LedgerResult{}, err
	}

	s.publish(ctx, result, op)
	logger.Info("ledger service debit success", logger.Fields{
		"accountNumber": accountNumber,
		"operationId":   operationID,
		"balance":       result.Account.Balance.String(),
	})

	return result, nil
}

// Credit withdraws amount plus the withdrawal fee. Both entries share one
// timestamp and one operation id.
func (s *LedgerService) Credit(ctx context.Context, accountNumber string, amount domain.Money, op domain.Operation) (LedgerResult, error) {
	logger.Info("ledger service credit request", logger.Fields{
		"accountNumber": accountNumber,
		"amount":        amount.String(),
		"actor":         op.Actor,
	})

	if !amount.IsPositive() {
		err := fmt.Errorf("%w: credit amount must be greater than zero", domain.ErrInvalidAmount)
		logger.Error("ledger service credit validation failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return LedgerResult{}, err
	}

	fee := s.fees.WithdrawalFee(amount)
	total := amount.Add(fee)
	at := op.Instant(s.now)
	operationID := s.newOperationID()

	var result LedgerResult
	err := s.withRetry(ctx, accountNumber, func(tx repo_interfaces.LedgerTx) error {
		account := tx.Account()
		if account.Balance.LessThan(total) {
			return fmt.Errorf("%w: balance %s is below %s", domain.ErrInsufficientFunds, account.Balance, total)
		}

		withdrawal, err := domain.NewLedgerEntry(account.ID, operationID, domain.EntryKindCredit, amount.Neg(), at)
		if err != nil {
			return err
		}
		// The fee row is written even when a sub-cent withdrawal rounds it to 0.00.
		feeEntry, err := domain.NewLedgerEntry(account.ID, operationID, domain.EntryKindWithdrawalFee, fee.Neg(), at)
		if err != nil {
			return err
		}
		entries := []domain.LedgerEntry{withdrawal, feeEntry}
		notifications := []domain.Notification{
			{
				Username:  account.Username,
				Message:   fmt.Sprintf("Credit: -%s %s", amount, s.currency),
				CreatedAt: at,
			},
			{
				Username:  account.Username,
				Message:   fmt.Sprintf("Withdrawal fee: -%s %s", fee, s.currency),
				CreatedAt: at,
			},
		}

		balance := account.Balance.Sub(total)
		if err := tx.SetBalance(ctx, balance); err != nil {
			return err
		}

		stored, err := tx.AppendEntries(ctx, entries...)
		if err != nil {
			return err
		}

		if err := tx.AddNotifications(ctx, notifications...); err != nil {
			return err
		}

		account.Balance = balance
		result = LedgerResult{Account: account, Entries: stored, Fee: fee}
		return nil
	})
	if err != nil {
		logger.Error("ledger service credit failed", err, logger.Fields{
			"accountNumber": accountNumber,
			"amount":        amount.String(),
		})
		return LedgerResult{}, err
	}

	s.publish(ctx, result, op)
	logger.Info("ledger service credit success", logger.Fields{
		"accountNumber": accountNumber,
		"operationId":   operationID,
		"fee":           fee.String(),
		"balance":       result.Account.Balance.String(),
	})

	return result, nil
}

// applyMonthlyFeeIfDue re-checks the due condition under the account lock and
// charges the fee when one is owed. It reports whether a fee was recorded.
func (s *LedgerService) applyMonthlyFeeIfDue(ctx context.Context, accountNumber string, op domain.Operation) (LedgerResult, bool, error) {
	at := op.Instant(s.now)
	operationID := s.newOperationID()

	var (
		result  LedgerResult
		applied bool
	)
	err := s.withRetry(ctx, accountNumber, func(tx repo_interfaces.LedgerTx) error {
		applied = false
		account := tx.Account()

		latest, found, err := tx.LatestEntryOfKind(ctx, domain.EntryKindMonthlyFee)
		if err != nil {
			return err
		}
		var last *time.Time
		if found {
			last = &latest.CreatedAt
		}
		if !s.fees.IsMonthlyFeeDue(last, at) {
			return nil
		}

		fee := s.fees.MonthlyFee(account.Balance)
		if !fee.IsPositive() {
			return nil
		}

		entry, err := domain.NewLedgerEntry(account.ID, operationID, domain.EntryKindMonthlyFee, fee.Neg(), at)
		if err != nil {
			return err
		}

		balance := account.Balance.Sub(fee)
		if err := tx.SetBalance(ctx, balance); err != nil {
			return err
		}

		stored, err := tx.AppendEntries(ctx, entry)
		if err != nil {
			return err
		}

		if err := tx.AddNotifications(ctx, domain.Notification{
			Username:  account.Username,
			Message:   fmt.Sprintf("Account fee: -%s %s", fee, s.currency),
			CreatedAt: at,
		}); err != nil {
			return err
		}

		account.Balance = balance
		result = LedgerResult{Account: account, Entries: stored, Fee: fee}
		applied = true
		return nil
	})
	if err != nil {
		logger.Error("ledger service monthly fee failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return LedgerResult{}, false, err
	}

	if applied {
		s.publish(ctx, result, op)
		logger.Info("ledger service monthly fee applied", logger.Fields{
			"accountNumber": accountNumber,
			"fee":           result.Fee.String(),
			"balance":       result.Account.Balance.String(),
		})
	}

	return result, applied, nil
}

// AdminOperation handles the administrative debit/credit form.
func (s *LedgerService) AdminOperation(ctx context.Context, accountNumber string, req models.AdminOperationRequest, actor string) (commons.Response[models.LedgerOperationResponse], error) {
	logger.Info("ledger service admin operation request", logger.Fields{
		"accountNumber": accountNumber,
		"payload":       logger.SanitizePayload(req),
		"actor":         actor,
	})

	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		err := fmt.Errorf("accountNumber is required")
		return commons.ErrorResponse[models.LedgerOperationResponse]("validation failed", err.Error()), err
	}

	if err := req.Validate(); err != nil {
		logger.Error("ledger service admin operation validation failed", err, nil)
		return commons.ErrorResponse[models.LedgerOperationResponse]("validation failed", err.Error()), err
	}

	amount, err := domain.ParsePositiveAmount(req.Amount)
	if err != nil {
		return commons.ErrorResponse[models.LedgerOperationResponse]("validation failed", err.Error()), err
	}

	op := domain.Operation{Actor: actor}
	opType := strings.ToLower(strings.TrimSpace(req.Type))

	var result LedgerResult
	switch opType {
	case models.OperationTypeDebit:
		result, err = s.Debit(ctx, accountNumber, amount, op)
	default:
		result, err = s.Credit(ctx, accountNumber, amount, op)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			return commons.ErrorResponse[models.LedgerOperationResponse]("Account not found"), err
		case errors.Is(err, domain.ErrInsufficientFunds):
			return commons.ErrorResponse[models.LedgerOperationResponse]("Insufficient funds", "Balance does not cover amount plus withdrawal fee"), err
		case errors.Is(err, domain.ErrInvalidAmount):
			return commons.ErrorResponse[models.LedgerOperationResponse]("validation failed", err.Error()), err
		case errors.Is(err, domain.ErrConcurrencyConflict):
			return commons.ErrorResponse[models.LedgerOperationResponse]("Concurrent update conflict", "Please retry the operation"), err
		default:
			return commons.ErrorResponse[models.LedgerOperationResponse]("failed to record operation", "Unable to record operation right now"), err
		}
	}

	response := models.LedgerOperationResponse{
		AccountNumber: result.Account.AccountNumber,
		Type:          opType,
		Amount:        amount.String(),
		Fee:           result.Fee.String(),
		Balance:       result.Account.Balance.String(),
		Currency:      s.currency,
		Entries:       toEntryResponses(result.Entries, s.location),
	}

	message := "debit recorded successfully"
	if opType == models.OperationTypeCredit {
		message = "credit recorded successfully"
	}

	return commons.SuccessResponse(message, response), nil
}

func (s *LedgerService) withRetry(ctx context.Context, accountNumber string, fn func(tx repo_interfaces.LedgerTx) error) error {
	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = s.store.WithAccountLock(ctx, accountNumber, fn)
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}

		logger.Info("ledger service concurrency conflict", logger.Fields{
			"accountNumber": accountNumber,
			"attempt":       attempt,
			"maxAttempts":   s.maxAttempts,
		})
		if attempt == s.maxAttempts {
			break
		}

		timer := time.NewTimer(s.backoff * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return err
}

// publish emits one event per committed entry. Failures are logged only; the
// ledger has already committed. All events of one operation share a single
// timeout that does not follow the request's cancellation.
func (s *LedgerService) publish(ctx context.Context, result LedgerResult, op domain.Operation) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	for _, entry := range result.Entries {
		event := domain.LedgerEvent{
			EventType:     domain.EventLedgerEntryPosted,
			EntryID:       entry.ID,
			OperationID:   entry.OperationID,
			AccountNumber: result.Account.AccountNumber,
			Kind:          entry.Kind,
			Amount:        entry.Amount,
			BalanceAfter:  result.Account.Balance,
			Currency:      s.currency,
			Actor:         op.Actor,
			OccurredAt:    entry.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, result.Account.AccountNumber, event); err != nil {
			logger.Error("ledger service publish event failed", err, logger.Fields{
				"accountNumber": result.Account.AccountNumber,
				"entryId":       entry.ID,
				"operationId":   entry.OperationID,
			})
		}
	}
}
