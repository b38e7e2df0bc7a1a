package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

// StatementService replays the ledger into a running total. It never writes.
type StatementService struct {
	accountRepo repo_interfaces.AccountRepository
	ledger      repo_interfaces.LedgerStore
	currency    string
	location    *time.Location
}

func NewStatementService(accountRepo repo_interfaces.AccountRepository, ledger repo_interfaces.LedgerStore, currency string, location *time.Location) *StatementService {
	if location == nil {
		location = time.UTC
	}
	return &StatementService{
		accountRepo: accountRepo,
		ledger:      ledger,
		currency:    strings.TrimSpace(currency),
		location:    location,
	}
}

func (s *StatementService) Build(ctx context.Context, accountNumber string) (models.StatementResponse, error) {
	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return models.StatementResponse{}, err
	}

	entries, err := s.ledger.ListEntries(ctx, account.ID)
	if err != nil {
		return models.StatementResponse{}, fmt.Errorf("load ledger entries: %w", err)
	}
	domain.SortEntries(entries)

	rows := make([]models.StatementRow, 0, len(entries))
	running := domain.ZeroMoney
	for _, entry := range entries {
		running = running.Add(entry.Amount)
		rows = append(rows, models.StatementRow{
			Date:         commons.FormatDisplayTime(entry.CreatedAt, s.location),
			Kind:         string(entry.Kind),
			Label:        entry.Kind.Label(),
			Amount:       entry.Amount.String(),
			RunningTotal: running.String(),
		})
	}

	if !running.Equal(account.Balance) {
		logger.Info("statement service replay differs from stored balance", logger.Fields{
			"accountNumber": accountNumber,
			"replayed":      running.String(),
			"balance":       account.Balance.String(),
		})
	}

	return models.StatementResponse{
		Header: models.StatementHeader{
			FullName:      account.FullName(),
			AccountNumber: account.AccountNumber,
			Balance:       account.Balance.String(),
			Currency:      s.currency,
		},
		Rows: rows,
	}, nil
}

func (s *StatementService) Statement(ctx context.Context, accountNumber string) (commons.Response[models.StatementResponse], error) {
	logger.Info("statement service statement request", logger.Fields{
		"accountNumber": accountNumber,
	})

	statement, err := s.Build(ctx, accountNumber)
	if err != nil {
		logger.Error("statement service build failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.StatementResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.StatementResponse]("failed to build statement", "Unable to build statement right now"), err
	}

	return commons.SuccessResponse("statement fetched successfully", statement), nil
}

// WriteCSV renders a statement with a header block followed by one row per entry.
func (s *StatementService) WriteCSV(w io.Writer, statement models.StatementResponse) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"Name", statement.Header.FullName},
		{"Account number", statement.Header.AccountNumber},
		{"Current balance", statement.Header.Balance + " " + statement.Header.Currency},
		{},
		{"Date", "Type", "Amount (" + statement.Header.Currency + ")", "Running total (" + statement.Header.Currency + ")"},
	}
	for _, row := range statement.Rows {
		records = append(records, []string{row.Date, row.Label, row.Amount, row.RunningTotal})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write statement csv: %w", err)
	}
	return nil
}
