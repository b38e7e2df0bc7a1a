package models

import (
	"errors"
	"strings"
)

const (
	OperationTypeDebit  = "debit"
	OperationTypeCredit = "credit"
)

type AdminOperationRequest struct {
	Type    string `json:"type"`
	Amount  string `json:"amount"`
	Confirm bool   `json:"confirm"`
}

// Validate checks the shape of the form; amount parsing happens in the ledger service.
func (r AdminOperationRequest) Validate() error {
	var errs []string

	switch strings.ToLower(strings.TrimSpace(r.Type)) {
	case OperationTypeDebit, OperationTypeCredit:
	case "":
		errs = append(errs, "type is required")
	default:
		errs = append(errs, "type must be debit or credit")
	}

	if strings.TrimSpace(r.Amount) == "" {
		errs = append(errs, "amount is required")
	}

	if !r.Confirm {
		errs = append(errs, "operation must be confirmed")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type LedgerEntryResponse struct {
	ID          int64  `json:"id"`
	OperationID string `json:"operationId"`
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	Amount      string `json:"amount"`
	CreatedAt   string `json:"createdAt"`
}

type LedgerOperationResponse struct {
	AccountNumber string                `json:"accountNumber"`
	Type          string                `json:"type"`
	Amount        string                `json:"amount"`
	Fee           string                `json:"fee"`
	Balance       string                `json:"balance"`
	Currency      string                `json:"currency"`
	Entries       []LedgerEntryResponse `json:"entries"`
}

type CustomerMessageRequest struct {
	Message string `json:"message"`
}

func (r CustomerMessageRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("message is required")
	}
	return nil
}

type CustomerMessageResponse struct {
	AccountNumber string `json:"accountNumber"`
	Username      string `json:"username"`
	Message       string `json:"message"`
}
