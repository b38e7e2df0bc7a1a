package models

import (
	"errors"
	"strings"
)

type GetChargesRequest struct {
	Amount string `json:"amount"`
}

func (r GetChargesRequest) Validate() error {
	if strings.TrimSpace(r.Amount) == "" {
		return errors.New("amount is required")
	}
	return nil
}

type GetChargesResponse struct {
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	WithdrawalFee string `json:"withdrawalFee"`
	TotalDebited  string `json:"totalDebited"`
}
