package models

import (
	"errors"
	"strings"
)

type AdminOverviewResponse struct {
	AccountCount  int64                  `json:"accountCount"`
	ContactCount  int64                  `json:"contactCount"`
	TotalBalance  string                 `json:"totalBalance"`
	Currency      string                 `json:"currency"`
	Notifications []NotificationResponse `json:"notifications"`
	Contacts      []ContactResponse      `json:"contacts"`
}

type PasswordResetRequest struct {
	Identifier string `json:"identifier"`
}

func (r PasswordResetRequest) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" {
		return errors.New("identifier is required")
	}
	return nil
}

type PasswordResetResponse struct {
	AccountNumber string `json:"accountNumber"`
	Username      string `json:"username"`
}
