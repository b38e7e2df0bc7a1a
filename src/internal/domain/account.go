package domain

import (
	"fmt"
	"strings"
	"time"
)

type Account struct {
	ID            int64
	AccountNumber string
	Username      string
	Email         string
	LastName      string
	MiddleName    string
	FirstName     string
	Gender        string
	Address       string
	Phone         string
	PasswordHash  string
	Balance       Money
	CreatedAt     time.Time
}

// NewAccount opens an account with a zero balance. Balance changes after
// this point go through the ledger store only.
func NewAccount(accountNumber, username, email, passwordHash string) (Account, error) {
	if !IsValidAccountNumber(accountNumber) {
		return Account{}, fmt.Errorf("invalid account number %q", accountNumber)
	}
	if strings.TrimSpace(username) == "" {
		return Account{}, fmt.Errorf("username is required")
	}
	if strings.TrimSpace(email) == "" {
		return Account{}, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return Account{}, fmt.Errorf("password hash is required")
	}

	return Account{
		AccountNumber: accountNumber,
		Username:      username,
		Email:         email,
		PasswordHash:  passwordHash,
		Balance:       ZeroMoney,
	}, nil
}

func (a Account) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.LastName, a.MiddleName, a.FirstName} {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
