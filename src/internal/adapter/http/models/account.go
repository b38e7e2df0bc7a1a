package models

import (
	"errors"
	"strings"
)

type SignupRequest struct {
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`
	FirstName  string `json:"firstName"`
	Gender     string `json:"gender"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Confirm    string `json:"confirm"`
}

func (r SignupRequest) Validate() error {
	var errs []string

	required := []struct {
		name  string
		value string
	}{
		{"lastName", r.LastName},
		{"middleName", r.MiddleName},
		{"firstName", r.FirstName},
		{"gender", r.Gender},
		{"address", r.Address},
		{"phone", r.Phone},
		{"email", r.Email},
		{"password", r.Password},
		{"confirm", r.Confirm},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, field.name+" is required")
		}
	}

	if email := strings.TrimSpace(r.Email); email != "" && !strings.Contains(email, "@") {
		errs = append(errs, "email must be a valid address")
	}

	if r.Password != "" && r.Confirm != "" && r.Password != r.Confirm {
		errs = append(errs, "passwords do not match")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Identifier) == "" {
		errs = append(errs, "identifier is required")
	}
	if strings.TrimSpace(r.Password) == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type ForgotPasswordRequest struct {
	Identifier string `json:"identifier"`
}

func (r ForgotPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" {
		return errors.New("identifier is required")
	}
	return nil
}

type AccountResponse struct {
	AccountNumber string `json:"accountNumber"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	LastName      string `json:"lastName"`
	MiddleName    string `json:"middleName"`
	FirstName     string `json:"firstName"`
	FullName      string `json:"fullName"`
	Gender        string `json:"gender"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
	CreatedAt     string `json:"createdAt"`
}

type NotificationResponse struct {
	Username  string `json:"username"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

type DashboardResponse struct {
	Account       AccountResponse        `json:"account"`
	Notifications []NotificationResponse `json:"notifications"`
	UnreadNews    int64                  `json:"unreadNews"`
}

type ForgotPasswordResponse struct {
	Identifier string `json:"identifier"`
}
