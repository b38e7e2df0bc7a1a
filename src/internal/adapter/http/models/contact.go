package models

import (
	"errors"
	"strings"
)

type ContactRequest struct {
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`
	FirstName  string `json:"firstName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

func (r ContactRequest) Validate() error {
	var errs []string

	for _, field := range []struct {
		name  string
		value string
	}{
		{"lastName", r.LastName},
		{"middleName", r.MiddleName},
		{"firstName", r.FirstName},
		{"email", r.Email},
		{"phone", r.Phone},
		{"message", r.Message},
	} {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, field.name+" is required")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type ContactResponse struct {
	ID         int64  `json:"id"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`
	FirstName  string `json:"firstName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	CreatedAt  string `json:"createdAt"`
}
