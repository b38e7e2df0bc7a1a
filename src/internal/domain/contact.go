package domain

import "time"

type ContactMessage struct {
	ID         int64
	LastName   string
	MiddleName string
	FirstName  string
	Email      string
	Phone      string
	Message    string
	CreatedAt  time.Time
}
