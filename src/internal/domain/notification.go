package domain

import "time"

type Notification struct {
	ID        int64
	Username  string
	Message   string
	CreatedAt time.Time
}
