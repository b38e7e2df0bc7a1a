package domain

import "time"

type News struct {
	ID          int64
	Title       string
	Content     string
	PublishedAt time.Time
}
