package models

import (
	"errors"
	"strings"
)

type PublishNewsRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r PublishNewsRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		errs = append(errs, "content is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type NewsResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
}
