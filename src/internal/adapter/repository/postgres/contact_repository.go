package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, message domain.ContactMessage) (domain.ContactMessage, error) {
	const query = `
INSERT INTO contacts (last_name, middle_name, first_name, email, phone, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		message.LastName,
		message.MiddleName,
		message.FirstName,
		message.Email,
		message.Phone,
		message.Message,
		message.CreatedAt,
	).Scan(&message.ID); err != nil {
		logger.Error("contact repository create failed", err, logger.Fields{
			"email": message.Email,
		})
		return domain.ContactMessage{}, fmt.Errorf("create contact message: %w", err)
	}

	return message, nil
}

func (r *ContactRepository) ListRecent(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	const query = `
SELECT id, last_name, middle_name, first_name, email, phone, message, created_at
FROM contacts
ORDER BY created_at DESC, id DESC
LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		logger.Error("contact repository list failed", err, nil)
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.ContactMessage, 0)
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.LastName, &m.MiddleName, &m.FirstName, &m.Email, &m.Phone, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		m.CreatedAt = m.CreatedAt.UTC()
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact messages: %w", err)
	}

	return messages, nil
}

func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM contacts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count contact messages: %w", err)
	}
	return count, nil
}
