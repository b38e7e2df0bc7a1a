package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

type NewsRepository struct {
	db *sql.DB
}

func NewNewsRepository(db *sql.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Create(ctx context.Context, news domain.News) (domain.News, error) {
	logger.Info("news repository create", logger.Fields{
		"title": news.Title,
	})

	const query = `
INSERT INTO news (title, content, published_at)
VALUES ($1, $2, $3)
RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, news.Title, news.Content, news.PublishedAt).Scan(&news.ID); err != nil {
		logger.Error("news repository create failed", err, logger.Fields{
			"title": news.Title,
		})
		return domain.News{}, fmt.Errorf("create news: %w", err)
	}

	return news, nil
}

func (r *NewsRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		logger.Error("news repository delete failed", err, logger.Fields{
			"newsId": id,
		})
		return fmt.Errorf("delete news: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete news rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *NewsRepository) List(ctx context.Context) ([]domain.News, error) {
	const query = `
SELECT id, title, content, published_at
FROM news
ORDER BY published_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("news repository list failed", err, nil)
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	items := make([]domain.News, 0)
	for rows.Next() {
		var n domain.News
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan news: %w", err)
		}
		n.PublishedAt = n.PublishedAt.UTC()
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate news: %w", err)
	}

	return items, nil
}

func (r *NewsRepository) MarkAllRead(ctx context.Context, accountID int64) error {
	const query = `
INSERT INTO news_reads (account_id, news_id)
SELECT $1, n.id
FROM news n
ON CONFLICT (account_id, news_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, accountID); err != nil {
		logger.Error("news repository mark all read failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("mark news read: %w", err)
	}

	return nil
}

func (r *NewsRepository) CountUnread(ctx context.Context, accountID int64) (int64, error) {
	const query = `
SELECT COUNT(1)
FROM news n
WHERE NOT EXISTS (
	SELECT 1 FROM news_reads nr WHERE nr.news_id = n.id AND nr.account_id = $1
)`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread news: %w", err)
	}

	return count, nil
}
