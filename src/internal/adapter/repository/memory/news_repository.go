package memory

import (
	"context"
	"slices"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

type NewsRepository struct {
	db *DB
}

func NewNewsRepository(db *DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Create(_ context.Context, news domain.News) (domain.News, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.nextNewsID++
	news.ID = r.db.nextNewsID
	if news.PublishedAt.IsZero() {
		news.PublishedAt = r.db.now()
	}
	news.PublishedAt = news.PublishedAt.UTC()
	r.db.news = append(r.db.news, news)

	return news, nil
}

func (r *NewsRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	idx := slices.IndexFunc(r.db.news, func(n domain.News) bool { return n.ID == id })
	if idx < 0 {
		return domain.ErrRecordNotFound
	}
	r.db.news = slices.Delete(r.db.news, idx, idx+1)
	for _, reads := range r.db.newsReads {
		delete(reads, id)
	}

	return nil
}

func (r *NewsRepository) List(_ context.Context) ([]domain.News, error) {
	r.db.mu.RLock()
	items := slices.Clone(r.db.news)
	r.db.mu.RUnlock()

	slices.SortStableFunc(items, func(a, b domain.News) int {
		if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	if items == nil {
		items = make([]domain.News, 0)
	}
	return items, nil
}

func (r *NewsRepository) MarkAllRead(_ context.Context, accountID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	reads, ok := r.db.newsReads[accountID]
	if !ok {
		reads = make(map[int64]struct{})
		r.db.newsReads[accountID] = reads
	}
	for _, n := range r.db.news {
		reads[n.ID] = struct{}{}
	}

	return nil
}

func (r *NewsRepository) CountUnread(_ context.Context, accountID int64) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	reads := r.db.newsReads[accountID]
	var count int64
	for _, n := range r.db.news {
		if _, ok := reads[n.ID]; !ok {
			count++
		}
	}
	return count, nil
}
