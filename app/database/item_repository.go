package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/araddon/dateparse"
	"github.com/lysyi3m/feed-notify/app/match"
	"github.com/samber/lo"
)

var _ ItemRepository = (*SQLiteItemRepository)(nil)

var itemColumns = []string{
	"id", "title", "description", "link", "pub_date", "published_at",
	"partition_id", "created_at", "updated_at",
}

// SQLiteItemRepository handles database operations for feed items
type SQLiteItemRepository struct {
	db  *DB
	now func() time.Time
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *DB) *SQLiteItemRepository {
	return &SQLiteItemRepository{db: db, now: time.Now}
}

func (r *SQLiteItemRepository) InsertIfAbsent(ctx context.Context, item Item) (InsertStatus, error) {
	if item.Link == "" {
		return 0, ErrEmptyLink
	}

	now := r.now().UTC()

	query, args, err := sq.Insert("rss_items").
		Columns("title", "description", "link", "pub_date", "published_at", "partition_id", "created_at", "updated_at").
		Values(item.Title, item.Description, item.Link, item.PubDate, parsePubDate(item.PubDate), item.PartitionID, now, now).
		Suffix("ON CONFLICT(link) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return InsertAlreadyPresent, nil
	}
	return InsertInserted, nil
}

func (r *SQLiteItemRepository) Query(ctx context.Context, partitionID *int) ([]Item, error) {
	builder := sq.Select(itemColumns...).
		From("rss_items").
		OrderBy("published_at IS NULL", "published_at DESC", "pub_date DESC", "id DESC")

	if partitionID != nil {
		builder = builder.Where(sq.Eq{"partition_id": *partitionID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build items query: %w", err)
	}

	items := []Item{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	return items, nil
}

func (r *SQLiteItemRepository) Search(ctx context.Context, keywords []string, inTitle, inDescription bool) ([]Item, error) {
	terms := match.NormalizeTerms(keywords)
	if len(terms) == 0 || (!inTitle && !inDescription) {
		return []Item{}, nil
	}

	// SQLite LIKE only folds ASCII, so matching happens on folded text in Go.
	query, args, err := sq.Select(itemColumns...).
		From("rss_items").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	var items []Item
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	matched := lo.Filter(items, func(item Item, _ int) bool {
		return (inTitle && match.AnyIn(item.Title, terms)) ||
			(inDescription && match.AnyIn(item.Description, terms))
	})

	return lo.UniqBy(matched, func(item Item) string { return item.Link }), nil
}

func (r *SQLiteItemRepository) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{CountByPartition: make(map[int]int)}

	if err := r.db.GetContext(ctx, &stats.TotalCount, "SELECT COUNT(*) FROM rss_items"); err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	var counts []struct {
		PartitionID int `db:"partition_id"`
		Count       int `db:"count"`
	}
	err := r.db.SelectContext(ctx, &counts, `
		SELECT partition_id, COUNT(*) AS count
		FROM rss_items
		GROUP BY partition_id
		ORDER BY partition_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count items by partition: %w", err)
	}
	for _, c := range counts {
		stats.CountByPartition[c.PartitionID] = c.Count
	}

	var lastStoredAt time.Time
	err = r.db.QueryRowxContext(ctx, "SELECT created_at FROM rss_items ORDER BY created_at DESC, id DESC LIMIT 1").Scan(&lastStoredAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("failed to get last stored time: %w", err)
	default:
		stats.LastStoredAt = &lastStoredAt
	}

	return stats, nil
}

func (r *SQLiteItemRepository) Clear(ctx context.Context, partitionID *int) (int64, error) {
	builder := sq.Delete("rss_items")
	if partitionID != nil {
		builder = builder.Where(sq.Eq{"partition_id": *partitionID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to clear items: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return deleted, nil
}

// parsePubDate returns nil for dates the parser does not understand; such
// items order by their raw pub_date text instead.
func parsePubDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil
	}
	parsed = parsed.UTC()
	return &parsed
}
