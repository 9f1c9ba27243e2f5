package database

import (
	"context"
)

type ItemRepository interface {
	// InsertIfAbsent stores the item unless an item with the same link exists.
	// Duplicates are reported as InsertAlreadyPresent, never as an error.
	InsertIfAbsent(ctx context.Context, item Item) (InsertStatus, error)

	// Query returns items of one partition (or all when partitionID is nil),
	// newest publication first.
	Query(ctx context.Context, partitionID *int) ([]Item, error)

	// Search returns items where any keyword occurs in any enabled field,
	// most recently stored first.
	Search(ctx context.Context, keywords []string, inTitle, inDescription bool) ([]Item, error)

	Statistics(ctx context.Context) (*Statistics, error)

	// Clear deletes the items of one partition (or all when partitionID is nil)
	// and returns the number of deleted rows.
	Clear(ctx context.Context, partitionID *int) (int64, error)
}
