package tasks

import (
	"context"

	"github.com/lysyi3m/feed-notify/app/database"
	"github.com/lysyi3m/feed-notify/app/feed"
)

// FeedFetcher downloads one feed document.
// Implemented by feed.Fetcher.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*feed.Response, error)
}

// FeedParser turns a feed document into flat records.
// Implemented by feed.Parser.
type FeedParser interface {
	Run(data []byte) ([]feed.Record, error)
}

// NotificationPolicy decides and renders notifications for new items.
// Implemented by feed.Policy.
type NotificationPolicy interface {
	Evaluate(title, description string, partitionID int) (bool, string)
	FormatMessage(item database.Item) string
}

// PartitionIngester processes a single partition and never fails; problems
// are logged and reflected in the counters.
// Implemented by Ingester.
type PartitionIngester interface {
	IngestPartition(ctx context.Context, partitionID int) PartitionResult
}

var (
	_ FeedFetcher        = (*feed.Fetcher)(nil)
	_ FeedParser         = (*feed.Parser)(nil)
	_ NotificationPolicy = (*feed.Policy)(nil)
)

// PartitionLoader returns the partitions to visit in the next cycle.
type PartitionLoader func() ([]int, error)
