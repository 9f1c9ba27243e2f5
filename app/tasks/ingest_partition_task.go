package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/feed-notify/app/database"
	"github.com/lysyi3m/feed-notify/app/feed"
	"github.com/lysyi3m/feed-notify/app/metrics"
	"github.com/lysyi3m/feed-notify/app/notify"
)

type PartitionResult struct {
	PartitionID       int
	ItemsSeen         int
	ItemsNew          int
	NotificationsSent int
}

type IngestPartitionTask struct {
	Task
	PartitionID int
	URL         string
	Result      PartitionResult
	fetcher     FeedFetcher
	parser      FeedParser
	itemRepo    database.ItemRepository
	policy      NotificationPolicy
	sender      notify.Sender
}

func NewIngestPartitionTask(partitionID int, url string, fetcher FeedFetcher, parser FeedParser, itemRepo database.ItemRepository, policy NotificationPolicy, sender notify.Sender) *IngestPartitionTask {
	return &IngestPartitionTask{
		Task:        NewTask(TaskTypeIngestPartition),
		PartitionID: partitionID,
		URL:         url,
		Result:      PartitionResult{PartitionID: partitionID},
		fetcher:     fetcher,
		parser:      parser,
		itemRepo:    itemRepo,
		policy:      policy,
		sender:      sender,
	}
}

// Execute fetches, parses and stores one partition. Fetch and parse
// failures are returned; per-item failures are logged and skipped.
func (t *IngestPartitionTask) Execute(ctx context.Context) error {
	resp, err := t.fetcher.Fetch(ctx, t.URL)
	if err != nil {
		metrics.FetchErrorInc()
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	metrics.FetchStatusInc(resp.StatusCode)
	if !resp.IsSuccess() {
		return fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	records, err := t.parser.Run(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}

	for _, record := range records {
		t.processRecord(ctx, record)
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"partition", t.PartitionID,
		"duration", t.GetDuration(),
		"seen", t.Result.ItemsSeen,
		"new", t.Result.ItemsNew,
		"sent", t.Result.NotificationsSent)

	return nil
}

func (t *IngestPartitionTask) processRecord(ctx context.Context, record feed.Record) {
	t.Result.ItemsSeen++
	metrics.ItemSeenInc()

	if record.Link == "" {
		slog.Debug("Skipping record without link", "partition", t.PartitionID, "title", record.Title)
		return
	}

	item := database.Item{
		Title:       record.Title,
		Description: record.Description,
		Link:        record.Link,
		PubDate:     record.PubDate,
		PartitionID: t.PartitionID,
	}

	status, err := t.itemRepo.InsertIfAbsent(context.WithoutCancel(ctx), item)
	if err != nil {
		metrics.ItemFailedInc()
		slog.Error("Failed to store item", "partition", t.PartitionID, "link", item.Link, "error", err)
		return
	}

	if status != database.InsertInserted {
		return
	}

	t.Result.ItemsNew++
	metrics.ItemNewInc()

	shouldNotify, reason := t.policy.Evaluate(item.Title, item.Description, item.PartitionID)
	slog.Debug("Notification decision", "partition", t.PartitionID, "link", item.Link, "notify", shouldNotify, "reason", reason)
	if !shouldNotify {
		return
	}

	if err := t.sender.Send(ctx, t.policy.FormatMessage(item)); err != nil {
		metrics.NotificationFailedInc()
		if errors.Is(err, notify.ErrNotConfigured) {
			slog.Debug("Notification skipped", "partition", t.PartitionID, "link", item.Link, "error", err)
		} else {
			slog.Warn("Failed to send notification", "partition", t.PartitionID, "link", item.Link, "error", err)
		}
		return
	}

	t.Result.NotificationsSent++
	metrics.NotificationSentInc()
}

// Ingester builds and runs an IngestPartitionTask per partition.
type Ingester struct {
	feedConfig *feed.Config
	fetcher    FeedFetcher
	parser     FeedParser
	itemRepo   database.ItemRepository
	policy     NotificationPolicy
	sender     notify.Sender
}

var _ PartitionIngester = (*Ingester)(nil)

func NewIngester(feedConfig *feed.Config, fetcher FeedFetcher, parser FeedParser, itemRepo database.ItemRepository, policy NotificationPolicy, sender notify.Sender) *Ingester {
	return &Ingester{
		feedConfig: feedConfig,
		fetcher:    fetcher,
		parser:     parser,
		itemRepo:   itemRepo,
		policy:     policy,
		sender:     sender,
	}
}

func (i *Ingester) IngestPartition(ctx context.Context, partitionID int) PartitionResult {
	task := NewIngestPartitionTask(partitionID, i.feedConfig.PartitionURL(partitionID), i.fetcher, i.parser, i.itemRepo, i.policy, i.sender)
	task.Start()

	if err := task.Execute(ctx); err != nil {
		slog.Error("Task execution failed",
			"type", string(task.GetType()),
			"id", task.GetID(),
			"partition", partitionID,
			"duration", task.GetDuration(),
			"error", err)
	}

	return task.Result
}
