package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/feed-notify/app/database"
)

// ClearItemsTask removes stored items of one partition, or all of them
// when PartitionID is nil.
type ClearItemsTask struct {
	Task
	PartitionID *int
	Removed     int64
	itemRepo    database.ItemRepository
}

func NewClearItemsTask(partitionID *int, itemRepo database.ItemRepository) *ClearItemsTask {
	return &ClearItemsTask{
		Task:        NewTask(TaskTypeClearItems),
		PartitionID: partitionID,
		itemRepo:    itemRepo,
	}
}

func (t *ClearItemsTask) Execute(ctx context.Context) error {
	removed, err := t.itemRepo.Clear(context.WithoutCancel(ctx), t.PartitionID)
	if err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	t.Removed = removed

	scope := "all"
	if t.PartitionID != nil {
		scope = fmt.Sprintf("partition %d", *t.PartitionID)
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"scope", scope,
		"duration", t.GetDuration(),
		"removed", removed)

	return nil
}
