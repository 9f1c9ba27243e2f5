package api

import (
	"github.com/lysyi3m/feed-notify/app/database"
	"github.com/lysyi3m/feed-notify/app/tasks"
)

// SchedulerStateProvider exposes the scheduler state machine.
// Implemented by tasks.Scheduler.
type SchedulerStateProvider interface {
	State() tasks.State
}

var _ SchedulerStateProvider = (*tasks.Scheduler)(nil)

type Handler struct {
	itemRepo  database.ItemRepository
	scheduler SchedulerStateProvider
	version   string
}
