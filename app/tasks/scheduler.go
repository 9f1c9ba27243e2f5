package tasks

import (
	"context"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/lysyi3m/feed-notify/app/database"
	"github.com/lysyi3m/feed-notify/app/metrics"
)

type Mode int

const (
	ModeRecurring    Mode = iota // run a cycle now, then follow the schedule
	ModeOnce                     // run a single cycle and stop
	ModeScheduleOnly             // wait for the first scheduled time
)

func (m Mode) String() string {
	switch m {
	case ModeRecurring:
		return "recurring"
	case ModeOnce:
		return "once"
	case ModeScheduleOnly:
		return "schedule_only"
	default:
		return "unknown"
	}
}

type State int32

const (
	StateIdle State = iota
	StateRunningCycle
	StateWaiting
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunningCycle:
		return "running_cycle"
	case StateWaiting:
		return "waiting"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type CycleResult struct {
	Partitions        []PartitionResult
	ItemsSeen         int
	ItemsNew          int
	NotificationsSent int
	Abandoned         int // partitions skipped because of shutdown
}

func (r *CycleResult) add(p PartitionResult) {
	r.Partitions = append(r.Partitions, p)
	r.ItemsSeen += p.ItemsSeen
	r.ItemsNew += p.ItemsNew
	r.NotificationsSent += p.NotificationsSent
}

type SchedulerOptions struct {
	PollInterval time.Duration
	MinDelay     time.Duration
	MaxDelay     time.Duration
}

// Scheduler drives poll cycles over partitions, one partition at a time.
type Scheduler struct {
	ingester       PartitionIngester
	loadPartitions PartitionLoader
	itemRepo       database.ItemRepository
	schedule       *DailySchedule
	opts           SchedulerOptions
	state          atomic.Int32

	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
	random func(n int64) int64
}

func NewScheduler(ingester PartitionIngester, loadPartitions PartitionLoader, itemRepo database.ItemRepository, schedule *DailySchedule, opts SchedulerOptions) *Scheduler {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Minute
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = opts.MinDelay
	}

	return &Scheduler{
		ingester:       ingester,
		loadPartitions: loadPartitions,
		itemRepo:       itemRepo,
		schedule:       schedule,
		opts:           opts,
		now:            time.Now,
		sleep:          sleepContext,
		random:         rand.Int63n,
	}
}

func (s *Scheduler) State() State {
	return State(s.state.Load())
}

func (s *Scheduler) setState(state State) {
	s.state.Store(int32(state))
}

// Run blocks until ctx is cancelled, or until the single cycle finishes in
// ModeOnce. The scheduler ends in StateStopped and cannot be restarted.
func (s *Scheduler) Run(ctx context.Context, mode Mode) {
	defer s.setState(StateStopped)

	slog.Info("Scheduler started", "mode", mode.String(), "times", s.schedule.Times(), "poll_interval", s.opts.PollInterval)

	if mode != ModeScheduleOnly {
		s.RunCycle(ctx)
		if mode == ModeOnce {
			slog.Info("Scheduler stopped", "reason", "single cycle finished")
			return
		}
	}

	next := s.schedule.Next(s.now())
	s.setState(StateWaiting)
	slog.Info("Waiting for next scheduled cycle", "next_run", next)

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler stopped", "reason", "shutdown requested")
			return
		case <-ticker.C:
			if s.now().Before(next) {
				continue
			}

			s.RunCycle(ctx)
			if ctx.Err() != nil {
				slog.Info("Scheduler stopped", "reason", "shutdown requested")
				return
			}

			next = s.schedule.Next(s.now())
			s.setState(StateWaiting)
			slog.Info("Waiting for next scheduled cycle", "next_run", next)
		}
	}
}

// RunCycle ingests every selected partition in ascending order with a
// random delay between them. Once ctx is cancelled the in-flight partition
// completes and the rest are abandoned.
func (s *Scheduler) RunCycle(ctx context.Context) CycleResult {
	s.setState(StateRunningCycle)
	startedAt := time.Now()

	var result CycleResult

	partitions, err := s.loadPartitions()
	if err != nil {
		slog.Error("Failed to load partitions", "error", err)
		return result
	}

	slog.Info("Cycle started", "partitions", len(partitions))

	for i, partitionID := range partitions {
		if ctx.Err() != nil {
			result.Abandoned = len(partitions) - i
			break
		}

		result.add(s.ingester.IngestPartition(context.WithoutCancel(ctx), partitionID))

		if i == len(partitions)-1 {
			break
		}

		delay := s.jitter()
		slog.Debug("Sleeping before next partition", "delay", delay)
		if err := s.sleep(ctx, delay); err != nil {
			result.Abandoned = len(partitions) - i - 1
			break
		}
	}

	metrics.CycleInc()

	slog.Info("Cycle completed",
		"duration", time.Since(startedAt),
		"partitions", len(result.Partitions),
		"abandoned", result.Abandoned,
		"seen", result.ItemsSeen,
		"new", result.ItemsNew,
		"sent", result.NotificationsSent)

	s.logStatistics(context.WithoutCancel(ctx))

	return result
}

func (s *Scheduler) logStatistics(ctx context.Context) {
	if s.itemRepo == nil {
		return
	}

	stats, err := s.itemRepo.Statistics(ctx)
	if err != nil {
		slog.Warn("Failed to read store statistics", "error", err)
		return
	}

	slog.Info("Store statistics",
		"total", stats.TotalCount,
		"partitions", len(stats.CountByPartition),
		"last_stored_at", stats.LastStoredAt)
}

func (s *Scheduler) jitter() time.Duration {
	span := int64(s.opts.MaxDelay - s.opts.MinDelay)
	if span <= 0 {
		return s.opts.MinDelay
	}
	return s.opts.MinDelay + time.Duration(s.random(span+1))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
