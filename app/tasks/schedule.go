package tasks

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// DailySchedule fires at fixed times of day in the location of the time
// passed to Next.
type DailySchedule struct {
	times     []string
	schedules []cron.Schedule
}

func NewDailySchedule(times []string) (*DailySchedule, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("at least one schedule time is required")
	}

	schedules := make([]cron.Schedule, 0, len(times))
	for _, at := range times {
		parsed, err := time.Parse("15:04", at)
		if err != nil {
			return nil, fmt.Errorf("failed to parse schedule time %q: %w", at, err)
		}

		schedule, err := cron.ParseStandard(fmt.Sprintf("%d %d * * *", parsed.Minute(), parsed.Hour()))
		if err != nil {
			return nil, fmt.Errorf("failed to build schedule for %q: %w", at, err)
		}
		schedules = append(schedules, schedule)
	}

	return &DailySchedule{times: times, schedules: schedules}, nil
}

// Next returns the earliest fire time strictly after t
func (d *DailySchedule) Next(t time.Time) time.Time {
	var next time.Time
	for _, schedule := range d.schedules {
		candidate := schedule.Next(t)
		if next.IsZero() || candidate.Before(next) {
			next = candidate
		}
	}
	return next
}

func (d *DailySchedule) Times() []string {
	return d.times
}
