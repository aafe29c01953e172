package job

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const defaultEventStatusTimeout = 30 * time.Second

// EventStatusUpdater recomputes the cached status of calendar events
type EventStatusUpdater interface {
	UpdateEventStatuses(ctx context.Context) (int, error)
}

// EventStatusJob moves calendar events between upcoming, ongoing and
// completed as time passes. Cancelled events are left alone by the updater.
type EventStatusJob struct {
	updater EventStatusUpdater
	timeout time.Duration
	logger  *zap.Logger
}

// NewEventStatusJob creates a new EventStatusJob instance
func NewEventStatusJob(updater EventStatusUpdater, logger *zap.Logger) *EventStatusJob {
	return &EventStatusJob{
		updater: updater,
		timeout: defaultEventStatusTimeout,
		logger:  logger,
	}
}

// Name identifies the job in scheduler logs
func (j *EventStatusJob) Name() string {
	return "event_status"
}

// Run executes one pass. It implements cron.Job.
func (j *EventStatusJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	updated, err := j.updater.UpdateEventStatuses(ctx)
	if err != nil {
		j.logger.Error("Failed to update calendar event statuses",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	if updated == 0 {
		j.logger.Debug("No calendar event status changes")
		return
	}
	j.logger.Info("Calendar event statuses updated",
		zap.Int("updated", updated),
		zap.Duration("duration", time.Since(start)),
	)
}
