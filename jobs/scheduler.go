package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"calc-hub/repository"
)

const purgeTimeout = 5 * time.Minute

// Scheduler runs background maintenance on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	history repository.CalculationRepository
	maxAge  time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

func NewScheduler(history repository.CalculationRepository, maxAge time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		history: history,
		maxAge:  maxAge,
		logger:  logger,
		now:     time.Now,
	}
}

// Start registers the retention purge on schedule (standard five-field cron
// or a descriptor such as "@daily") and starts the scheduler.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		if _, err := s.PurgeHistory(ctx); err != nil {
			s.logger.Error("history purge failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule history purge %q: %w", schedule, err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", schedule, "retention", s.maxAge)
	return nil
}

// Stop stops scheduling and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// PurgeHistory deletes calculations older than the retention age.
func (s *Scheduler) PurgeHistory(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.maxAge)
	n, err := s.history.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge history before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	s.logger.Info("history purged", "deleted", n, "cutoff", cutoff)
	return n, nil
}
