// Package scheduler runs the daily incremental sync on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/plan4land/tourindex/internal/logger"
)

// cutoffLayout is the provider's modification-date format.
const cutoffLayout = "20060102"

// RunFunc runs one incremental sync for the given cutoff date (YYYYMMDD).
type RunFunc func(ctx context.Context, cutoff string) error

// Scheduler triggers the incremental sync job. Overlap prevention is the
// scheduler's single-entry cron chain; across processes it stays the
// deployment's concern.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	run      RunFunc
	logger   logger.Logger
}

// New creates a scheduler that invokes run on the given cron schedule
// (standard 5-field format).
func New(schedule string, run RunFunc, log logger.Logger) *Scheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(parser), cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))
	return &Scheduler{
		cron:     c,
		schedule: schedule,
		run:      run,
		logger:   log,
	}
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		cutoff := Yesterday(time.Now())
		s.logger.Info("Scheduled incremental sync triggered", logger.String("cutoff", cutoff))
		if runErr := s.run(ctx, cutoff); runErr != nil {
			s.logger.Error("Scheduled incremental sync failed", logger.Error(runErr))
		}
	})
	if err != nil {
		return fmt.Errorf("register sync job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", logger.String("schedule", s.schedule))
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Scheduler stopped")
}

// Yesterday returns the day before now in the provider's date format, the
// normal cutoff for a daily incremental sync.
func Yesterday(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(cutoffLayout)
}
