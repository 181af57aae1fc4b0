// Package scheduler runs the periodic housekeeping jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/middleware"
	"github.com/robfig/cron/v3"
)

const (
	JobStaleDrawers = "stale_drawers"
	JobPurgeDeleted = "purge_deleted"

	jobTimeout = 5 * time.Minute
)

// JobRecorder receives the outcome of each job run.
type JobRecorder interface {
	RecordJobRun(job string, duration time.Duration, success bool)
}

// Config holds the schedules, in six-field cron syntax with seconds, and job parameters.
type Config struct {
	StaleDrawerCron  string
	StaleDrawerAfter time.Duration
	PurgeCron        string
	// Retention of soft-deleted rows; zero or less disables the purge job.
	Retention time.Duration
	Location  *time.Location
}

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron         *cron.Cron
	housekeeping portssvc.HousekeepingSvcFacade
	recorder     JobRecorder
	logger       *slog.Logger
	cfg          Config
}

// New creates a scheduler and registers its jobs. recorder may be nil.
func New(cfg Config, housekeeping portssvc.HousekeepingSvcFacade, recorder JobRecorder, logger *slog.Logger) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelWarn))
	c := cron.New(
		cron.WithLocation(cfg.Location),
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	s := &Scheduler{
		cron:         c,
		housekeeping: housekeeping,
		recorder:     recorder,
		logger:       logger.With(slog.String("component", "scheduler")),
		cfg:          cfg,
	}
	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	if _, err := s.cron.AddFunc(s.cfg.StaleDrawerCron, s.RunStaleDrawerCheck); err != nil {
		return fmt.Errorf("failed to register %s job with schedule %q: %w", JobStaleDrawers, s.cfg.StaleDrawerCron, err)
	}

	if s.cfg.Retention <= 0 {
		s.logger.Info("Soft-delete purge disabled")
	} else if _, err := s.cron.AddFunc(s.cfg.PurgeCron, s.RunPurge); err != nil {
		return fmt.Errorf("failed to register %s job with schedule %q: %w", JobPurgeDeleted, s.cfg.PurgeCron, err)
	}

	s.logger.Info("Cron jobs registered", slog.Int("count", len(s.cron.Entries())))
	return nil
}

// RunStaleDrawerCheck warns about drawers left open longer than the configured age.
func (s *Scheduler) RunStaleDrawerCheck() {
	s.run(JobStaleDrawers, func(ctx context.Context) error {
		n, err := s.housekeeping.WarnStaleDrawers(ctx, s.cfg.StaleDrawerAfter)
		if err == nil && n > 0 {
			middleware.GetLoggerFromCtx(ctx).Info("Stale drawers found", slog.Int("count", n))
		}
		return err
	})
}

// RunPurge permanently removes rows soft deleted before the retention window.
func (s *Scheduler) RunPurge() {
	s.run(JobPurgeDeleted, func(ctx context.Context) error {
		n, err := s.housekeeping.PurgeDeletedRecords(ctx, s.cfg.Retention)
		if err == nil {
			middleware.GetLoggerFromCtx(ctx).Info("Soft-deleted records purged", slog.Int64("count", n))
		}
		return err
	})
}

func (s *Scheduler) run(job string, fn func(ctx context.Context) error) {
	logger := s.logger.With(slog.String("job", job))
	ctx, cancel := context.WithTimeout(middleware.WithLogger(context.Background(), logger), jobTimeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error("Job failed", slog.String("error", err.Error()), slog.Duration("duration", elapsed))
	} else {
		logger.Debug("Job finished", slog.Duration("duration", elapsed))
	}
	if s.recorder != nil {
		s.recorder.RecordJobRun(job, elapsed, err == nil)
	}
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Cron scheduler started")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler stopped")
}

// JobCount is the number of registered jobs.
func (s *Scheduler) JobCount() int {
	return len(s.cron.Entries())
}
