package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aidflow/fundflow-backend/internal/config"
	"github.com/aidflow/fundflow-backend/internal/service/reconcile"
)

const reconcileTimeout = 5 * time.Minute

type reconciler interface {
	Run(ctx context.Context) (reconcile.Report, error)
}

// Scheduler runs the reconciler on its cron schedule. A pass that is still
// running when the next tick fires causes that tick to be skipped.
type Scheduler struct {
	cron *cron.Cron
	job  reconciler
	log  *slog.Logger
	base context.Context
}

// NewScheduler registers the reconcile job. Jobs run under base, so
// cancelling it aborts an in-flight pass.
func NewScheduler(base context.Context, logger *slog.Logger, cfg config.ReconcileConfig, job reconciler) (*Scheduler, error) {
	log := logger.With("component", "scheduler")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(log.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))

	s := &Scheduler{cron: c, job: job, log: log, base: base}
	if _, err := c.AddFunc(cfg.Schedule, s.runReconcile); err != nil {
		return nil, fmt.Errorf("schedule reconcile %q: %w", cfg.Schedule, err)
	}
	return s, nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", slog.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop halts the scheduler. The returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(s.base, reconcileTimeout)
	defer cancel()

	if _, err := s.job.Run(ctx); err != nil {
		s.log.ErrorContext(ctx, "reconcile pass failed", slog.String("error", err.Error()))
	}
}
