package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/activity-recommender/internal/generator"
)

const defaultInterval = 15 * time.Minute

// Runner is the batch job the scheduler repeats.
type Runner interface {
	Run(ctx context.Context) generator.RunSummary
}

// Scheduler periodically regenerates all city reports.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    Runner
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. timeout bounds a single run.
func New(runner Runner, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	s := gocron.NewScheduler(time.UTC)
	// A slow run must not overlap the next one.
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		runner:    runner,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens one interval after Start; callers run the initial batch themselves.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = defaultInterval
		s.logger.Warn("scheduler: non-positive interval, using default", "configured", s.interval.String(), "interval", interval.String())
	}

	_, err := s.scheduler.Every(interval).WaitForSchedule().Do(s.runOnce)
	if err != nil {
		return err
	}

	s.logger.Info("scheduler started", "interval", interval.String())
	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) runOnce() {
	s.logger.Info("scheduler: running generation job")

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	summary := s.runner.Run(ctx)
	s.logger.Info("scheduler: completed generation job",
		"run_id", summary.RunID,
		"succeeded", len(summary.Succeeded),
		"failed", len(summary.Failed),
	)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
