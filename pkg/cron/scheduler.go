// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/FACorreiaa/splitmint/internal/pipeline"
	"github.com/FACorreiaa/splitmint/pkg/config"
)

// Scheduler runs the inbox monitor on a fixed interval.
type Scheduler struct {
	cron     *cron.Cron
	pipeline *pipeline.Pipeline
	cfg      config.MonitorConfig
	logger   *slog.Logger
	inFlight atomic.Bool
}

// NewScheduler creates the background monitor scheduler.
func NewScheduler(p *pipeline.Pipeline, cfg config.MonitorConfig, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:     c,
		pipeline: p,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start begins the periodic inbox check.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.cfg.Interval)
	if _, err := s.cron.AddFunc(spec, s.checkInbox); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("email monitor started",
		slog.String("interval", s.cfg.Interval.String()),
		slog.String("user_id", s.cfg.DefaultUserID),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("email monitor stopping")
	return s.cron.Stop()
}

// Active reports whether an inbox check is currently running.
func (s *Scheduler) Active() bool {
	return s.inFlight.Load()
}

// RunNow manually triggers an inbox check (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.checkInbox()
}

// checkInbox runs the pipeline for the configured user. A run that is still
// going when the next tick fires is not overlapped.
func (s *Scheduler) checkInbox() {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debug("previous inbox check still running, skipping tick")
		return
	}
	defer s.inFlight.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	summary, err := s.pipeline.Run(ctx, s.cfg.DefaultUserID)
	if err != nil {
		s.logger.Error("inbox check failed", slog.Any("error", err))
		return
	}

	if summary.Inserted > 0 {
		s.logger.Info("inbox check found new transactions",
			slog.Int("inserted", summary.Inserted),
			slog.Int("duplicates", summary.Duplicates),
		)
	}
}
