// Package job runs the periodic background work of the API process.
package job

import (
	"context"
	"fmt"
	"time"

	"quiz-forge/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 30 * time.Second

// AttemptExpirer is the part of the attempt service the sweep needs.
type AttemptExpirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

// Scheduler wraps a cron runner. Overlapping runs of the same job are skipped.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
	}
}

// AddExpireAttempts schedules the sweep that auto-submits attempts whose clock ran out
// while no in-process timer was watching them.
func (s *Scheduler) AddExpireAttempts(spec string, expirer AttemptExpirer) error {
	_, err := s.cron.AddFunc(spec, func() {
		ExpireAttempts(context.Background(), expirer)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for expire-attempts job: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Get().Warn("Scheduler stop timed out with jobs still running")
	}
}

// ExpireAttempts runs one sweep.
func ExpireAttempts(ctx context.Context, expirer AttemptExpirer) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := expirer.ExpireOverdue(ctx)
	if err != nil {
		logger.Get().Error("Expire attempts job failed", zap.Error(err), zap.Int("expired", n))
		return
	}
	if n > 0 {
		logger.Get().Info("Expired overdue attempts",
			zap.Int("expired", n),
			zap.Duration("duration", time.Since(start)))
	}
}
