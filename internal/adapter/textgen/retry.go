package textgen

import (
	"context"
	"errors"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

// RetryingGenerator retries rate-limited calls a bounded number of times with a fixed delay.
// Any other failure is returned at once.
type RetryingGenerator struct {
	next       domain.TextGenerator
	maxRetries int
	delay      time.Duration
	// wait is swapped in tests
	wait func(ctx context.Context, d time.Duration) error
}

func NewRetryingGenerator(next domain.TextGenerator, maxRetries int, delay time.Duration) *RetryingGenerator {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryingGenerator{
		next:       next,
		maxRetries: maxRetries,
		delay:      delay,
		wait:       sleepCtx,
	}
}

// Generate implements domain.TextGenerator
func (r *RetryingGenerator) Generate(ctx context.Context, req domain.TextRequest) (string, error) {
	var rateErr *domain.RateLimitError
	for attempt := 0; ; attempt++ {
		out, err := r.next.Generate(ctx, req)
		if err == nil {
			return out, nil
		}
		if !errors.As(err, &rateErr) || attempt >= r.maxRetries {
			return "", err
		}
		logger.Get().Warn("Text generation rate limited, retrying",
			zap.Int("retry", attempt+1),
			zap.Int("max_retries", r.maxRetries),
			zap.Duration("delay", r.delay))
		if werr := r.wait(ctx, r.delay); werr != nil {
			return "", werr
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
