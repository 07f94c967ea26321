package job

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"quiz-forge/internal/config"
	"quiz-forge/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "error"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type countingExpirer struct {
	calls int32
	err   error
}

func (e *countingExpirer) ExpireOverdue(ctx context.Context) (int, error) {
	atomic.AddInt32(&e.calls, 1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("sweep must run with a deadline")
	}
	return 1, e.err
}

func TestScheduler_RejectsInvalidSpec(t *testing.T) {
	s := NewScheduler()
	err := s.AddExpireAttempts("every now and then", &countingExpirer{})
	assert.Error(t, err)
}

func TestScheduler_RunsExpireAttempts(t *testing.T) {
	expirer := &countingExpirer{}
	s := NewScheduler()
	require.NoError(t, s.AddExpireAttempts("@every 1s", expirer))

	s.Start()
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&expirer.calls) > 0
	}, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestExpireAttempts_ToleratesErrors(t *testing.T) {
	expirer := &countingExpirer{err: errors.New("db down")}
	ExpireAttempts(context.Background(), expirer)
	assert.EqualValues(t, 1, expirer.calls)
}
