package service

import (
	"sync"
	"time"

	"quiz-forge/internal/metrics"
)

// AttemptTimers holds one pending expiry per in-progress attempt.
type AttemptTimers struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewAttemptTimers() *AttemptTimers {
	return &AttemptTimers{timers: make(map[string]*time.Timer)}
}

// Schedule runs fn for attemptID after d, replacing any earlier schedule.
func (t *AttemptTimers) Schedule(attemptID string, d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.timers[attemptID]; ok {
		old.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		// a newer schedule owns the slot
		if t.timers[attemptID] != timer {
			t.mu.Unlock()
			return
		}
		delete(t.timers, attemptID)
		metrics.ActiveTimers.Set(float64(len(t.timers)))
		t.mu.Unlock()
		fn()
	})
	t.timers[attemptID] = timer
	metrics.ActiveTimers.Set(float64(len(t.timers)))
}

// Cancel stops the pending expiry of attemptID, if any.
func (t *AttemptTimers) Cancel(attemptID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[attemptID]; ok {
		timer.Stop()
		delete(t.timers, attemptID)
		metrics.ActiveTimers.Set(float64(len(t.timers)))
	}
}

// Pending reports whether attemptID has an armed timer.
func (t *AttemptTimers) Pending(attemptID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.timers[attemptID]
	return ok
}

func (t *AttemptTimers) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}

// StopAll cancels every pending expiry. Used on shutdown.
func (t *AttemptTimers) StopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
	metrics.ActiveTimers.Set(0)
}
