// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes
const (
	OutcomeSuccess = "success"
	OutcomeCached  = "cached"
	OutcomeFailed  = "failed"
)

// Attempt start modes and completion triggers
const (
	StartNew     = "new"
	StartResumed = "resumed"
	StartReused  = "reused"

	TriggerManual = "manual"
	TriggerAuto   = "auto"
)

var (
	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizforge_generation_requests_total",
			Help: "Total number of question generation requests",
		},
		[]string{"complexity", "outcome"},
	)

	GeneratedQuestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizforge_generated_questions_total",
			Help: "Parsed question blocks by verdict",
		},
		[]string{"verdict"}, // accepted/rejected
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quizforge_generation_duration_seconds",
			Help:    "Time spent waiting on the text generator and parsing its output",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"complexity"},
	)

	AttemptsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizforge_attempts_started_total",
			Help: "Attempt starts by mode",
		},
		[]string{"mode"},
	)

	AttemptsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizforge_attempts_completed_total",
			Help: "Completed attempts by trigger",
		},
		[]string{"trigger"},
	)

	ActiveTimers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quizforge_attempt_timers_active",
			Help: "Currently armed attempt expiry timers",
		},
	)
)
