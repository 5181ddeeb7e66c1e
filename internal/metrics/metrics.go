// Package metrics defines prometheus metrics to expose
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InvocationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_agent_invocations_total",
			Help: "Total number of prompt invocations by outcome",
		},
		[]string{"variant", "status"},
	)

	InvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prompt_agent_invocation_duration_seconds",
			Help:    "Time taken by a prompt invocation including retries",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 15, 20, 30, 60},
		},
		[]string{"variant"},
	)

	AttemptCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_agent_attempts_total",
			Help: "Total number of remote inference attempts",
		},
		[]string{"variant"},
	)

	FailedAttemptCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_agent_failed_attempts_total",
			Help: "Total number of failed remote inference attempts",
		},
		[]string{"error_code"},
	)

	ExhaustedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_agent_exhausted_total",
			Help: "Total number of invocations that used up every attempt",
		},
		[]string{"variant"},
	)
)
