// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TasksCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_tasks_completed_total",
			Help: "Total number of agent tasks completed",
		},
		[]string{"task"},
	)

	TasksFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_tasks_failed_total",
			Help: "Total number of agent tasks failed",
		},
		[]string{"task", "error_code"},
	)

	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "agent_task_duration_seconds",
			Help: "Duration of agent task execution in seconds",
		},
		[]string{"task"},
	)

	GenerationCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_calls_total",
			Help: "Total number of generation calls by provider and modality",
		},
		[]string{"provider", "modality", "status"},
	)

	ExtractionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_failures_total",
			Help: "Total number of model outputs rejected by the extractor",
		},
		[]string{"schema", "reason"},
	)
)
