package workflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadpipe_workflow_runs_total",
		Help: "Workflow runs by terminal status.",
	}, []string{"status"})

	stageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadpipe_workflow_stage_failures_total",
		Help: "Workflow failures by the stage that failed.",
	}, []string{"stage"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leadpipe_workflow_duration_seconds",
		Help:    "Wall time of workflow runs.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})
)
