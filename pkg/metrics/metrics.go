package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GoalsNotifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farmdesk_goals_notified_total",
		Help: "Total number of goals that crossed their target and were notified",
	}, []string{"type"})

	GoalEvaluationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "farmdesk_goal_evaluations_total",
		Help: "Total number of goal threshold evaluations performed",
	})

	GoalEvaluationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "farmdesk_goal_evaluation_failures_total",
		Help: "Total number of goal evaluations dropped due to errors",
	})

	PushDeliveriesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "farmdesk_push_deliveries_failed_total",
		Help: "Total number of best-effort push deliveries that failed",
	})

	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "farmdesk_goal_sweep_duration_seconds",
		Help:    "Duration of full open-goal sweeps",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "farmdesk_http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
