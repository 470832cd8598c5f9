package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ParsesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tariffscout_parses_total",
			Help: "Total number of usage files parsed",
		},
	)

	ParseErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tariffscout_parse_errors_total",
			Help: "Total number of parse failures per error kind",
		},
		[]string{"kind"},
	)

	ValidationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tariffscout_validation_errors_total",
			Help: "Total number of validation failures per error kind",
		},
		[]string{"kind"},
	)

	CalculationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tariffscout_calculations_total",
			Help: "Total number of full portfolio calculations",
		},
	)

	CalculationDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tariffscout_calculation_duration_seconds",
			Help:    "Portfolio calculation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tariffscout_requests_total",
			Help: "Total number of requests per path",
		},
		[]string{"path"},
	)

	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tariffscout_request_duration_seconds",
			Help:    "Request duration in seconds per path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	RequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tariffscout_request_errors_total",
			Help: "Total number of error responses per path and code",
		},
		[]string{"path", "code"},
	)

	SnapshotsSavedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tariffscout_snapshots_saved_total",
			Help: "Total number of usage snapshots persisted",
		},
	)
)

var (
	ScheduledJobLastRun = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tariffscout_job_last_run_timestamp",
			Help: "Unix timestamp of the last completed run for a job",
		},
		[]string{"job"},
	)

	ScheduledJobLastDurationSeconds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tariffscout_job_last_duration_seconds",
			Help: "Duration of the last completed run for a job",
		},
		[]string{"job"},
	)

	ScheduledJobFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tariffscout_job_failures_total",
			Help: "Total number of failed executions per job",
		},
		[]string{"job"},
	)
)

func UpdateJobMetrics(job string, startedAt time.Time, err error) {
	dur := time.Since(startedAt).Seconds()
	ScheduledJobLastDurationSeconds.WithLabelValues(job).Set(dur)
	ScheduledJobLastRun.WithLabelValues(job).Set(float64(time.Now().Unix()))
	if err != nil {
		ScheduledJobFailuresTotal.WithLabelValues(job).Inc()
	}
}
