// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// JobMetrics records runs of scheduled jobs and the notifications they relay.
// A nil *JobMetrics is a no-op.
type JobMetrics struct {
	duration      *prometheus.HistogramVec
	success       *prometheus.CounterVec
	failure       *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewJobMetrics registers the job collectors on reg.
func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	m := &JobMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fulfillment",
			Name:      "job_duration_seconds",
			Help:      "Duration of scheduled job runs in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
		success: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fulfillment",
			Name:      "job_success_total",
			Help:      "Successful scheduled job runs.",
		}, []string{"job"}),
		failure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fulfillment",
			Name:      "job_failure_total",
			Help:      "Failed scheduled job runs.",
		}, []string{"job"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fulfillment",
			Name:      "notifications_total",
			Help:      "Notifications handed to the dispatcher, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.duration, m.success, m.failure, m.notifications)
	return m
}

func (m *JobMetrics) ObserveDuration(job string, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(label(job)).Observe(d.Seconds())
}

func (m *JobMetrics) IncSuccess(job string) {
	if m == nil {
		return
	}
	m.success.WithLabelValues(label(job)).Inc()
}

func (m *JobMetrics) IncFailure(job string) {
	if m == nil {
		return
	}
	m.failure.WithLabelValues(label(job)).Inc()
}

// AddNotifications counts published and failed dispatches of one relay run.
func (m *JobMetrics) AddNotifications(published, failed int) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues("published").Add(float64(published))
	m.notifications.WithLabelValues("failed").Add(float64(failed))
}

func label(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
