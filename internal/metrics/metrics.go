package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	TriageRuns     prometheus.Counter
	DraftsCreated  prometheus.Counter
	SendSuccesses  prometheus.Counter
	SendFailures   prometheus.Counter
	EmailsIngested prometheus.Counter
	ProcessingTime prometheus.Histogram
}

// NewMetrics creates new Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		TriageRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mail_triage_runs_total",
			Help: "Total number of triage pipeline runs",
		}),
		DraftsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mail_triage_drafts_created_total",
			Help: "Total number of reply drafts generated",
		}),
		SendSuccesses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mail_triage_send_successes_total",
			Help: "Total number of successful audit-log send stub writes",
		}),
		SendFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mail_triage_send_failures_total",
			Help: "Total number of failed audit-log send stub writes",
		}),
		EmailsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mail_triage_emails_ingested_total",
			Help: "Total number of emails submitted via the API",
		}),
		ProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mail_triage_processing_duration_seconds",
			Help:    "Time spent in the triage pipeline per email",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
