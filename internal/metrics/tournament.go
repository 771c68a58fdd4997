// Package metrics provides Prometheus metrics for the tournament.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// TournamentMetrics contains Prometheus metrics for tournament operations.
type TournamentMetrics struct {
	registry *prometheus.Registry

	submissionsTotal        *prometheus.CounterVec
	validationFailuresTotal *prometheus.CounterVec
	registrationsTotal      *prometheus.CounterVec
	signInsTotal            *prometheus.CounterVec
	tableRefreshesTotal     *prometheus.CounterVec
	persistDuration         prometheus.Histogram
}

// NewTournamentMetrics creates and registers the tournament metrics on registry.
func NewTournamentMetrics(registry *prometheus.Registry) (*TournamentMetrics, error) {
	m := &TournamentMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *TournamentMetrics) initMetrics() {
	m.submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catchboard_submissions_total",
			Help: "Total number of fish submissions by outcome",
		},
		[]string{"outcome"}, // outcome: success, rejected, error
	)

	m.validationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catchboard_validation_failures_total",
			Help: "Total number of fish submissions rejected, by failing rule",
		},
		[]string{"rule"},
	)

	m.registrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catchboard_registrations_total",
			Help: "Total number of participant registrations by outcome",
		},
		[]string{"outcome"},
	)

	m.signInsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catchboard_sign_ins_total",
			Help: "Total number of sign-in attempts by outcome",
		},
		[]string{"outcome"},
	)

	m.tableRefreshesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catchboard_table_refreshes_total",
			Help: "Total number of fish table refreshes by outcome",
		},
		[]string{"outcome"},
	)

	m.persistDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catchboard_persist_duration_seconds",
			Help:    "Time taken to upload a photo and write its submission",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)
}

// Describe implements prometheus.Collector.
func (m *TournamentMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.submissionsTotal.Describe(ch)
	m.validationFailuresTotal.Describe(ch)
	m.registrationsTotal.Describe(ch)
	m.signInsTotal.Describe(ch)
	m.tableRefreshesTotal.Describe(ch)
	m.persistDuration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *TournamentMetrics) Collect(ch chan<- prometheus.Metric) {
	m.submissionsTotal.Collect(ch)
	m.validationFailuresTotal.Collect(ch)
	m.registrationsTotal.Collect(ch)
	m.signInsTotal.Collect(ch)
	m.tableRefreshesTotal.Collect(ch)
	m.persistDuration.Collect(ch)
}

// RecordSubmission counts a submission outcome.
func (m *TournamentMetrics) RecordSubmission(outcome string) {
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordValidationFailure counts a rejection by the named rule.
func (m *TournamentMetrics) RecordValidationFailure(rule string) {
	m.validationFailuresTotal.WithLabelValues(rule).Inc()
}

// RecordRegistration counts a registration outcome.
func (m *TournamentMetrics) RecordRegistration(outcome string) {
	m.registrationsTotal.WithLabelValues(outcome).Inc()
}

// RecordSignIn counts a sign-in outcome.
func (m *TournamentMetrics) RecordSignIn(outcome string) {
	m.signInsTotal.WithLabelValues(outcome).Inc()
}

// RecordTableRefresh counts a table refresh outcome.
func (m *TournamentMetrics) RecordTableRefresh(outcome string) {
	m.tableRefreshesTotal.WithLabelValues(outcome).Inc()
}

// ObservePersist records how long the persist stage took, in seconds.
func (m *TournamentMetrics) ObservePersist(seconds float64) {
	m.persistDuration.Observe(seconds)
}
