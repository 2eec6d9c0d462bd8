package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides request-outcome counters for the service. All methods are
// nil-safe so components can run without metrics wired.
type Metrics struct {
	// Registrations by outcome: success, duplicate, error.
	Registrations *prometheus.CounterVec

	// Stats snapshot requests by outcome: success, error.
	StatsRequests *prometheus.CounterVec

	// Contact messages by outcome: success, error.
	ContactMessages *prometheus.CounterVec
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "festregistry_registrations_total",
			Help: "Registration attempts by outcome",
		}, []string{"outcome"}),

		StatsRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "festregistry_stats_requests_total",
			Help: "Stats snapshot requests by outcome",
		}, []string{"outcome"}),

		ContactMessages: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "festregistry_contact_messages_total",
			Help: "Contact message submissions by outcome",
		}, []string{"outcome"}),
	}
}

// IncRegistration records a registration attempt outcome.
func (m *Metrics) IncRegistration(outcome string) {
	if m != nil {
		m.Registrations.WithLabelValues(outcome).Inc()
	}
}

// IncStatsRequest records a stats request outcome.
func (m *Metrics) IncStatsRequest(outcome string) {
	if m != nil {
		m.StatsRequests.WithLabelValues(outcome).Inc()
	}
}

// IncContactMessage records a contact submission outcome.
func (m *Metrics) IncContactMessage(outcome string) {
	if m != nil {
		m.ContactMessages.WithLabelValues(outcome).Inc()
	}
}
