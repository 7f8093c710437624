// Package metrics exports the event core counters to Prometheus.
package metrics

import (
	"github.com/amirasaad/storefront/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// Prometheus implements metrics.Recorder with counter vectors.
type Prometheus struct {
	published *prometheus.CounterVec
	settled   *prometheus.CounterVec
	attempts  *prometheus.CounterVec
	exhausted *prometheus.CounterVec
}

var _ metrics.Recorder = (*Prometheus)(nil)

// NewPrometheus registers the counters against reg, or the default
// registerer when reg is nil.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &Prometheus{
		published: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "eventbus",
				Name:      "events_published_total",
				Help:      "Events handed to the bus, by event type and publish mode.",
			},
			[]string{"event_type", "mode"},
		),
		settled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "eventbus",
				Name:      "handler_outcomes_total",
				Help:      "Settled handler invocations, by event type and result.",
			},
			[]string{"event_type", "result"},
		),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "retry",
				Name:      "attempts_total",
				Help:      "Attempts made by the retry executor, by operation.",
			},
			[]string{"operation"},
		),
		exhausted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "retry",
				Name:      "exhausted_total",
				Help:      "Operations that failed on every attempt, by operation.",
			},
			[]string{"operation"},
		),
	}
	reg.MustRegister(p.published, p.settled, p.attempts, p.exhausted)
	return p
}

func (p *Prometheus) EventPublished(eventType, mode string) {
	p.published.WithLabelValues(eventType, mode).Inc()
}

func (p *Prometheus) HandlerSettled(eventType string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	p.settled.WithLabelValues(eventType, result).Inc()
}

func (p *Prometheus) RetryAttempt(operation string) {
	p.attempts.WithLabelValues(operation).Inc()
}

func (p *Prometheus) RetryExhausted(operation string) {
	p.exhausted.WithLabelValues(operation).Inc()
}
