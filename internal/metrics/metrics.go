// Package metrics exposes Prometheus instrumentation for the triage flow and
// the HTTP boundary.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the instrumentation surface used by the services.
type Recorder interface {
	RecordTriageTurn(greeting bool)
	RecordUpstreamFailure()
	RecordTriageLatency(d time.Duration)
}

// Collector implements Recorder on a Prometheus registry.
type Collector struct {
	registry       *prometheus.Registry
	triageTurns    *prometheus.CounterVec
	upstreamFail   prometheus.Counter
	triageLatency  prometheus.Histogram
	activeSessions prometheus.GaugeFunc
}

// NewCollector registers all collectors on a fresh registry. sessionCount
// feeds the live-session gauge; it is read at scrape time.
func NewCollector(sessionCount func() float64) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		triageTurns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medicare_triage_turns_total",
			Help: "Triage turns handled, labelled by whether the turn was answered with the canned greeting.",
		}, []string{"kind"}),
		upstreamFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "medicare_triage_upstream_failures_total",
			Help: "Generative model calls that failed or timed out.",
		}),
		triageLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "medicare_triage_latency_seconds",
			Help:    "Latency of triage turns, model call included.",
			Buckets: prometheus.DefBuckets,
		}),
		activeSessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "medicare_conversation_sessions",
			Help: "Live conversation sessions in the registry (never evicted).",
		}, sessionCount),
	}

	reg.MustRegister(c.triageTurns, c.upstreamFail, c.triageLatency, c.activeSessions)
	return c
}

func (c *Collector) RecordTriageTurn(greeting bool) {
	kind := "model"
	if greeting {
		kind = "greeting"
	}
	c.triageTurns.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordUpstreamFailure() {
	c.upstreamFail.Inc()
}

func (c *Collector) RecordTriageLatency(d time.Duration) {
	c.triageLatency.Observe(d.Seconds())
}

// Handler returns the /metrics scrape endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Nop is a Recorder that discards everything; used by tests.
type Nop struct{}

func (Nop) RecordTriageTurn(bool)             {}
func (Nop) RecordUpstreamFailure()            {}
func (Nop) RecordTriageLatency(time.Duration) {}
