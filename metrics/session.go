// Package metrics exposes session and auth server activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/jrsteele09/go-session-client/session"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "session"

var _ session.Observer = (*SessionCollector)(nil)

// SessionCollector records what a session.Manager does. Pass it to session.WithObserver.
type SessionCollector struct {
	refreshesStarted prometheus.Counter
	refreshes        *prometheus.CounterVec
	refreshDuration  prometheus.Histogram
	retries          prometheus.Counter
	terminations     prometheus.Counter
}

// NewSessionCollector creates the collector and registers it with reg.
func NewSessionCollector(reg prometheus.Registerer) (*SessionCollector, error) {
	c := &SessionCollector{
		refreshesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "refreshes_started_total",
			Help:      "Refresh requests sent to the auth API.",
		}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "refreshes_total",
			Help:      "Completed refresh requests by outcome.",
		}, []string{"outcome"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "refresh_duration_seconds",
			Help:      "Time taken by refresh requests.",
			Buckets:   prometheus.DefBuckets,
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "request_retries_total",
			Help:      "Requests resent after a successful refresh.",
		}),
		terminations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "terminations_total",
			Help:      "Sessions ended by a forced logout.",
		}),
	}

	for _, col := range []prometheus.Collector{c.refreshesStarted, c.refreshes, c.refreshDuration, c.retries, c.terminations} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *SessionCollector) RefreshStarted() {
	c.refreshesStarted.Inc()
}

func (c *SessionCollector) RefreshFinished(outcome session.RefreshOutcome, elapsed time.Duration) {
	c.refreshes.WithLabelValues(outcome.String()).Inc()
	c.refreshDuration.Observe(elapsed.Seconds())
}

func (c *SessionCollector) RequestRetried() {
	c.retries.Inc()
}

func (c *SessionCollector) SessionTerminated() {
	c.terminations.Inc()
}
