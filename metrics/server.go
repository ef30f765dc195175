package metrics

import "github.com/prometheus/client_golang/prometheus"

// Auth endpoint outcomes
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// ServerCollector counts calls to the development auth server's endpoints.
type ServerCollector struct {
	requests  *prometheus.CounterVec
	wsClients prometheus.Gauge
}

func NewServerCollector(reg prometheus.Registerer) (*ServerCollector, error) {
	c := &ServerCollector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "auth_requests_total",
			Help:      "Auth endpoint calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "websocket_clients",
			Help:      "Open WebSocket connections.",
		}),
	}
	if err := reg.Register(c.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(c.wsClients); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ServerCollector) AuthRequest(endpoint, outcome string) {
	c.requests.WithLabelValues(endpoint, outcome).Inc()
}

func (c *ServerCollector) WebSocketOpened() {
	c.wsClients.Inc()
}

func (c *ServerCollector) WebSocketClosed() {
	c.wsClients.Dec()
}
