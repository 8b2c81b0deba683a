package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the bridge's Prometheus collectors.
type Metrics struct {
	connections prometheus.Gauge
	frames      *prometheus.CounterVec
	errors      *prometheus.CounterVec
}

// NewMetrics registers the bridge metrics with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "connections_active",
			Help:      "Number of open websocket connections",
		}),
		frames: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "frames_total",
			Help:      "Total number of frames by direction and kind",
		}, []string{"direction", "kind"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "errors_total",
			Help:      "Total number of error frames by code",
		}, []string{"code"}),
	}
}

func (m *Metrics) received(kind string) {
	if m != nil {
		m.frames.WithLabelValues("in", kind).Inc()
	}
}

func (m *Metrics) sent(f ServerFrame) {
	if m == nil {
		return
	}
	m.frames.WithLabelValues("out", f.Kind).Inc()
	if f.Kind == KindError {
		m.errors.WithLabelValues(f.Code).Inc()
	}
}

func (m *Metrics) opened() {
	if m != nil {
		m.connections.Inc()
	}
}

func (m *Metrics) closed() {
	if m != nil {
		m.connections.Dec()
	}
}
