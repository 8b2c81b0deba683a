package bind

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus binding metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "compost").
	Namespace string

	// Subsystem is the metrics subsystem (default: "bind").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the binding metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "compost",
		Subsystem: "bind",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics counts bindings across every Mixin it is given to. One Metrics
// value is normally shared by all components in a process.
type Metrics struct {
	active        prometheus.Gauge
	binds         *prometheus.CounterVec
	unbinds       *prometheus.CounterVec
	resolveErrors *prometheus.CounterVec
}

// NewMetrics registers the binding metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "bindings_active",
			Help:        "Number of declarative listeners currently attached",
			ConstLabels: config.ConstLabels,
		}),

		binds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "binds_total",
			Help:        "Total number of declarative listeners attached",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		unbinds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unbinds_total",
			Help:        "Total number of declarative listeners removed",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		resolveErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolve_errors_total",
			Help:        "Total number of marker attributes that failed to resolve",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),
	}
}

func (m *Metrics) bound(kind string) {
	if m == nil {
		return
	}
	m.binds.WithLabelValues(kind).Inc()
	m.active.Inc()
}

func (m *Metrics) unbound(kind string) {
	if m == nil {
		return
	}
	m.unbinds.WithLabelValues(kind).Inc()
	m.active.Dec()
}

func (m *Metrics) failed(err error) {
	if m == nil {
		return
	}
	m.resolveErrors.WithLabelValues(reason(err)).Inc()
}

// reason maps a resolution error to a metric label.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyHandler):
		return "empty"
	case errors.Is(err, ErrHandlerNotFound):
		return "not_found"
	case errors.Is(err, ErrHandlerNotCallable):
		return "not_callable"
	default:
		return "other"
	}
}
