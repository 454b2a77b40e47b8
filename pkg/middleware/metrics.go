package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/toastkit/pkg/toast"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "toast").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for toast lifetimes.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// Now must read the same clock as the registry's scheduler.
	Now func() time.Time
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// WithClock sets the clock used to measure lifetimes.
func WithClock(now func() time.Time) MetricsOption {
	return func(c *MetricsConfig) {
		c.Now = now
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "toast",
		Buckets:   []float64{0.5, 1, 2, 3, 5, 8, 13, 30, 60, 300},
		Registry:  prometheus.DefaultRegisterer,
		Now:       time.Now,
	}
}

// Metrics is a toast.Observer recording Prometheus metrics.
type Metrics struct {
	now func() time.Time

	shown       *prometheus.CounterVec
	active      *prometheus.GaugeVec
	disposed    *prometheus.CounterVec
	lifetime    *prometheus.HistogramVec
	transitions *prometheus.CounterVec
}

// Prometheus registers the toast metrics and returns the observer that
// feeds them. Registering twice on the same registry panics, as with any
// promauto collector.
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		now: config.Now,

		shown: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "shown_total",
			Help:        "Toasts that started their entrance",
			ConstLabels: config.ConstLabels,
		}, []string{"severity", "position"}),

		active: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active",
			Help:        "Toasts currently on screen",
			ConstLabels: config.ConstLabels,
		}, []string{"position"}),

		disposed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "disposed_total",
			Help:        "Toasts removed from the screen",
			ConstLabels: config.ConstLabels,
		}, []string{"severity", "position"}),

		lifetime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "lifetime_seconds",
			Help:        "Time from creation to disposal in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"severity"}),

		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transitions_total",
			Help:        "Toast phase changes",
			ConstLabels: config.ConstLabels,
		}, []string{"from", "to"}),
	}
}

// PhaseChanged implements toast.Observer.
func (m *Metrics) PhaseChanged(t *toast.Toast, from, to toast.Phase) {
	m.transitions.WithLabelValues(from.String(), to.String()).Inc()

	sev := severityLabel(t.Severity())
	pos := t.Position().String()
	switch to {
	case toast.PhaseEntering:
		m.shown.WithLabelValues(sev, pos).Inc()
		m.active.WithLabelValues(pos).Inc()
	case toast.PhaseDisposed:
		m.active.WithLabelValues(pos).Dec()
		m.disposed.WithLabelValues(sev, pos).Inc()
		m.lifetime.WithLabelValues(sev).Observe(m.now().Sub(t.CreatedAt()).Seconds())
	}
}

// severityLabel bounds the severity label to the known values.
func severityLabel(s toast.Severity) string {
	if s.Known() {
		return string(s)
	}
	return "other"
}

var _ toast.Observer = (*Metrics)(nil)
