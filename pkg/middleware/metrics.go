package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/routeview/internal/errors"
	"github.com/vango-dev/routeview/pkg/routes"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "routeview").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for loader duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
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

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "routeview",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors of a routeview process.
type Metrics struct {
	loadsTotal     *prometheus.CounterVec
	loadDuration   *prometheus.HistogramVec
	navigations    *prometheus.CounterVec
	unmatched      prometheus.Counter
	renders        *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

// NewMetrics registers the routeview collectors.
//
// Metrics collected:
//   - routeview_loader_calls_total: loader calls by route and status
//   - routeview_loader_duration_seconds: loader duration by route
//   - routeview_navigations_total: handled location changes by action
//   - routeview_unmatched_navigations_total: locations no route matched
//   - routeview_renders_total: server renders by status
//   - routeview_active_sessions: open navigation sessions
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		loadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "loader_calls_total",
			Help:        "Total number of route loader calls",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),

		loadDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "loader_duration_seconds",
			Help:        "Route loader duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of handled location changes",
			ConstLabels: config.ConstLabels,
		}, []string{"action"}),

		unmatched: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unmatched_navigations_total",
			Help:        "Total number of locations no route matched",
			ConstLabels: config.ConstLabels,
		}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of server renders",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open navigation sessions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Loader returns loader middleware that counts and times loader calls.
func (m *Metrics) Loader() routes.LoaderMiddleware {
	return func(next routes.LoaderFunc, route *routes.Route) routes.LoaderFunc {
		return func(ctx context.Context) (any, error) {
			start := time.Now()
			data, err := next(ctx)
			m.loadDuration.WithLabelValues(route.ID).Observe(time.Since(start).Seconds())

			status := "success"
			if err != nil {
				status = "error"
			}
			m.loadsTotal.WithLabelValues(route.ID, status).Inc()
			return data, err
		}
	}
}

// Hooks returns route hooks that count navigations.
func (m *Metrics) Hooks() routes.Hooks {
	return routes.Hooks{
		OnRouteChange: func(c routes.RouteChange) {
			m.navigations.WithLabelValues(string(c.Action)).Inc()
			if len(c.Matches) == 0 {
				m.unmatched.Inc()
			}
		},
	}
}

// RecordRender records a server render. A nil err counts as success;
// coded errors are labelled with their code.
func (m *Metrics) RecordRender(err error) {
	status := "success"
	if err != nil {
		status = "error"
		if code := errors.Code(err); code != "" {
			status = code
		}
	}
	m.renders.WithLabelValues(status).Inc()
}

// RecordSessionOpen records a new navigation session.
func (m *Metrics) RecordSessionOpen() {
	m.activeSessions.Inc()
}

// RecordSessionClose records a closed navigation session.
func (m *Metrics) RecordSessionClose() {
	m.activeSessions.Dec()
}
