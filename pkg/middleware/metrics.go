package middleware

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/newtab/pkg/actions"
	"github.com/vango-dev/newtab/pkg/store"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "newtab").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
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

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "newtab",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	actionsTotal   *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
	userEvents     *prometheus.CounterVec
	menuUpdates    prometheus.Counter
	activeConns    prometheus.Gauge
	wsErrors       *prometheus.CounterVec
}

// globalMetrics is created by the first call to Prometheus. Later calls
// share it so the collectors are registered once per process.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		actionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "actions_dispatched_total",
			Help:        "Total number of store actions dispatched",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "status"}),

		actionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "action_duration_seconds",
			Help:        "Dispatch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"type"}),

		userEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "user_events_total",
			Help:        "Total number of analytics user-events",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "page", "source"}),

		menuUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "menu_updates_total",
			Help:        "Total number of menu selections completed",
			ConstLabels: config.ConstLabels,
		}),

		activeConns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_connections",
			Help:        "Number of open WebSocket connections",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Prometheus creates store middleware that records a counter and a duration
// for every dispatched action, and counts user-events by event, page and
// source.
//
//	st := store.New(store.WithMiddleware(middleware.Prometheus()))
func Prometheus(opts ...MetricsOption) store.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return store.MiddlewareFunc(func(ctx context.Context, a actions.Action, next func(context.Context) error) error {
		typ := string(a.Type)
		start := time.Now()

		err := next(ctx)

		m.actionDuration.WithLabelValues(typ).Observe(time.Since(start).Seconds())
		m.actionsTotal.WithLabelValues(typ, statusOf(err)).Inc()

		if err == nil {
			if ev, ok := a.UserEventData(); ok {
				m.userEvents.WithLabelValues(string(ev.Event), ev.Page, ev.Source).Inc()
			}
		}
		return err
	})
}

// statusOf keeps the status label low-cardinality.
func statusOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, store.ErrUnknownAction):
		return "unknown_action"
	case errors.Is(err, store.ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

// RecordMenuUpdate records a completed menu selection.
func RecordMenuUpdate() {
	if m := current(); m != nil {
		m.menuUpdates.Inc()
	}
}

// RecordConnectionOpen records a new WebSocket connection.
func RecordConnectionOpen() {
	if m := current(); m != nil {
		m.activeConns.Inc()
	}
}

// RecordConnectionClose records a closed WebSocket connection.
func RecordConnectionClose() {
	if m := current(); m != nil {
		m.activeConns.Dec()
	}
}

// RecordWebSocketError records a WebSocket error.
func RecordWebSocketError(errorType string) {
	if m := current(); m != nil {
		m.wsErrors.WithLabelValues(errorType).Inc()
	}
}

func current() *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}
