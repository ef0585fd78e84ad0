package middleware

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/scene/internal/errors"
	"github.com/vango-dev/scene/pkg/runtime"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "scene").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
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
		Namespace: "scene",
		// Passes are sub-millisecond for small scenes.
		Buckets:  []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		Registry: prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for the runtime.
type metrics struct {
	passesTotal  *prometheus.CounterVec
	passDuration prometheus.Histogram
	memoHits     prometheus.Counter
	memoMisses   prometheus.Counter
	slotsEvicted prometheus.Counter
	cacheSlots   prometheus.Gauge
	sceneNodes   prometheus.Gauge
}

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		passesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of construction passes by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Construction pass duration including layout and paint, in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		memoHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "memo_hits_total",
			Help:        "Total number of builds that reused the previous pass's node",
			ConstLabels: config.ConstLabels,
		}),

		memoMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "memo_misses_total",
			Help:        "Total number of builds that constructed a fresh node",
			ConstLabels: config.ConstLabels,
		}),

		slotsEvicted: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "slots_evicted_total",
			Help:        "Total number of cache slots dropped because their position was not built",
			ConstLabels: config.ConstLabels,
		}),

		cacheSlots: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cache_slots",
			Help:        "Number of occupied cache slots after the last pass",
			ConstLabels: config.ConstLabels,
		}),

		sceneNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scene_nodes",
			Help:        "Number of nodes in the last successful scene",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for passes.
// Metrics are registered on the configured registry when Prometheus is
// called, so call it once per registry.
//
// Metrics collected:
//   - scene_passes_total: Counter of passes by status
//   - scene_pass_duration_seconds: Histogram of pass duration
//   - scene_memo_hits_total / scene_memo_misses_total: Memo outcomes
//   - scene_slots_evicted_total: Slots dropped at the end of a pass
//   - scene_cache_slots: Occupied slots after the last pass
//   - scene_nodes: Nodes in the last scene
func Prometheus(opts ...MetricsOption) runtime.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := initMetrics(config)

	return func(ctx context.Context, info *runtime.PassInfo, next func(context.Context) error) error {
		start := time.Now()
		err := next(ctx)
		m.passDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			m.passesTotal.WithLabelValues(passStatus(err)).Inc()
			return err
		}
		m.passesTotal.WithLabelValues("success").Inc()

		if f := info.Frame; f != nil {
			m.memoHits.Add(float64(f.Stats.Hits))
			m.memoMisses.Add(float64(f.Stats.Misses))
			m.slotsEvicted.Add(float64(f.Stats.Evicted))
			m.cacheSlots.Set(float64(f.Stats.Slots))
			m.sceneNodes.Set(float64(f.Nodes))
		}
		return nil
	}
}

// passStatus returns a low-cardinality label for a failed pass.
func passStatus(err error) string {
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	}
	se := errors.FromError(err, "")
	switch {
	case se.Code == "E021":
		return "panic"
	case se.Category == errors.CategoryConstruction:
		return "construction_error"
	default:
		return "error"
	}
}
