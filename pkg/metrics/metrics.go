// Package metrics provides Prometheus instrumentation for seqflow components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for seqflow components.
type Registry struct {
	// Streaming Metrics
	StreamTraversals *prometheus.CounterVec
	StreamItems      *prometheus.CounterVec
	StreamErrors     *prometheus.CounterVec

	// Parallel Reduction Metrics
	ParallelPartitions *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by seqflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithConfig(Config{Enabled: true, Registry: reg})
}

// NewRegistryWithConfig creates a registry honoring cfg. A disabled config
// yields collectors that are never registered.
func NewRegistryWithConfig(cfg Config) *Registry {
	reg := cfg.Registry
	switch {
	case !cfg.Enabled:
		reg = nil
	case reg == nil:
		reg = prometheus.DefaultRegisterer
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Registry{
		StreamTraversals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "stream",
				Name:        "traversals_total",
				Help:        "Total number of stream traversals started by terminal operations",
				ConstLabels: cfg.Labels,
			},
			[]string{"stream_name"},
		),

		StreamItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "stream",
				Name:        "items_total",
				Help:        "Total number of elements yielded by streams",
				ConstLabels: cfg.Labels,
			},
			[]string{"stream_name"},
		),

		StreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "stream",
				Name:        "errors_total",
				Help:        "Total number of stream traversal errors",
				ConstLabels: cfg.Labels,
			},
			[]string{"stream_name"},
		),

		ParallelPartitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "parallel",
				Name:        "partitions_total",
				Help:        "Total number of partitions reduced by parallel operations",
				ConstLabels: cfg.Labels,
			},
			[]string{"operation"},
		),
	}
}
