package stream

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/seqflow/pkg/metrics"
)

// Instrument wraps s so that every traversal, yielded element and traversal
// error is counted in registry under name. A nil registry uses metrics.DefaultRegistry.
func Instrument[T any](s Stream[T], name string, registry *metrics.Registry) Stream[T] {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}
	traversals := registry.StreamTraversals.WithLabelValues(name)
	items := registry.StreamItems.WithLabelValues(name)
	errs := registry.StreamErrors.WithLabelValues(name)

	return derive(s, func(up Source[T]) Source[T] {
		traversals.Inc()
		return &instrumentedSource[T]{upstream: up, items: items, errors: errs}
	})
}

// instrumentedSource counts what flows through it.
type instrumentedSource[T any] struct {
	upstream Source[T]
	items    prometheus.Counter
	errors   prometheus.Counter
	failed   bool
}

func (s *instrumentedSource[T]) Next(ctx context.Context) (T, bool, error) {
	value, hasMore, err := s.upstream.Next(ctx)
	if err != nil {
		if !s.failed {
			s.failed = true
			s.errors.Inc()
		}
		return value, false, err
	}
	if hasMore {
		s.items.Inc()
	}
	return value, hasMore, nil
}

func (s *instrumentedSource[T]) Close() error {
	return s.upstream.Close()
}
