package stream

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-softwarelab/common/pkg/optional"

	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

// ErrStreamClosed is returned when a terminal operation is attempted on a
// stream that was already consumed or closed.
var ErrStreamClosed = fmt.Errorf("stream is closed: %w", gferrors.ErrClosed)

// ErrUnhashableKey is returned by a Distinct traversal meeting an element
// whose dynamic type cannot be used as a map key.
var ErrUnhashableKey = errors.New("distinct key is not comparable")

// Stream represents a lazy sequence of elements supporting sequential operations.
// Intermediate operations only describe a transformation; computation happens
// when a terminal operation pulls elements through the chain, and only as many
// source elements are produced as the terminal operation needs.
//
// A Stream value is single-use: its first terminal operation consumes it.
// Intermediate operations may be applied to the same unconsumed Stream more
// than once; each derived stream traverses its own cursor.
type Stream[T any] interface {
	// Intermediate operations (lazy, return new Stream)

	// Filter returns a stream consisting of elements that match the given predicate.
	Filter(predicate func(T) bool) Stream[T]

	// Map returns a stream consisting of the results of applying the given function to elements.
	// Use MapTo to change the element type.
	Map(mapper func(T) T) Stream[T]

	// FlatMap returns a stream consisting of results of replacing each element with
	// the contents of a mapped stream produced by applying the provided mapping function.
	FlatMap(mapper func(T) Stream[T]) Stream[T]

	// Distinct returns a stream keeping only the first occurrence of each element.
	// Elements must have comparable dynamic types; any other element fails the
	// traversal with ErrUnhashableKey. Elements are compared with ==, so NaN
	// values are never duplicates. Memory grows with the number of distinct
	// elements seen, without bound on infinite streams.
	Distinct() Stream[T]

	// Sorted returns a stream consisting of elements sorted by compare.
	// Sorting buffers the whole upstream and must not be used on infinite streams.
	Sorted(compare func(a, b T) int) Stream[T]

	// Skip returns a stream discarding the first n elements.
	Skip(n int64) Stream[T]

	// Limit returns a stream truncated to at most maxSize elements. Once maxSize
	// elements were yielded no further upstream element is pulled.
	Limit(maxSize int64) Stream[T]

	// Peek returns a stream that performs action on each element as it is pulled.
	Peek(action func(T)) Stream[T]

	// Terminal operations (eager, consume the stream)

	// ForEach performs an action for each element of the stream, in order.
	ForEach(ctx context.Context, action func(T)) error

	// Reduce performs a reduction on elements using the provided identity and combining function.
	Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error)

	// ToSlice returns a newly allocated slice containing all elements.
	ToSlice(ctx context.Context) ([]T, error)

	// Count returns the count of elements.
	Count(ctx context.Context) (int64, error)

	// AnyMatch returns whether any elements match the given predicate.
	AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// AllMatch returns whether all elements match the given predicate.
	AllMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// NoneMatch returns whether no elements match the given predicate.
	NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// FindFirst returns the first element, or an empty optional.
	FindFirst(ctx context.Context) (optional.Value[T], error)

	// FindFirstMatch returns the first element matching predicate, or an empty optional.
	FindFirstMatch(ctx context.Context, predicate func(T) bool) (optional.Value[T], error)

	// FindAny returns any element, or an empty optional.
	FindAny(ctx context.Context) (optional.Value[T], error)

	// Min returns the minimum element according to compare, or an empty optional.
	Min(ctx context.Context, compare func(a, b T) int) (optional.Value[T], error)

	// Max returns the maximum element according to compare, or an empty optional.
	// Among equal maxima the first one wins.
	Max(ctx context.Context, compare func(a, b T) int) (optional.Value[T], error)

	// Stream control

	// Close marks the stream consumed without traversing it.
	Close() error

	// IsClosed returns true if the stream was consumed or closed.
	IsClosed() bool

	// opener returns the factory producing a fresh cursor over this stream.
	opener() func() Source[T]

	// cursor consumes the stream and opens its cursor.
	cursor() (Source[T], error)
}

// Source is a pull cursor over the elements of one traversal.
type Source[T any] interface {
	// Next returns the next element and true, or zero value and false if no more elements.
	Next(ctx context.Context) (T, bool, error)
	// Close closes the source and releases resources.
	Close() error
}

// stream is the default implementation of Stream. It holds an immutable
// description of the stage chain; evaluation state lives in the Source
// returned by open, one per traversal.
type stream[T any] struct {
	open   func() Source[T]
	closed int32 // atomic
}

// New creates a Stream whose traversals pull from the sources returned by open.
// open is called once per terminal operation.
func New[T any](open func() Source[T]) Stream[T] {
	return &stream[T]{open: open}
}

// failed returns a stream whose traversal fails with err before pulling anything.
func failed[T any](err error) Stream[T] {
	return New(func() Source[T] { return &errorSource[T]{err: err} })
}

// closedStream returns an already consumed stream.
func closedStream[T any]() Stream[T] {
	return &stream[T]{open: func() Source[T] { return &emptySource[T]{} }, closed: 1}
}

// derive builds a stage over s. Stages derived from a consumed stream are consumed too.
func derive[T, R any](s Stream[T], wrap func(upstream Source[T]) Source[R]) Stream[R] {
	if s.IsClosed() {
		return closedStream[R]()
	}
	open := s.opener()
	return New(func() Source[R] { return wrap(open()) })
}

func (s *stream[T]) opener() func() Source[T] {
	return s.open
}

func (s *stream[T]) cursor() (Source[T], error) {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil, ErrStreamClosed
	}
	return s.open(), nil
}

// Filter implementation
func (s *stream[T]) Filter(predicate func(T) bool) Stream[T] {
	return derive(s, func(up Source[T]) Source[T] {
		return &filterSource[T]{upstream: up, predicate: predicate}
	})
}

// Map implementation
func (s *stream[T]) Map(mapper func(T) T) Stream[T] {
	return MapTo[T, T](s, mapper)
}

// FlatMap implementation
func (s *stream[T]) FlatMap(mapper func(T) Stream[T]) Stream[T] {
	return derive(s, func(up Source[T]) Source[T] {
		return &flatMapSource[T]{upstream: up, mapper: mapper}
	})
}

// Distinct implementation
func (s *stream[T]) Distinct() Stream[T] {
	return DistinctBy[T, any](s, func(v T) any { return v })
}

// Sorted implementation
func (s *stream[T]) Sorted(compare func(a, b T) int) Stream[T] {
	return derive(s, func(up Source[T]) Source[T] {
		return &sortSource[T]{upstream: up, compare: compare}
	})
}

// Skip implementation
func (s *stream[T]) Skip(n int64) Stream[T] {
	if err := validation.ValidateNonNegative("stream", "skip", n); err != nil {
		return failed[T](err)
	}
	return derive(s, func(up Source[T]) Source[T] {
		return &skipSource[T]{upstream: up, n: n}
	})
}

// Limit implementation
func (s *stream[T]) Limit(maxSize int64) Stream[T] {
	if err := validation.ValidateNonNegative("stream", "limit", maxSize); err != nil {
		return failed[T](err)
	}
	return derive(s, func(up Source[T]) Source[T] {
		return &limitSource[T]{upstream: up, maxSize: maxSize}
	})
}

// Peek implementation
func (s *stream[T]) Peek(action func(T)) Stream[T] {
	return derive(s, func(up Source[T]) Source[T] {
		return &peekSource[T]{upstream: up, action: action}
	})
}

// ForEach implementation
func (s *stream[T]) ForEach(ctx context.Context, action func(T)) error {
	return drive[T](ctx, s, func(v T) bool {
		action(v)
		return true
	})
}

// ToSlice implementation
func (s *stream[T]) ToSlice(ctx context.Context) ([]T, error) {
	result := make([]T, 0)
	err := drive[T](ctx, s, func(v T) bool {
		result = append(result, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Count implementation
func (s *stream[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	err := drive[T](ctx, s, func(T) bool {
		count++
		return true
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Reduce implementation
func (s *stream[T]) Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error) {
	result := identity
	err := drive[T](ctx, s, func(v T) bool {
		result = accumulator(result, v)
		return true
	})
	if err != nil {
		return identity, err
	}
	return result, nil
}

// FindFirst implementation
func (s *stream[T]) FindFirst(ctx context.Context) (optional.Value[T], error) {
	return s.FindFirstMatch(ctx, func(T) bool { return true })
}

// FindFirstMatch implementation
func (s *stream[T]) FindFirstMatch(ctx context.Context, predicate func(T) bool) (optional.Value[T], error) {
	found := optional.Empty[T]()
	err := drive[T](ctx, s, func(v T) bool {
		if predicate(v) {
			found = optional.Some(v)
			return false
		}
		return true
	})
	if err != nil {
		return optional.Empty[T](), err
	}
	return found, nil
}

// FindAny implementation (same as FindFirst for sequential streams)
func (s *stream[T]) FindAny(ctx context.Context) (optional.Value[T], error) {
	return s.FindFirst(ctx)
}

// AnyMatch implementation
func (s *stream[T]) AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	found, err := s.FindFirstMatch(ctx, predicate)
	if err != nil {
		return false, err
	}
	return found.IsPresent(), nil
}

// AllMatch implementation
func (s *stream[T]) AllMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	result, err := s.AnyMatch(ctx, func(v T) bool { return !predicate(v) })
	if err != nil {
		return false, err
	}
	return !result, nil
}

// NoneMatch implementation
func (s *stream[T]) NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	result, err := s.AnyMatch(ctx, predicate)
	if err != nil {
		return false, err
	}
	return !result, nil
}

// Min implementation
func (s *stream[T]) Min(ctx context.Context, compare func(a, b T) int) (optional.Value[T], error) {
	return s.Max(ctx, func(a, b T) int { return compare(b, a) })
}

// Max implementation
func (s *stream[T]) Max(ctx context.Context, compare func(a, b T) int) (optional.Value[T], error) {
	var maxValue T
	found := false

	err := drive[T](ctx, s, func(v T) bool {
		if !found || compare(v, maxValue) > 0 {
			maxValue = v
			found = true
		}
		return true
	})
	if err != nil || !found {
		return optional.Empty[T](), err
	}
	return optional.Some(maxValue), nil
}

// Close implementation
func (s *stream[T]) Close() error {
	atomic.StoreInt32(&s.closed, 1)
	return nil
}

// IsClosed implementation
func (s *stream[T]) IsClosed() bool {
	return atomic.LoadInt32(&s.closed) != 0
}

// drive consumes s and pulls elements on the calling goroutine, handing each
// to visit until visit returns false, the cursor is exhausted, or an error occurs.
func drive[T any](ctx context.Context, s Stream[T], visit func(T) bool) (err error) {
	src, err := s.cursor()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); err == nil {
			err = cerr
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		value, hasMore, err := src.Next(ctx)
		if err != nil {
			return err
		}
		if !hasMore || !visit(value) {
			return nil
		}
	}
}

// MapTo returns a stream applying mapper to each element of s.
func MapTo[T, R any](s Stream[T], mapper func(T) R) Stream[R] {
	return derive(s, func(up Source[T]) Source[R] {
		return &mapSource[T, R]{upstream: up, mapper: mapper}
	})
}

// DistinctBy returns a stream keeping only the first element for each key.
func DistinctBy[T any, K comparable](s Stream[T], key func(T) K) Stream[T] {
	return derive(s, func(up Source[T]) Source[T] {
		return &distinctSource[T, K]{upstream: up, key: key, seen: make(map[K]struct{})}
	})
}

// Collect performs a mutable reduction of s into an accumulator created by supplier.
func Collect[T, A any](ctx context.Context, s Stream[T], supplier func() A, accumulator func(A, T) A) (A, error) {
	result := supplier()
	err := drive(ctx, s, func(v T) bool {
		result = accumulator(result, v)
		return true
	})
	if err != nil {
		var zero A
		return zero, err
	}
	return result, nil
}
