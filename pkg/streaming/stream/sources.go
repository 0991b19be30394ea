package stream

import (
	"context"

	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// Of creates a stream from the given values.
func Of[T any](values ...T) Stream[T] {
	return FromSlice(values)
}

// FromSlice creates a stream over a copy of slice. Later changes to slice
// are not observed by the stream.
func FromSlice[T any](slice []T) Stream[T] {
	items := append([]T(nil), slice...)
	return New(func() Source[T] {
		return &sliceSource[T]{slice: items}
	})
}

// FromChannel creates a stream that pulls from ch until it is closed.
// A channel can only be drained once, so every traversal shares it.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return New(func() Source[T] {
		return &channelSource[T]{ch: ch}
	})
}

// Generate creates an infinite stream calling generator for every element.
func Generate[T any](generator func() T) Stream[T] {
	return New(func() Source[T] {
		return &generatorSource[T]{generator: generator}
	})
}

// GenerateErr creates a stream calling generator for every element. The stream
// ends when generator reports false and fails when it returns an error.
func GenerateErr[T any](generator func() (T, bool, error)) Stream[T] {
	return New(func() Source[T] {
		return &generatorErrSource[T]{generator: generator}
	})
}

// Iterate creates an infinite stream seed, successor(seed), successor(successor(seed)), ...
// successor is only invoked when an element beyond the seed is pulled.
func Iterate[T any](seed T, successor func(T) T) Stream[T] {
	return New(func() Source[T] {
		return &iterateSource[T]{current: seed, successor: successor}
	})
}

// FromSequence creates a stream pulling from seq until its HasNext reports false.
// A sequence keeps its own position, so every traversal continues where the previous left off.
func FromSequence[T any](seq sequence.Sequence[T]) Stream[T] {
	return New(func() Source[T] {
		return &sequenceSource[T]{seq: seq}
	})
}

// Concat creates a stream yielding all elements of each stream in turn.
// Later streams are opened only once the earlier ones are exhausted.
func Concat[T any](streams ...Stream[T]) Stream[T] {
	for _, s := range streams {
		if s.IsClosed() {
			return closedStream[T]()
		}
	}
	opens := make([]func() Source[T], len(streams))
	for i, s := range streams {
		opens[i] = s.opener()
	}
	return New(func() Source[T] {
		return &concatSource[T]{opens: opens}
	})
}

// Empty creates an empty stream.
func Empty[T any]() Stream[T] {
	return New(func() Source[T] {
		return &emptySource[T]{}
	})
}

// sliceSource implements Source for slices.
type sliceSource[T any] struct {
	slice []T
	index int
}

func (s *sliceSource[T]) Next(_ context.Context) (T, bool, error) {
	if s.index >= len(s.slice) {
		var zero T
		return zero, false, nil
	}
	value := s.slice[s.index]
	s.index++
	return value, true, nil
}

func (s *sliceSource[T]) Close() error {
	return nil
}

// channelSource implements Source for channels.
type channelSource[T any] struct {
	ch <-chan T
}

func (s *channelSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case value, ok := <-s.ch:
		if !ok {
			return zero, false, nil
		}
		return value, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (s *channelSource[T]) Close() error {
	return nil
}

// generatorSource implements Source for generator functions.
type generatorSource[T any] struct {
	generator func() T
}

func (s *generatorSource[T]) Next(_ context.Context) (T, bool, error) {
	return s.generator(), true, nil
}

func (s *generatorSource[T]) Close() error {
	return nil
}

// generatorErrSource implements Source for fallible generator functions.
type generatorErrSource[T any] struct {
	generator func() (T, bool, error)
	done      bool
}

func (s *generatorErrSource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	if s.done {
		return zero, false, nil
	}
	value, ok, err := s.generator()
	if err != nil || !ok {
		s.done = true
		return zero, false, err
	}
	return value, true, nil
}

func (s *generatorErrSource[T]) Close() error {
	return nil
}

// iterateSource yields the seed first, then successive applications of successor.
type iterateSource[T any] struct {
	current   T
	successor func(T) T
	started   bool
}

func (s *iterateSource[T]) Next(_ context.Context) (T, bool, error) {
	if s.started {
		s.current = s.successor(s.current)
	}
	s.started = true
	return s.current, true, nil
}

func (s *iterateSource[T]) Close() error {
	return nil
}

// sequenceSource adapts a sequence.Sequence.
type sequenceSource[T any] struct {
	seq sequence.Sequence[T]
}

func (s *sequenceSource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	if !s.seq.HasNext() {
		return zero, false, nil
	}
	value, err := s.seq.Next()
	if err != nil {
		return zero, false, err
	}
	return value, true, nil
}

func (s *sequenceSource[T]) Close() error {
	return nil
}

// concatSource opens each part in turn.
type concatSource[T any] struct {
	opens   []func() Source[T]
	current Source[T]
	index   int
}

func (s *concatSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	for {
		if s.current == nil {
			if s.index >= len(s.opens) {
				return zero, false, nil
			}
			s.current = s.opens[s.index]()
			s.index++
		}

		value, hasMore, err := s.current.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if hasMore {
			return value, true, nil
		}

		err = s.current.Close()
		s.current = nil
		if err != nil {
			return zero, false, err
		}
	}
}

func (s *concatSource[T]) Close() error {
	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	return err
}

// emptySource implements Source for empty streams.
type emptySource[T any] struct{}

func (s *emptySource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, nil
}

func (s *emptySource[T]) Close() error {
	return nil
}

// errorSource fails on the first pull.
type errorSource[T any] struct {
	err error
}

func (s *errorSource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, s.err
}

func (s *errorSource[T]) Close() error {
	return nil
}
