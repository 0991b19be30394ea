package stream

import (
	"context"
	"fmt"
	"sort"

	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

// filterSource yields upstream elements matching predicate.
type filterSource[T any] struct {
	upstream  Source[T]
	predicate func(T) bool
}

func (f *filterSource[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		value, hasMore, err := f.upstream.Next(ctx)
		if err != nil || !hasMore {
			return value, false, err
		}
		if f.predicate(value) {
			return value, true, nil
		}
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, false, err
		}
	}
}

func (f *filterSource[T]) Close() error {
	return f.upstream.Close()
}

// mapSource transforms elements from one type to another.
type mapSource[From, To any] struct {
	upstream Source[From]
	mapper   func(From) To
}

func (m *mapSource[From, To]) Next(ctx context.Context) (To, bool, error) {
	var zero To

	value, hasMore, err := m.upstream.Next(ctx)
	if err != nil || !hasMore {
		return zero, false, err
	}
	return m.mapper(value), true, nil
}

func (m *mapSource[From, To]) Close() error {
	return m.upstream.Close()
}

// flatMapSource drains the stream mapped from each upstream element before pulling the next one.
type flatMapSource[T any] struct {
	upstream Source[T]
	mapper   func(T) Stream[T]
	inner    Source[T]
}

func (f *flatMapSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	for {
		if f.inner == nil {
			value, hasMore, err := f.upstream.Next(ctx)
			if err != nil || !hasMore {
				return zero, false, err
			}
			inner, err := f.mapper(value).cursor()
			if err != nil {
				return zero, false, err
			}
			f.inner = inner
		}

		value, hasMore, err := f.inner.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if hasMore {
			return value, true, nil
		}
		if err := f.closeInner(); err != nil {
			return zero, false, err
		}
	}
}

func (f *flatMapSource[T]) closeInner() error {
	if f.inner == nil {
		return nil
	}
	err := f.inner.Close()
	f.inner = nil
	return err
}

func (f *flatMapSource[T]) Close() error {
	innerErr := f.closeInner()
	if err := f.upstream.Close(); err != nil {
		return err
	}
	return innerErr
}

// distinctSource drops elements whose key was already yielded by this cursor.
// A key whose dynamic type is not comparable fails the traversal with ErrUnhashableKey.
type distinctSource[T any, K comparable] struct {
	upstream Source[T]
	key      func(T) K
	seen     map[K]struct{}
}

func (d *distinctSource[T, K]) Next(ctx context.Context) (T, bool, error) {
	for {
		value, hasMore, err := d.upstream.Next(ctx)
		if err != nil || !hasMore {
			return value, false, err
		}
		fresh, err := d.remember(d.key(value))
		if err != nil {
			var zero T
			return zero, false, err
		}
		if fresh {
			return value, true, nil
		}
	}
}

// remember records k and reports whether it was new.
func (d *distinctSource[T, K]) remember(k K) (fresh bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = gferrors.NewOperationError("stream", "Distinct", ErrUnhashableKey).
				WithContext(fmt.Sprintf("%T", k))
		}
	}()

	if _, exists := d.seen[k]; exists {
		return false, nil
	}
	d.seen[k] = struct{}{}
	return true, nil
}

func (d *distinctSource[T, K]) Close() error {
	return d.upstream.Close()
}

// sortSource buffers the whole upstream on the first pull.
type sortSource[T any] struct {
	upstream Source[T]
	compare  func(a, b T) int
	elements []T
	index    int
	loaded   bool
}

func (s *sortSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	if !s.loaded {
		for {
			value, hasMore, err := s.upstream.Next(ctx)
			if err != nil {
				return zero, false, err
			}
			if !hasMore {
				break
			}
			s.elements = append(s.elements, value)
		}
		sort.SliceStable(s.elements, func(i, j int) bool {
			return s.compare(s.elements[i], s.elements[j]) < 0
		})
		s.loaded = true
	}

	if s.index >= len(s.elements) {
		return zero, false, nil
	}
	value := s.elements[s.index]
	s.index++
	return value, true, nil
}

func (s *sortSource[T]) Close() error {
	s.elements = nil
	return s.upstream.Close()
}

// skipSource discards the first n upstream elements.
type skipSource[T any] struct {
	upstream Source[T]
	n        int64
	skipped  int64
}

func (s *skipSource[T]) Next(ctx context.Context) (T, bool, error) {
	for s.skipped < s.n {
		value, hasMore, err := s.upstream.Next(ctx)
		if err != nil || !hasMore {
			return value, false, err
		}
		s.skipped++
	}
	return s.upstream.Next(ctx)
}

func (s *skipSource[T]) Close() error {
	return s.upstream.Close()
}

// limitSource stops pulling once maxSize elements were yielded.
type limitSource[T any] struct {
	upstream Source[T]
	maxSize  int64
	count    int64
}

func (l *limitSource[T]) Next(ctx context.Context) (T, bool, error) {
	if l.count >= l.maxSize {
		var zero T
		return zero, false, nil
	}
	value, hasMore, err := l.upstream.Next(ctx)
	if err != nil || !hasMore {
		return value, false, err
	}
	l.count++
	return value, true, nil
}

func (l *limitSource[T]) Close() error {
	return l.upstream.Close()
}

// peekSource runs action on every element it yields.
type peekSource[T any] struct {
	upstream Source[T]
	action   func(T)
}

func (p *peekSource[T]) Next(ctx context.Context) (T, bool, error) {
	value, hasMore, err := p.upstream.Next(ctx)
	if err != nil || !hasMore {
		return value, false, err
	}
	p.action(value)
	return value, true, nil
}

func (p *peekSource[T]) Close() error {
	return p.upstream.Close()
}
