package sequence

// Generator is an infinite sequence that derives each element from the
// previous one. Next applies the successor first and returns the new state,
// so the seed itself is never emitted.
//
// This is the opposite convention of stream.Iterate, which emits the seed first.
type Generator[T any] struct {
	current   T
	successor func(T) T
}

// NewGenerator creates a Generator starting from seed.
func NewGenerator[T any](seed T, successor func(T) T) *Generator[T] {
	return &Generator[T]{current: seed, successor: successor}
}

// HasNext always returns true.
func (g *Generator[T]) HasNext() bool { return true }

// Next advances the state by one successor step and returns it.
func (g *Generator[T]) Next() (T, error) {
	g.current = g.successor(g.current)
	return g.current, nil
}

// Current returns the most recently emitted value, or the seed before the first Next.
func (g *Generator[T]) Current() T {
	return g.current
}

// Progression returns an arithmetic progression: start+step, start+2*step, ...
func Progression[N Number](start, step N) *Generator[N] {
	return NewGenerator(start, func(v N) N { return v + step })
}

// Squares yields (seed+1)^2, (seed+2)^2, ... by squaring an incrementing counter.
type Squares struct {
	counter *Generator[int]
}

// NewSquares creates a Squares sequence whose counter starts at seed.
func NewSquares(seed int) *Squares {
	return &Squares{counter: Progression(seed, 1)}
}

// HasNext always returns true.
func (s *Squares) HasNext() bool { return true }

// Next increments the counter and returns its square.
func (s *Squares) Next() (int, error) {
	i, err := s.counter.Next()
	if err != nil {
		return 0, err
	}
	return i * i, nil
}
