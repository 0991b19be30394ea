package sequence

import (
	"strconv"

	"github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

// Sequence produces elements on demand, one per call to Next.
type Sequence[T any] interface {
	// HasNext reports whether another element exists. Repeated calls without
	// an intervening Next return the same value.
	HasNext() bool

	// Next advances the sequence and returns the element. Calling Next when
	// HasNext would return false returns an error matching errors.ErrExhausted.
	Next() (T, error)
}

// NoMore supplies the default HasNext capability: a sequence that embeds it
// reports no further elements unless it defines its own HasNext.
type NoMore struct{}

// HasNext always returns false.
func (NoMore) HasNext() bool { return false }

// Empty is the sentinel sequence that never produces an element.
type Empty[T any] struct {
	NoMore
}

// Next always fails with ErrExhausted.
func (Empty[T]) Next() (T, error) {
	var zero T
	return zero, exhausted("empty sequence")
}

// DigitSequence yields the decimal digits of a non-negative integer,
// least-significant digit first.
type DigitSequence struct {
	number int
}

// DigitsOf returns the digit sequence of n. Zero has no digits.
// A negative n is rejected with a bound error.
func DigitsOf(n int) (*DigitSequence, error) {
	if err := validation.ValidateNonNegative("sequence", "n", int64(n)); err != nil {
		return nil, err
	}
	return &DigitSequence{number: n}, nil
}

// HasNext reports whether any digits remain.
func (d *DigitSequence) HasNext() bool {
	return d.number != 0
}

// Next returns the lowest remaining digit.
func (d *DigitSequence) Next() (int, error) {
	if d.number == 0 {
		return 0, exhausted("digits")
	}
	digit := d.number % 10
	d.number /= 10
	return digit, nil
}

// Rest returns the numeric value formed by the digits not yet consumed.
func (d *DigitSequence) Rest() int {
	return d.number
}

// String implements fmt.Stringer.
func (d *DigitSequence) String() string {
	return "digits(" + strconv.Itoa(d.number) + ")"
}

// Take pulls up to n elements from seq, stopping early when seq is exhausted.
func Take[T any](seq Sequence[T], n int) ([]T, error) {
	if err := validation.ValidateNonNegative("sequence", "n", int64(n)); err != nil {
		return nil, err
	}

	// n is a ceiling, not a size hint
	out := make([]T, 0, min(n, 64))
	for len(out) < n && seq.HasNext() {
		v, err := seq.Next()
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

func exhausted(context string) error {
	return errors.NewOperationError("sequence", "Next", errors.ErrExhausted).WithContext(context)
}
