package sequence

import (
	"math"
	"testing"

	"github.com/vnykmshr/seqflow/internal/testutil"
	"github.com/vnykmshr/seqflow/pkg/common/errors"
)

// countingSequence emits 1..limit and records how many elements were pulled.
type countingSequence struct {
	next   int
	limit  int
	pulled []int
}

func (c *countingSequence) HasNext() bool { return c.next < c.limit }

func (c *countingSequence) Next() (int, error) {
	if !c.HasNext() {
		return 0, errors.ErrExhausted
	}
	c.next++
	c.pulled = append(c.pulled, c.next)
	return c.next, nil
}

// defaultOnly relies on the embedded NoMore for HasNext.
type defaultOnly struct {
	NoMore
}

func (defaultOnly) Next() (int, error) { return 42, nil }

func TestNoMoreDefault(t *testing.T) {
	var seq Sequence[int] = defaultOnly{}
	testutil.AssertEqual(t, seq.HasNext(), false)

	avg, err := BoundedAverage(seq, 10)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, avg, 0.0)
}

func TestEmpty(t *testing.T) {
	var seq Sequence[string] = Empty[string]{}
	testutil.AssertEqual(t, seq.HasNext(), false)
	testutil.AssertEqual(t, seq.HasNext(), false)

	_, err := seq.Next()
	testutil.AssertError(t, err)
	if !errors.IsExhausted(err) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestDigitsOf(t *testing.T) {
	digits, err := DigitsOf(1729)
	testutil.AssertNoError(t, err)

	got, err := Take[int](digits, 10)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{9, 2, 7, 1})
	testutil.AssertEqual(t, digits.HasNext(), false)
	testutil.AssertEqual(t, digits.Rest(), 0)

	_, err = digits.Next()
	if !errors.IsExhausted(err) {
		t.Fatalf("expected ErrExhausted after last digit, got %v", err)
	}
}

func TestDigitsOfRest(t *testing.T) {
	digits, err := DigitsOf(1729)
	testutil.AssertNoError(t, err)

	d, err := digits.Next()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, d, 9)
	testutil.AssertEqual(t, digits.Rest(), 172)
	testutil.AssertEqual(t, digits.String(), "digits(172)")
}

func TestDigitsOfZeroAndNegative(t *testing.T) {
	zero, err := DigitsOf(0)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, zero.HasNext(), false)

	_, err = DigitsOf(-5)
	if !errors.IsInvalidBound(err) {
		t.Fatalf("expected ErrInvalidBound, got %v", err)
	}
}

func TestHasNextIsStable(t *testing.T) {
	digits, _ := DigitsOf(12)
	for i := 0; i < 3; i++ {
		testutil.AssertEqual(t, digits.HasNext(), true)
	}
	testutil.AssertEqual(t, digits.Rest(), 12)
}

func TestTake(t *testing.T) {
	seq := &countingSequence{limit: 5}

	got, err := Take[int](seq, 3)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{1, 2, 3})

	got, err = Take[int](seq, 0)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(got), 0)

	got, err = Take[int](seq, 10)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{4, 5})

	_, err = Take[int](seq, -1)
	if !errors.IsInvalidBound(err) {
		t.Fatalf("expected ErrInvalidBound, got %v", err)
	}
}

func TestTake_HugeBoundStopsAtExhaustion(t *testing.T) {
	digits, err := DigitsOf(1729)
	testutil.AssertNoError(t, err)

	got, err := Take[int](digits, math.MaxInt)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{9, 2, 7, 1})
}
