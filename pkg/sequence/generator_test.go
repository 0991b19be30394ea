package sequence

import (
	"testing"

	"github.com/vnykmshr/seqflow/internal/testutil"
)

func TestSquaresSuccessorFirst(t *testing.T) {
	squares := NewSquares(0)

	got, err := Take[int](squares, 4)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{1, 4, 9, 16})
	testutil.AssertEqual(t, squares.HasNext(), true)
}

func TestSquaresSeed(t *testing.T) {
	got, err := Take[int](NewSquares(2), 2)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{9, 16})
}

func TestGeneratorNeverEmitsSeed(t *testing.T) {
	calls := 0
	gen := NewGenerator("a", func(s string) string {
		calls++
		return s + "a"
	})

	testutil.AssertEqual(t, gen.Current(), "a")
	testutil.AssertEqual(t, calls, 0)

	v, err := gen.Next()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, "aa")
	testutil.AssertEqual(t, gen.Current(), "aa")
	testutil.AssertEqual(t, calls, 1)
}

func TestProgression(t *testing.T) {
	tests := []struct {
		name        string
		start, step int
		want        []int
	}{
		{"evens", 0, 2, []int{2, 4, 6}},
		{"countdown", 10, -3, []int{7, 4, 1}},
		{"constant", 5, 0, []int{5, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Take[int](Progression(tt.start, tt.step), 3)
			testutil.AssertNoError(t, err)
			testutil.AssertSliceEqual(t, got, tt.want)
		})
	}
}

func TestProgressionFloat(t *testing.T) {
	gen := Progression(0.5, 0.25)
	avg, err := BoundedAverage[float64](gen, 4)
	testutil.AssertNoError(t, err)
	// 0.75, 1.0, 1.25, 1.5
	testutil.AssertEqual(t, avg, 1.125)
}
