package sequence

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/vnykmshr/seqflow/internal/testutil"
	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

func TestRandomInt_WithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	seen := make(map[int]bool)

	for i := 0; i < 1000; i++ {
		n, err := RandomInt(rng, 5, 10)
		testutil.AssertNoError(t, err)
		if n < 5 || n > 10 {
			t.Fatalf("RandomInt(5, 10) = %d, out of range", n)
		}
		seen[n] = true
	}
	testutil.AssertEqual(t, len(seen), 6)
}

func TestRandomInt_SingleValue(t *testing.T) {
	n, err := RandomInt(rand.New(rand.NewSource(1)), 7, 7)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 7)
}

func TestRandomInt_InvertedBounds(t *testing.T) {
	_, err := RandomInt(rand.New(rand.NewSource(1)), 10, 5)
	testutil.AssertEqual(t, errors.Is(err, gferrors.ErrInvalidBound), true)
	testutil.AssertEqual(t, strings.Contains(err.Error(), "low should be <= high"), true)
	testutil.AssertEqual(t, strings.Contains(err.Error(), "high is 5"), true)
}

func TestRandomInt_FullIntRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		_, err := RandomInt(rng, math.MinInt, math.MaxInt)
		testutil.AssertNoError(t, err)
	}

	for i := 0; i < 100; i++ {
		n, err := RandomInt(rng, -1, math.MaxInt)
		testutil.AssertNoError(t, err)
		if n < -1 {
			t.Fatalf("RandomInt(-1, MaxInt) = %d, out of range", n)
		}
	}
}
