package sequence

import (
	"math"
	"math/rand"

	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

// RandomInt returns a uniformly distributed integer in [low, high].
// low > high is reported as an invalid bound.
func RandomInt(rng *rand.Rand, low, high int) (int, error) {
	if err := validation.ValidateRange("sequence", "low", low, high); err != nil {
		return 0, err
	}

	// width is computed unsigned so ranges wider than math.MaxInt do not overflow
	width := uint64(high) - uint64(low)
	if width < uint64(math.MaxInt) {
		return low + rng.Intn(int(width)+1), nil
	}
	for {
		v := rng.Uint64()
		if width == math.MaxUint64 || v <= width {
			return int(uint64(low) + v), nil
		}
	}
}
