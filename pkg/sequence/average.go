package sequence

import "github.com/vnykmshr/seqflow/pkg/common/validation"

// Number is the set of element types BoundedAverage can sum.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// BoundedAverage consumes at most n elements of seq and returns their mean.
// It stops early when seq is exhausted and returns 0 if nothing was consumed.
//
// seq is stateful: a second call continues with the elements after those
// consumed by the first.
func BoundedAverage[N Number](seq Sequence[N], n int) (float64, error) {
	if err := validation.ValidateNonNegative("sequence", "n", int64(n)); err != nil {
		return 0, err
	}

	count := 0
	sum := 0.0
	for count < n && seq.HasNext() {
		v, err := seq.Next()
		if err != nil {
			return 0, err
		}
		count++
		sum += float64(v)
	}

	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}
