/*
Package sequence provides pull-based sequences: values produced on demand by
explicit HasNext/Next calls from the consumer.

Variants:
  - DigitsOf(n): decimal digits of n, least-significant first, with Rest()
    reporting the value of the unconsumed digits
  - NewGenerator(seed, successor): infinite, successor-first
  - NewSquares(seed), Progression(start, step): generators built on NewGenerator
  - Empty[T]: never produces; embeds NoMore, the default HasNext capability

Sequences are stateful and single-pass. Consumers such as BoundedAverage and
Take continue from wherever the previous consumer stopped:

	digits, _ := sequence.DigitsOf(123456)
	first, _ := sequence.BoundedAverage[int](digits, 2)  // (6+5)/2 = 5.5
	second, _ := sequence.BoundedAverage[int](digits, 3) // (4+3+2)/3 = 3
	rest := digits.Rest()                                // 1

Calling Next on an exhausted sequence is an error matching errors.ErrExhausted.
*/
package sequence
