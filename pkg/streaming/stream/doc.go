/*
Package stream provides lazy, pull-based pipelines over sequences of data.

The stream API follows Java 8 Streams: sources, chained intermediate operations
and a terminal operation that produces a result.

Core Concepts:

A Stream represents a sequence of elements supporting sequential operations. Streams are:
  - Lazy: nothing is computed until a terminal operation pulls elements, and only
    as many source elements are produced as the terminal operation needs
  - Immutable: intermediate operations return new streams describing the extra stage
  - Single-use: the first terminal operation consumes a stream value; a second one
    returns ErrStreamClosed
  - Synchronous: elements are pulled on the caller's goroutine, one at a time

Basic Usage:

	result, err := stream.FromSlice([]int{1, 2, 3, 4, 5}).
		Filter(func(x int) bool { return x%2 == 0 }). // Keep even numbers
		Map(func(x int) int { return x * 2 }).         // Double them
		ToSlice(ctx)                                   // Collect to slice

	fmt.Println(result) // [4 8]

Stream Creation:

	stream.Of("a", "b", "c")
	stream.FromSlice(items)               // copies items
	stream.FromChannel(ch)                // drains ch until closed
	stream.Generate(rand.Float64)         // infinite
	stream.Iterate(0, func(x int) int { return x + 2 }) // 0, 2, 4, ...
	stream.FromSequence(seq)              // adapts a sequence.Sequence
	stream.Concat(first, second)          // second opens after first is exhausted

Infinite sources must be bounded by Limit or a short-circuiting terminal
operation (FindFirst, AnyMatch, ...) before they are consumed.

Bounds:

Skip and Limit reject negative counts. The returned stream carries a validation
error matching errors.ErrInvalidBound which its terminal operation reports
without pulling anything.

Optional Results:

FindFirst, FindAny, FindFirstMatch, Min and Max return an optional.Value that
is empty when no element qualifies. An empty result is never an error.

Reuse:

The description of a pipeline can be shared: deriving two streams from the same
unconsumed stream gives two independent traversals, each with its own cursor and
its own Distinct and Sorted state.

	base := stream.Of(3, 1, 2)
	small := base.Filter(func(x int) bool { return x < 3 })
	large := base.Filter(func(x int) bool { return x >= 3 })

Parallel Reductions:

ParallelReduce and ParallelCount fold finite slices on a worker pool, one
contiguous partition per worker, combining partial results in partition order.

Metrics:

Instrument wraps a stream so its traversals, elements and errors are counted
in a metrics.Registry.
*/
package stream
