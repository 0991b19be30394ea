/*
Package seqflow provides lazy pull sequences and single-use stream pipelines.

Sequences (pkg/sequence):
  - Sequence: HasNext/Next pull interface with digit, squares and progression producers
  - BoundedAverage: averages at most n elements of any numeric sequence

Streaming (pkg/streaming):
  - stream: Filter, Map, Skip, Limit, Distinct, Sorted and Concat stages over
    possibly infinite sources, driven by terminal operations such as Count,
    Max and FindFirst
  - redislist: a Redis list as a stream source
  - words: word splitting for word counts

Task Scheduling (pkg/scheduling):
  - workerpool: runs the partitions of parallel reductions
  - scheduler: cron-driven re-execution of jobs

Example usage:

	import (
		"github.com/vnykmshr/seqflow/pkg/sequence"
		"github.com/vnykmshr/seqflow/pkg/streaming/stream"
	)

	digits, _ := sequence.DigitsOf(1729)
	avg, _ := sequence.BoundedAverage[int](digits, 10) // 4.75

	evens, _ := stream.Iterate(0, func(n int) int { return n + 2 }).
		Limit(100).
		ToSlice(ctx)

See individual package documentation for detailed usage examples.
*/
package seqflow
