// Package metrics provides Prometheus instrumentation for seqflow components.
//
// Streams are instrumented explicitly by wrapping them:
//
//	registry := metrics.NewRegistry(prometheus.NewRegistry())
//	words := stream.Instrument(stream.FromSlice(list), "words", registry)
//	n, err := words.Count(ctx)
//
// Parallel reductions count the partitions they reduce when given a registry
// through stream.ParallelConfig.
//
// # Available Metrics
//
//   - seqflow_stream_traversals_total{stream_name}: terminal operations started
//   - seqflow_stream_items_total{stream_name}: elements yielded
//   - seqflow_stream_errors_total{stream_name}: traversals ending in an error
//   - seqflow_parallel_partitions_total{operation}: partitions reduced
//
// Expose them via HTTP with promhttp.Handler().
package metrics
