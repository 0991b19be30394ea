/*
Package workerpool provides a fixed-size worker pool executing context-aware tasks.

A worker pool manages a fixed number of worker goroutines that execute tasks concurrently.
seqflow uses it to reduce slice partitions in parallel.

Basic usage:

	pool, err := workerpool.New(workerpool.Config{WorkerCount: 4, QueueSize: 4})
	if err != nil {
		return err
	}

	task := workerpool.TaskFunc(func(ctx context.Context) error {
		// Do work
		return nil
	})

	if err := pool.Submit(ctx, task); err != nil {
		return err
	}

	result := <-pool.Results()
	<-pool.Shutdown()

Results:

Every executed task produces exactly one Result. Workers wait until the result
is received, so callers must drain Results() or enable BufferedResults when they
know the number of tasks in advance. The channel closes after Shutdown once all
queued tasks ran.

Panics:

A panicking task does not take its worker down. The panic is recovered, reported
as a Result error wrapping ErrTaskPanicked, logged through Config.Logger and
passed to Config.PanicHandler when set.
*/
package workerpool
