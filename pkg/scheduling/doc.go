/*
Package scheduling groups the task execution primitives used by seqflow.

  - workerpool: fixed worker pool running the partitions of parallel reductions
  - scheduler: cron-driven re-execution of jobs such as a periodic word count

Both take workerpool.Task values:

	task := workerpool.TaskFunc(func(ctx context.Context) error {
		// Do work
		return nil
	})

All scheduling components are safe for concurrent use and pass a context to
every task for cancellation.
*/
package scheduling
