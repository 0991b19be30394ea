package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// Submit adds a task to the pool for execution with the given context.
// The context is passed to the task's Execute method.
func (p *workerPool) Submit(ctx context.Context, task Task) error {
	if task == nil {
		return ErrNilTask
	}
	if ctx == nil {
		ctx = context.Background()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.isShutdown {
		return fmt.Errorf("cannot submit task: %w", ErrPoolShutdown)
	}

	// Pre-canceled contexts never reach the queue
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("cannot submit task: context canceled: %w", err)
	}

	select {
	case p.taskQueue <- taskWithContext{task: task, ctx: ctx}:
		return nil
	case <-p.shutdownCh:
		return fmt.Errorf("cannot submit task: %w", ErrPoolShutdown)
	case <-ctx.Done():
		return fmt.Errorf("cannot submit task: context canceled: %w", ctx.Err())
	}
}

// Results returns a channel of task results.
func (p *workerPool) Results() <-chan Result {
	return p.resultQueue
}

// Shutdown initiates a graceful shutdown of the pool.
func (p *workerPool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		// Unblock submitters waiting on a full queue before taking the write lock
		close(p.shutdownCh)

		p.mu.Lock()
		p.isShutdown = true
		close(p.taskQueue)
		p.mu.Unlock()

		go func() {
			p.workerWg.Wait()
			close(p.resultQueue)
			close(p.done)
		}()
	})

	return p.done
}

// Size returns the number of workers in the pool.
func (p *workerPool) Size() int {
	return p.config.WorkerCount
}

// QueueSize returns the current number of queued tasks waiting for execution.
func (p *workerPool) QueueSize() int {
	return len(p.taskQueue)
}

// TotalCompleted returns the number of tasks executed so far.
func (p *workerPool) TotalCompleted() int64 {
	return atomic.LoadInt64(&p.totalCompleted)
}

// run is the main loop for a worker. It exits once the queue is closed and drained.
func (w *worker) run() {
	defer w.pool.workerWg.Done()

	for twc := range w.pool.taskQueue {
		w.pool.resultQueue <- w.executeTask(twc)
		atomic.AddInt64(&w.pool.totalCompleted, 1)
	}
}

// executeTask executes a single task, recovering panics into the result error.
func (w *worker) executeTask(twc taskWithContext) (result Result) {
	start := time.Now()
	result = Result{Task: twc.task, WorkerID: w.id}

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
			w.pool.log.Error("task panicked", map[string]interface{}{
				"worker_id": w.id,
				"panic":     fmt.Sprint(r),
				"stack":     string(debug.Stack()),
			})
			if w.pool.config.PanicHandler != nil {
				w.pool.config.PanicHandler(twc.task, r)
			}
		}
		result.Duration = time.Since(start)
	}()

	result.Error = twc.task.Execute(twc.ctx)
	return result
}
