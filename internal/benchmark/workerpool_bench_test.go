package benchmark

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/vnykmshr/seqflow/pkg/scheduling/workerpool"
)

func newPool(b *testing.B, workers, queue int) workerpool.Pool {
	b.Helper()
	pool, err := workerpool.New(workerpool.Config{WorkerCount: workers, QueueSize: queue})
	if err != nil {
		b.Fatalf("failed to create pool: %v", err)
	}
	return pool
}

// drain consumes results until the pool shuts down.
func drain(pool workerpool.Pool) *sync.WaitGroup {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range pool.Results() {
		}
	}()
	return &wg
}

// BenchmarkWorkerPoolSubmit measures task submission performance.
func BenchmarkWorkerPoolSubmit(b *testing.B) {
	task := workerpool.TaskFunc(func(_ context.Context) error { return nil })

	for _, workers := range []int{2, 4, 8} {
		b.Run(workerLabel(workers), func(b *testing.B) {
			pool := newPool(b, workers, 1000)
			wg := drain(pool)
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = pool.Submit(ctx, task)
			}
			b.StopTimer()

			<-pool.Shutdown()
			wg.Wait()
		})
	}
}

// BenchmarkWorkerPoolContention measures submission from many goroutines.
func BenchmarkWorkerPoolContention(b *testing.B) {
	pool := newPool(b, 8, 500)
	wg := drain(pool)
	task := workerpool.TaskFunc(func(_ context.Context) error { return nil })

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			_ = pool.Submit(ctx, task)
		}
	})
	b.StopTimer()

	<-pool.Shutdown()
	wg.Wait()
}

// BenchmarkWorkerPoolShutdown measures pool startup and shutdown.
func BenchmarkWorkerPoolShutdown(b *testing.B) {
	task := workerpool.TaskFunc(func(_ context.Context) error { return nil })

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pool := newPool(b, 4, 100)
		wg := drain(pool)
		for j := 0; j < 10; j++ {
			_ = pool.Submit(context.Background(), task)
		}
		<-pool.Shutdown()
		wg.Wait()
	}
}

// workerLabel returns a readable label for worker counts.
func workerLabel(workers int) string {
	return strconv.Itoa(workers) + "workers"
}
