package workerpool

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vnykmshr/seqflow/internal/logger"
	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

var (
	// ErrPoolShutdown is returned when submitting to a pool that was shut down.
	ErrPoolShutdown = errors.New("worker pool has been shut down")

	// ErrNilTask is returned when submitting a nil task.
	ErrNilTask = errors.New("task cannot be nil")

	// ErrTaskPanicked is wrapped by the Result error of a task that panicked.
	ErrTaskPanicked = errors.New("task panicked")
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute runs the task with the given context.
	// It should respect context cancellation and return any error encountered.
	Execute(ctx context.Context) error
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) error

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Result represents the result of a task execution.
type Result struct {
	// Task is the original task that was executed
	Task Task

	// Error is any error that occurred during task execution
	Error error

	// Duration is how long the task took to execute
	Duration time.Duration

	// WorkerID identifies which worker executed the task
	WorkerID int
}

// Pool represents a worker pool that can execute tasks concurrently.
type Pool interface {
	// Submit queues a task for execution with ctx.
	// It blocks while the queue is full and fails once ctx is done or the pool is shut down.
	Submit(ctx context.Context, task Task) error

	// Results returns a channel of task results.
	// Every executed task produces exactly one result, and workers block until it is received,
	// so callers must drain the channel. It is closed once shutdown completes.
	Results() <-chan Result

	// Shutdown stops accepting tasks. Queued tasks still run.
	// Returns a channel that closes when every worker has exited.
	Shutdown() <-chan struct{}

	// Size returns the number of workers in the pool.
	Size() int

	// QueueSize returns the current number of queued tasks waiting for execution.
	QueueSize() int

	// TotalCompleted returns the number of tasks executed so far.
	TotalCompleted() int64
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Must be greater than 0.
	WorkerCount int

	// QueueSize is the capacity of the task queue. 0 means Submit hands
	// tasks directly to an idle worker.
	QueueSize int

	// BufferedResults sizes the result channel to QueueSize+WorkerCount so
	// workers do not wait for the consumer.
	BufferedResults bool

	// PanicHandler is called when a task panics. The panic is always
	// recovered and reported through the task's Result.
	PanicHandler func(task Task, recovered interface{})

	// Logger receives task panic reports. Defaults to a no-op logger.
	Logger *logger.Logger
}

// workerPool implements the Pool interface.
type workerPool struct {
	config Config
	log    *logger.Logger

	taskQueue    chan taskWithContext
	resultQueue  chan Result
	shutdownCh   chan struct{}
	done         chan struct{}
	shutdownOnce sync.Once

	mu             sync.RWMutex
	isShutdown     bool
	totalCompleted int64

	workerWg sync.WaitGroup
}

type taskWithContext struct {
	task Task
	ctx  context.Context
}

// worker represents a single worker in the pool.
type worker struct {
	id   int
	pool *workerPool
}

// New creates a worker pool and starts its workers.
func New(config Config) (Pool, error) {
	if err := validation.ValidatePositive("workerpool", "WorkerCount", config.WorkerCount); err != nil {
		return nil, err
	}
	if config.QueueSize < 0 {
		return nil, gferrors.NewValidationError("workerpool", "QueueSize", config.QueueSize, "cannot be negative")
	}

	log := config.Logger
	if log == nil {
		log = logger.Nop()
	}

	resultBuffer := 0
	if config.BufferedResults {
		resultBuffer = config.QueueSize + config.WorkerCount
	}

	pool := &workerPool{
		config:      config,
		log:         log.WithComponent("workerpool"),
		taskQueue:   make(chan taskWithContext, config.QueueSize),
		resultQueue: make(chan Result, resultBuffer),
		shutdownCh:  make(chan struct{}),
		done:        make(chan struct{}),
	}

	for i := 0; i < config.WorkerCount; i++ {
		w := &worker{id: i, pool: pool}
		pool.workerWg.Add(1)
		go w.run()
	}

	return pool, nil
}
