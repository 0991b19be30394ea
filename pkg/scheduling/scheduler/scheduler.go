package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/seqflow/internal/logger"
	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/scheduling/workerpool"
)

var (
	// ErrAlreadyRunning is returned by Start on a running scheduler.
	ErrAlreadyRunning = errors.New("scheduler already running, call Stop() first")

	// ErrDuplicateTask is returned when scheduling an id that is already scheduled.
	ErrDuplicateTask = errors.New("task already scheduled")

	// ErrUnknownTask is returned when triggering an id that is not scheduled.
	ErrUnknownTask = errors.New("task not scheduled")
)

// cronParser accepts five-field expressions, an optional leading seconds
// field, and descriptors such as "@hourly" or "@every 1m".
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Task describes a scheduled task.
type Task struct {
	ID             string
	CronExpression string
	NextRun        time.Time // zero until the scheduler is started
	Runs           int64
	Created        time.Time
}

// Scheduler re-executes tasks on cron schedules.
type Scheduler interface {
	// ScheduleCron schedules task using a cron expression.
	// Examples:
	//   "0 */2 * * *"     - Every 2 hours
	//   "30 14 * * 1-5"   - 2:30 PM on weekdays
	//   "@every 1m"       - Every minute
	ScheduleCron(id string, cronExpr string, task workerpool.Task) error

	// Trigger runs the task registered under id immediately on the calling goroutine.
	Trigger(ctx context.Context, id string) error

	// Task management
	Cancel(id string) bool
	List() []Task

	// Lifecycle
	Start() error
	Stop() <-chan struct{}
}

// Config configures a scheduler.
type Config struct {
	// Logger receives run start, completion and failure entries. Defaults to a no-op logger.
	Logger *logger.Logger

	// Location is the time zone used to evaluate cron expressions. Defaults to time.Local.
	Location *time.Location

	// OnError is called after a scheduled run fails.
	OnError func(id string, err error)
}

type scheduledTask struct {
	id       string
	expr     string
	task     workerpool.Task
	entryID  cron.EntryID
	runs     int64 // atomic
	created  time.Time
	inflight sync.Mutex
}

type scheduler struct {
	cfg  Config
	log  *logger.Logger
	cron *cron.Cron

	mu      sync.Mutex
	tasks   map[string]*scheduledTask
	running bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler. Call Start to begin executing tasks.
func New(cfg Config) Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("scheduler")

	ctx, cancel := context.WithCancel(context.Background())
	return &scheduler{
		cfg: cfg,
		log: log,
		cron: cron.New(
			cron.WithParser(cronParser),
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cronLogger{log: log}),
		),
		tasks:  make(map[string]*scheduledTask),
		ctx:    ctx,
		cancel: cancel,
	}
}

// ValidateCronExpression validates a cron expression without scheduling it.
func ValidateCronExpression(cronExpr string) error {
	if err := validation.ValidateNotEmpty("scheduler", "cron", cronExpr); err != nil {
		return err
	}
	if _, err := cronParser.Parse(cronExpr); err != nil {
		return gferrors.NewValidationError("scheduler", "cron", cronExpr, err.Error()).
			WithHint(`use five fields such as "*/5 * * * *" or a descriptor such as "@every 1m"`)
	}
	return nil
}

func (s *scheduler) ScheduleCron(id string, cronExpr string, task workerpool.Task) error {
	if err := validation.ValidateNotEmpty("scheduler", "id", id); err != nil {
		return err
	}
	if err := validation.ValidateNotNil("scheduler", "task", task); err != nil {
		return err
	}
	if err := ValidateCronExpression(cronExpr); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, id)
	}

	st := &scheduledTask{id: id, expr: cronExpr, task: task, created: time.Now()}

	// SkipIfStillRunning semantics per task: a run that finds the previous one active is dropped
	entryID, err := s.cron.AddFunc(cronExpr, func() {
		if !st.inflight.TryLock() {
			s.log.Warn("run skipped, previous run still active", map[string]interface{}{"task_id": id})
			return
		}
		defer st.inflight.Unlock()
		s.execute(s.runContext(), st)
	})
	if err != nil {
		return gferrors.NewOperationError("scheduler", "ScheduleCron", err).WithContext(id)
	}
	st.entryID = entryID
	s.tasks[id] = st
	return nil
}

func (s *scheduler) Trigger(ctx context.Context, id string) error {
	s.mu.Lock()
	st, ok := s.tasks[id]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}

	st.inflight.Lock()
	defer st.inflight.Unlock()
	return s.execute(ctx, st)
}

// execute runs one task execution under a fresh run id.
func (s *scheduler) execute(ctx context.Context, st *scheduledTask) (err error) {
	runID := uuid.NewString()
	fields := map[string]interface{}{"task_id": st.id, "run_id": runID}
	start := time.Now()
	s.log.Debug("run started", fields)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", workerpool.ErrTaskPanicked, r)
		}
		atomic.AddInt64(&st.runs, 1)
		fields["duration"] = time.Since(start).String()
		if err != nil {
			s.log.WithError(err).Error("run failed", fields)
			if s.cfg.OnError != nil {
				s.cfg.OnError(st.id, err)
			}
			return
		}
		s.log.Debug("run completed", fields)
	}()

	return st.task.Execute(ctx)
}

// runContext returns the context handed to scheduled runs.
func (s *scheduler) runContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.tasks[id]
	if !ok {
		return false
	}
	s.cron.Remove(st.entryID)
	delete(s.tasks, id)
	return true
}

func (s *scheduler) List() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]Task, 0, len(s.tasks))
	for _, st := range s.tasks {
		tasks = append(tasks, Task{
			ID:             st.id,
			CronExpression: st.expr,
			NextRun:        s.cron.Entry(st.entryID).Next,
			Runs:           atomic.LoadInt64(&st.runs),
			Created:        st.created,
		})
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID < tasks[j].ID
	})
	return tasks
}

func (s *scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true
	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}
	s.cron.Start()
	s.log.Info("scheduler started", map[string]interface{}{"tasks": len(s.tasks)})
	return nil
}

// Stop halts scheduling and cancels the context of running tasks. The returned
// channel closes once the running tasks have returned.
func (s *scheduler) Stop() <-chan struct{} {
	s.mu.Lock()
	wasRunning := s.running
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	stopped := make(chan struct{})
	if !wasRunning {
		close(stopped)
		return stopped
	}

	cancel()
	cronDone := s.cron.Stop()
	go func() {
		defer close(stopped)
		<-cronDone.Done()
		s.log.Info("scheduler stopped")
	}()
	return stopped
}

// cronLogger adapts Logger to cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, pairs(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.WithError(err).Error(msg, pairs(keysAndValues))
}

func pairs(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
