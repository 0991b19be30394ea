/*
Package scheduler re-executes tasks on cron schedules.

It wraps github.com/robfig/cron/v3: expressions use five fields with an optional
leading seconds field, or descriptors such as "@hourly" and "@every 1m".

	s := scheduler.New(scheduler.Config{Logger: log})
	err := s.ScheduleCron("wordcount", "@every 1m", task)
	err = s.Start()
	defer func() { <-s.Stop() }()

Every execution gets a fresh run id which is attached to its log entries. A run
that would start while the previous run of the same task is still active is
skipped. Panics are recovered and reported like errors.

Trigger runs a task immediately on the calling goroutine, which lets callers do a
first run before waiting for the schedule.
*/
package scheduler
