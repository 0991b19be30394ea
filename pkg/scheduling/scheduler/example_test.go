package scheduler_test

import (
	"context"
	"fmt"

	"github.com/vnykmshr/seqflow/pkg/scheduling/scheduler"
	"github.com/vnykmshr/seqflow/pkg/scheduling/workerpool"
)

// Example registers a job, runs it once right away and leaves further runs to cron.
func Example() {
	s := scheduler.New(scheduler.Config{})

	report := workerpool.TaskFunc(func(ctx context.Context) error {
		fmt.Println("word count refreshed")
		return nil
	})

	if err := s.ScheduleCron("wordcount", "@every 1m", report); err != nil {
		fmt.Println(err)
		return
	}
	_ = s.Trigger(context.Background(), "wordcount")

	_ = s.Start()
	<-s.Stop()

	// Output: word count refreshed
}
