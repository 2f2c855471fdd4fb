package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Job is the periodic work the scheduler runs, e.g. a seed.Seeder.
type Job interface {
	Run(ctx context.Context) (int, error)
}

// Scheduler periodically resets the weather store to its seed records.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       Job
	interval  time.Duration
}

// New creates a new Scheduler. A non-positive interval disables it.
func New(interval time.Duration, job Job) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		job:       job,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 || s.job == nil {
		log.Println("scheduler: reseeding disabled; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 1
	}

	// the first run happens one interval from now; startup seeding is separate
	_, err := s.scheduler.Every(minutes).Minutes().WaitForSchedule().Do(func() {
		log.Println("scheduler: running reseed job")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := s.job.Run(ctx)
		if err != nil {
			log.Printf("scheduler: reseed failed: %v", err)
			return
		}
		log.Printf("scheduler: reseeded %d cities", n)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil && s.scheduler.IsRunning() {
		s.scheduler.Stop()
	}
}
