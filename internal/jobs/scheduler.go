// Package jobs runs scheduled background work.
package jobs

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"investapp/internal/logger"
)

// Job is a named unit of scheduled work.
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs. A job still running when its next
// tick arrives is skipped rather than overlapped.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a Scheduler.
func NewScheduler() *Scheduler {
	cronLog := cron.PrintfLogger(zap.NewStdLog(logger.Get().Desugar()))
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLog))),
	}
}

// Start starts the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Get().Infow("scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Get().Infow("scheduler stopped")
}

// AddJob registers a job with a cron schedule such as "30 23 * * *".
// Job failures are logged, never propagated.
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		logger.Get().Infow("running job", "job", job.Name())
		if err := job.Run(); err != nil {
			logger.Get().Errorw("job failed", "job", job.Name(), "error", err.Error())
			return
		}
		logger.Get().Infow("job completed", "job", job.Name())
	})
	if err != nil {
		return err
	}

	logger.Get().Infow("job registered", "job", job.Name(), "schedule", schedule)
	return nil
}

// RunNow executes a job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) error {
	logger.Get().Infow("running job immediately", "job", job.Name())
	return job.Run()
}
