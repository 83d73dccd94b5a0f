package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Scheduler runs the advisor pipeline once a day at a fixed local time. Each
// tick is an independent run; a failed run is logged and the next tick starts
// clean.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runAt     string
	run       func() error
	logger    *zap.Logger
}

// New creates a Scheduler that invokes run daily at runAt ("HH:MM") in tz.
func New(runAt string, tz *time.Location, run func() error, logger *zap.Logger) *Scheduler {
	if tz == nil {
		tz = time.Local
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(tz),
		runAt:     runAt,
		run:       run,
		logger:    logger,
	}
}

// Start schedules the daily job and blocks until Stop is called.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().At(s.runAt).Do(func() {
		s.logger.Info("scheduled run starting", zap.String("at", s.runAt))
		if err := s.run(); err != nil {
			s.logger.Error("scheduled run failed", zap.Error(err))
			return
		}
		s.logger.Info("scheduled run completed")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartBlocking()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
