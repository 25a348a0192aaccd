package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// Scheduler runs named background jobs at a fixed interval. A run that is
// still going when the next tick fires is skipped.
type Scheduler struct {
	inner gocron.Scheduler
	log   *logrus.Logger
}

func New(logger *logrus.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{inner: s, log: logger}, nil
}

func (s *Scheduler) Every(name string, interval time.Duration, fn func(ctx context.Context)) error {
	_, err := s.inner.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fn),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"job": name, "interval": interval.String()}).Info("background job scheduled")
	return nil
}

func (s *Scheduler) Start() {
	s.inner.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.inner.Shutdown()
}

func (s *Scheduler) Jobs() int {
	return len(s.inner.Jobs())
}
