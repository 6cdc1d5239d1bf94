package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const defaultCheckInterval = time.Second

// Updater is polled on every check. It must not block on slow work.
type Updater interface {
	Update(ctx context.Context)
}

type Scheduler struct {
	s             gocron.Scheduler
	updater       Updater
	checkInterval time.Duration
	ctx           context.Context
}

func NewScheduler(ctx context.Context, updater Updater, checkInterval time.Duration, opts ...gocron.SchedulerOption) (*Scheduler, error) {
	if checkInterval <= 0 {
		checkInterval = defaultCheckInterval
	}

	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:             s,
		updater:       updater,
		checkInterval: checkInterval,
		ctx:           ctx,
	}, nil
}

func (s *Scheduler) Start() error {
	// Update check - every checkInterval, skipped while the previous run is still going
	_, err := s.s.NewJob(
		gocron.DurationJob(s.checkInterval),
		gocron.NewTask(s.runUpdate),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("update-check"),
	)
	if err != nil {
		return fmt.Errorf("failed to create update check job: %w", err)
	}

	s.s.Start()
	slog.Info("Scheduler started", "check_interval", s.checkInterval)
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) runUpdate() {
	if s.ctx.Err() != nil {
		return
	}
	s.updater.Update(s.ctx)
}
