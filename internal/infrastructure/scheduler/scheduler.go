package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
	"github.com/go-co-op/gocron/v2"
)

const defaultRunTimeout = 30 * time.Second

// Job is a named background task run on a fixed interval. A run that is still
// going when the next tick arrives is rescheduled instead of overlapping.
type Job struct {
	Name           string
	Interval       time.Duration
	Timeout        time.Duration
	RunImmediately bool
	Run            func(ctx context.Context) error
}

type Scheduler struct {
	inner  gocron.Scheduler
	logger *logging.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(logger *logging.Logger, opts ...gocron.SchedulerOption) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	opts = append([]gocron.SchedulerOption{gocron.WithLocation(time.UTC)}, opts...)
	inner, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		inner:  inner,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

func (s *Scheduler) Register(job Job) error {
	job.Name = strings.TrimSpace(job.Name)
	if job.Name == "" {
		return fmt.Errorf("job name is required")
	}
	if job.Interval <= 0 {
		return fmt.Errorf("job %s: interval must be > 0", job.Name)
	}
	if job.Run == nil {
		return fmt.Errorf("job %s: run func is required", job.Name)
	}
	if job.Timeout <= 0 {
		job.Timeout = defaultRunTimeout
	}

	options := []gocron.JobOption{
		gocron.WithName(job.Name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if job.RunImmediately {
		options = append(options, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	if _, err := s.inner.NewJob(
		gocron.DurationJob(job.Interval),
		gocron.NewTask(func() { s.run(job) }),
		options...,
	); err != nil {
		return fmt.Errorf("register job %s: %w", job.Name, err)
	}

	s.logger.Info("job registered", "job", job.Name, "interval", job.Interval.String())
	return nil
}

func (s *Scheduler) Start() {
	s.inner.Start()
}

// Shutdown cancels running jobs and waits for them to return.
func (s *Scheduler) Shutdown() error {
	s.cancel()
	if err := s.inner.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return nil
}

func (s *Scheduler) run(job Job) {
	ctx, cancel := context.WithTimeout(s.ctx, job.Timeout)
	defer cancel()

	started := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.ErrorContext(ctx, "job panicked", "job", job.Name, "panic", fmt.Sprint(rec))
		}
	}()

	if err := job.Run(ctx); err != nil {
		s.logger.WarnContext(ctx, "job failed",
			"job", job.Name,
			"duration_ms", time.Since(started).Milliseconds(),
			"error", err,
		)
		return
	}
	s.logger.DebugContext(ctx, "job finished",
		"job", job.Name,
		"duration_ms", time.Since(started).Milliseconds(),
	)
}
