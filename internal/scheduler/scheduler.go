// Package scheduler runs the periodic maintenance and publishing jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/heartmarshall/ewasl-backend/pkg/ctxutil"
)

// DefaultJobTimeout bounds a single job run.
const DefaultJobTimeout = 5 * time.Minute

// Job is a named unit of periodic work.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler drives Jobs on their cron specs. A run that is still going when
// its next tick fires is skipped.
type Scheduler struct {
	cron    *cron.Cron
	log     *slog.Logger
	timeout time.Duration

	mu   sync.Mutex
	base context.Context
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithJobTimeout overrides DefaultJobTimeout.
func WithJobTimeout(d time.Duration) Option {
	return func(s *Scheduler) { s.timeout = d }
}

// New registers jobs. An invalid spec is an error.
func New(logger *slog.Logger, jobs []Job, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		log:     logger.With("component", "scheduler"),
		timeout: DefaultJobTimeout,
		base:    context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}

	cl := cronLogger{log: s.log}
	s.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.Spec, func() { s.runJob(job) }); err != nil {
			return nil, fmt.Errorf("scheduler: job %q spec %q: %w", job.Name, job.Spec, err)
		}
		s.log.Info("job registered", slog.String("job", job.Name), slog.String("spec", job.Spec))
	}
	return s, nil
}

// Run starts the cron loop and blocks until ctx is cancelled, then waits
// for in-flight jobs to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.base = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.log.Info("scheduler started", slog.Int("jobs", len(s.cron.Entries())))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) runJob(job Job) {
	s.mu.Lock()
	base := s.base
	s.mu.Unlock()

	// jobs that were running at shutdown still get to finish their write
	ctx, cancel := context.WithTimeout(context.WithoutCancel(base), s.timeout)
	defer cancel()
	ctx = ctxutil.WithJob(ctx, job.Name)

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.log.ErrorContext(ctx, "job failed",
			slog.String("job", job.Name),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return
	}
	s.log.DebugContext(ctx, "job finished",
		slog.String("job", job.Name),
		slog.Duration("duration", time.Since(start)),
	)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
