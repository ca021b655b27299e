package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"alphahunter/internal/ports"
)

// Interval runs named jobs on independent tickers. Start fires every job once
// immediately (cold-start catch-up), then on each tick; a slow job never
// blocks the others. There is no persisted watermark, so a restart re-fires
// every job through the same cold-start path.
type Interval struct {
	logger *slog.Logger

	mu      sync.Mutex
	jobs    []intervalJob
	runCtx  context.Context
	stop    chan struct{}
	started bool

	wg sync.WaitGroup
}

type intervalJob struct {
	name     string
	interval time.Duration
	run      func(context.Context)
}

var _ ports.Scheduler = (*Interval)(nil)

// NewInterval builds an empty scheduler.
func NewInterval(log *slog.Logger) *Interval {
	return &Interval{logger: log}
}

// Every registers a named job on its interval. Jobs registered after Start
// begin running immediately.
func (s *Interval) Every(name string, interval time.Duration, job func(context.Context)) {
	if job == nil || interval <= 0 {
		return
	}

	registered := intervalJob{name: name, interval: interval, run: job}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		s.wg.Add(1)
		go s.loop(s.runCtx, registered)
		return
	}
	s.jobs = append(s.jobs, registered)
}

// After schedules one deferred execution. The job is dropped if the
// scheduler stops or the run context ends before the delay elapses.
func (s *Interval) After(name string, delay time.Duration, job func(context.Context)) {
	if job == nil {
		return
	}

	s.mu.Lock()
	ctx := s.runCtx
	stop := s.stop
	s.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			s.debug("deferred job firing", "job", name, "delay", delay)
			job(ctx)
		case <-ctx.Done():
		case <-stop:
		}
	}()
}

// Start launches one goroutine per registered job. Each fires immediately,
// then on its ticker until Stop or context cancellation.
func (s *Interval) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already started")
	}
	s.started = true
	s.runCtx = ctx
	s.stop = make(chan struct{})
	jobs := make([]intervalJob, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	for _, job := range jobs {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}

	return nil
}

// Stop halts all job loops and waits for in-flight runs to return.
func (s *Interval) Stop() {
	s.mu.Lock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Interval) loop(ctx context.Context, job intervalJob) {
	defer s.wg.Done()

	s.mu.Lock()
	stop := s.stop
	s.mu.Unlock()

	s.debug("job scheduled", "job", job.name, "interval", job.interval)
	job.run(ctx)

	ticker := time.NewTicker(job.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			job.run(ctx)
		case <-ctx.Done():
			s.debug("job stopped", "job", job.name, "reason", "context")
			return
		case <-stop:
			s.debug("job stopped", "job", job.name, "reason", "shutdown")
			return
		}
	}
}

func (s *Interval) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
