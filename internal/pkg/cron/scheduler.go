package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a background task executed on a fixed interval. The function
// receives the scheduler context and is expected to be idempotent, since
// restarts re-run it immediately.
type Job struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context) error
}

// Scheduler drives interval jobs on their own goroutines. It is started once
// from main and stopped during graceful shutdown.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

func (s *Scheduler) Register(name string, every time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{Name: name, Every: every, Run: run})
	slog.Info("scheduler job registered", "job", name, "every", every)
}

// Start launches one goroutine per registered job. Each job runs once right
// away, then on every tick.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(job)
	}
	slog.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop cancels the scheduler context and waits for running jobs to return.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) loop(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Every)
	defer ticker.Stop()

	s.execute(job)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(job)
		}
	}
}

func (s *Scheduler) execute(job Job) {
	start := time.Now()
	if err := job.Run(s.ctx); err != nil {
		slog.Error("scheduler job failed", "job", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("scheduler job completed", "job", job.Name, "duration", time.Since(start))
}

// RunOnce executes every registered job a single time with the given context.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Run(ctx); err != nil {
			slog.Error("scheduler job failed", "job", job.Name, "error", err)
		}
	}
}
