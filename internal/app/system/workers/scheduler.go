// internal/app/system/workers/scheduler.go
package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSpec runs maintenance once a minute.
const DefaultSpec = "@every 1m"

// JobFunc performs one maintenance pass and reports how many items it removed.
type JobFunc func(ctx context.Context) (int64, error)

type job struct {
	name string
	run  JobFunc
}

// Scheduler runs maintenance jobs on a cron spec. Overlapping runs of the
// same job are skipped and panics are recovered.
type Scheduler struct {
	cron    *cron.Cron
	log     *zap.Logger
	spec    string
	timeout time.Duration

	mu      sync.Mutex
	jobs    []job
	started bool
}

// NewScheduler creates a scheduler firing on spec (DefaultSpec if empty).
func NewScheduler(spec string, logger *zap.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	cl := cronLogger{s: logger.Sugar()}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:     logger,
		spec:    spec,
		timeout: 30 * time.Second,
	}
}

// Add registers a job. Jobs must be added before Start.
func (s *Scheduler) Add(name string, run JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job{name: name, run: run})
}

// Jobs returns the registered job names in order.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.jobs))
	for i, j := range s.jobs {
		names[i] = j.name
	}
	return names
}

// Start validates the spec, registers every job, and starts the cron loop.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	for _, j := range s.jobs {
		j := j
		if _, err := s.cron.AddFunc(s.spec, func() { s.runJob(context.Background(), j) }); err != nil {
			return fmt.Errorf("schedule %s: %w", j.name, err)
		}
	}
	s.cron.Start()
	s.started = true
	s.log.Info("maintenance scheduler started",
		zap.String("spec", s.spec),
		zap.Int("jobs", len(s.jobs)))
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	started := s.started
	s.started = false
	s.mu.Unlock()
	if !started {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info("maintenance scheduler stopped")
}

// RunOnce runs every job immediately, in registration order.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]job(nil), s.jobs...)
	s.mu.Unlock()
	for _, j := range jobs {
		s.runJob(ctx, j)
	}
}

func (s *Scheduler) runJob(parent context.Context, j job) {
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	n, err := j.run(ctx)
	if err != nil {
		s.log.Error("maintenance job failed", zap.String("job", j.name), zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("maintenance job removed items", zap.String("job", j.name), zap.Int64("count", n))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
