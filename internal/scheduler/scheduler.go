// Package scheduler provides recurring indexing triggers decoupled from any
// request path. Each trigger owns one job and one interval and can be
// started, stopped, and inspected independently.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is the work a trigger runs on each tick.
type Job func(ctx context.Context) error

// Status is a point-in-time snapshot of a trigger.
type Status struct {
	Name      string        `json:"name"`
	Interval  time.Duration `json:"interval"`
	Active    bool          `json:"active"`
	Running   bool          `json:"running"`
	LastRun   time.Time     `json:"last_run,omitzero"`
	LastError string        `json:"last_error,omitempty"`
}

// Trigger fires a job on a fixed interval. A tick that arrives while the
// previous run is still in flight is skipped, never interleaved, so two runs
// of the same trigger can never write the same chunk concurrently.
type Trigger struct {
	name     string
	interval time.Duration
	job      Job
	logger   *zap.Logger

	mu        sync.Mutex
	active    bool
	running   bool
	lastRun   time.Time
	lastError string
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// New creates a trigger. It does not start ticking until Start is called.
func New(name string, interval time.Duration, job Job, logger *zap.Logger) *Trigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Trigger{
		name:     name,
		interval: interval,
		job:      job,
		logger:   logger.With(zap.String("trigger", name)),
	}
}

// Start begins the tick loop. Starting an active trigger is a no-op.
func (t *Trigger) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		return
	}
	t.active = true
	t.stopCh = make(chan struct{})

	t.wg.Add(1)
	go t.loop(t.stopCh)
	t.logger.Info("trigger started", zap.Duration("interval", t.interval))
}

// Stop halts the tick loop and waits for an in-flight run to finish.
// Stopping an inactive trigger is a no-op.
func (t *Trigger) Stop() {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return
	}
	t.active = false
	close(t.stopCh)
	t.mu.Unlock()

	t.wg.Wait()
	t.logger.Info("trigger stopped")
}

// Active reports whether the trigger is currently scheduled.
func (t *Trigger) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Status returns a snapshot of the trigger state.
func (t *Trigger) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{
		Name:      t.name,
		Interval:  t.interval,
		Active:    t.active,
		Running:   t.running,
		LastRun:   t.lastRun,
		LastError: t.lastError,
	}
}

func (t *Trigger) loop(stopCh chan struct{}) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			t.tick()
		}
	}
}

// tick launches the job unless the previous run has not finished yet.
func (t *Trigger) tick() {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		t.logger.Warn("skipping tick, previous run still in progress")
		return
	}
	t.running = true
	t.lastRun = time.Now()
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		err := t.job(context.Background())

		t.mu.Lock()
		t.running = false
		if err != nil {
			t.lastError = err.Error()
		} else {
			t.lastError = ""
		}
		t.mu.Unlock()

		if err != nil {
			t.logger.Warn("trigger run failed", zap.Error(err))
		}
	}()
}
