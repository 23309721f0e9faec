package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"lotflow/internal/logging"
)

// Monitor is one named polling loop.
type Monitor struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

// Runner owns monitor goroutines and their shutdown.
type Runner struct {
	monitors []Monitor
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewRunner builds a runner for the provided monitors.
func NewRunner(logger *slog.Logger, monitors ...Monitor) *Runner {
	return &Runner{
		monitors: monitors,
		logger:   logging.NewComponentLogger(logger, "monitor"),
	}
}

// Start begins background polling. Monitors poll sequentially within their
// own loop: a slow scan delays the next poll rather than overlapping it.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return errors.New("monitors already running")
	}
	if len(r.monitors) == 0 {
		return errors.New("no monitors configured")
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true
	r.wg.Add(len(r.monitors))

	for _, mon := range r.monitors {
		go r.runLoop(runCtx, mon)
	}
	return nil
}

// Stop terminates background polling and waits for completion.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	cancel := r.cancel
	r.running = false
	r.cancel = nil
	r.mu.Unlock()

	cancel()
	r.wg.Wait()
}

// Running reports whether the runner has active monitors.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Runner) runLoop(ctx context.Context, mon Monitor) {
	defer r.wg.Done()

	logger := r.logger.With(logging.String(logging.FieldMonitor, mon.Name))
	logger.Info("monitor started", logging.Duration("interval", mon.Interval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("monitor stopped")
			return
		default:
		}

		mon.Run(ctx)

		select {
		case <-ctx.Done():
			logger.Info("monitor stopped")
			return
		case <-time.After(mon.Interval):
		}
	}
}
