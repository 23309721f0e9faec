package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"lotflow/internal/config"
	"lotflow/internal/logging"
	"lotflow/internal/monitor"
	"lotflow/internal/preflight"
)

// Daemon owns the background monitors and enforces single-instance execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	services *Services
	runner   *monitor.Runner
	digest   *monitor.Digest

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running       bool
	TotalVehicles int
	LedgerRecords int
	DatabasePath  string
	LockFilePath  string
}

// New constructs a daemon around already-wired services.
func New(cfg *config.Config, services *Services, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || services == nil || logger == nil {
		return nil, errors.New("daemon requires config, services, and logger")
	}

	var monitors []monitor.Monitor
	if cfg.Notifications.Attention {
		monitors = append(monitors, monitor.NewAttentionSweep(
			services.Attention,
			services.Publisher,
			time.Duration(cfg.Workflow.AttentionPollInterval)*time.Second,
			logger,
		))
	}
	if cfg.Notifications.Bottlenecks {
		monitors = append(monitors, monitor.NewBottleneckWatch(
			services.Analytics,
			services.Publisher,
			time.Duration(cfg.Workflow.BottleneckPollInterval)*time.Second,
			logger,
		))
	}

	var runner *monitor.Runner
	if len(monitors) > 0 {
		runner = monitor.NewRunner(logger, monitors...)
	}

	var digest *monitor.Digest
	if cfg.Notifications.Digest {
		var err error
		digest, err = monitor.NewDigest(cfg.Workflow.DigestSchedule, services.Analytics, services.Publisher, logger)
		if err != nil {
			return nil, err
		}
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "lotflowd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		services: services,
		runner:   runner,
		digest:   digest,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start runs preflight checks, acquires the daemon lock, and launches the
// monitors.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	results := preflight.RunAll(ctx, d.cfg, d.services.DB, d.services.Publisher)
	if !preflight.Passed(results) {
		var failed []string
		for _, result := range results {
			if !result.Passed {
				failed = append(failed, fmt.Sprintf("%s: %s", result.Name, result.Detail))
			}
		}
		return fmt.Errorf("preflight failed: %s", strings.Join(failed, "; "))
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another lotflow daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	if d.runner != nil {
		if err := d.runner.Start(runCtx); err != nil {
			d.releaseOnStartFailure()
			return fmt.Errorf("start monitors: %w", err)
		}
	}
	if d.digest != nil {
		if err := d.digest.Start(runCtx); err != nil {
			if d.runner != nil {
				d.runner.Stop()
			}
			d.releaseOnStartFailure()
			return fmt.Errorf("start digest: %w", err)
		}
	}

	d.running.Store(true)
	d.logger.Info("lotflow daemon started", logging.String("lock", d.lockPath))
	return nil
}

func (d *Daemon) releaseOnStartFailure() {
	_ = d.lock.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Stop stops background processing and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.runner != nil {
		d.runner.Stop()
	}
	if d.digest != nil {
		d.digest.Stop()
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("lotflow daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return d.services.Close()
}

// Running reports whether Start has completed without a matching Stop.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Status summarizes the daemon and its store.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		DatabasePath: d.services.DB.Path(),
		LockFilePath: d.lockPath,
	}
	if total, err := d.services.Store.CountEntries(ctx); err == nil {
		status.TotalVehicles = total
	}
	if count, err := d.services.Ledger.Count(ctx); err == nil {
		status.LedgerRecords = count
	}
	return status
}
