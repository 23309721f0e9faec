package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"lotflow/internal/analytics"
	"lotflow/internal/logging"
	"lotflow/internal/notify"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Digest publishes a scheduled summary of the lot instead of polling at a
// fixed interval, so it runs outside the Runner.
type Digest struct {
	sched     cron.Schedule
	engine    *analytics.Engine
	publisher notify.Publisher
	logger    *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewDigest parses a five-field cron expression and builds the digest loop.
func NewDigest(schedule string, engine *analytics.Engine, publisher notify.Publisher, logger *slog.Logger) (*Digest, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return nil, fmt.Errorf("parse digest schedule %q: %w", schedule, err)
	}
	return &Digest{
		sched:     sched,
		engine:    engine,
		publisher: publisher,
		logger:    logging.NewComponentLogger(logger, "digest"),
	}, nil
}

// Start begins the schedule loop.
func (d *Digest) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return fmt.Errorf("digest already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.running = true
	d.wg.Add(1)
	go d.loop(runCtx)
	return nil
}

// Stop terminates the schedule loop and waits for it.
func (d *Digest) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	cancel := d.cancel
	d.running = false
	d.cancel = nil
	d.mu.Unlock()

	cancel()
	d.wg.Wait()
}

func (d *Digest) loop(ctx context.Context) {
	defer d.wg.Done()

	for {
		next := d.sched.Next(time.Now())
		d.logger.Info("digest scheduled", logging.String("next_run", next.Format(time.RFC3339)))

		select {
		case <-ctx.Done():
			d.logger.Info("digest stopped")
			return
		case <-time.After(time.Until(next)):
		}

		d.publish(ctx)
	}
}

func (d *Digest) publish(ctx context.Context) {
	snapshot := d.engine.Snapshot(ctx)

	description := fmt.Sprintf(
		"%d vehicles on lot, %d need attention",
		snapshot.TotalCars,
		snapshot.CarsNeedingAttention,
	)
	if flagged := stageList(snapshot.Bottlenecks); flagged != "" {
		description += fmt.Sprintf("; bottlenecks: %s", flagged)
	}

	alert := notify.Alert{
		Title:       "Daily lot digest",
		Description: description,
		Category:    "digest",
		Severity:    notify.SeverityLow,
	}
	if _, err := d.publisher.Publish(ctx, alert); err != nil {
		d.logger.Error("digest publish failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "digest_publish_failed"),
		)
		return
	}
	d.logger.Info("digest published", logging.Int("total_cars", snapshot.TotalCars))
}
