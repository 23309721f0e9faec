package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lotflow/internal/analytics"
	"lotflow/internal/attention"
	"lotflow/internal/logging"
	"lotflow/internal/notify"
	"lotflow/internal/stage"
)

// NewAttentionSweep polls the attention list and publishes an alert when the
// number of urgent items grows. The previous count is remembered so a stable
// backlog does not re-alert every poll.
func NewAttentionSweep(engine *attention.Engine, publisher notify.Publisher, interval time.Duration, logger *slog.Logger) Monitor {
	log := logging.NewComponentLogger(logger, "attention-sweep")
	lastUrgent := 0

	return Monitor{
		Name:     "attention_sweep",
		Interval: interval,
		Run: func(ctx context.Context) {
			items := engine.List(ctx)
			urgent := 0
			for _, item := range items {
				if item.Priority == attention.PriorityUrgent {
					urgent++
				}
			}
			if urgent > lastUrgent {
				disruption := "moderate"
				if urgent > 3 {
					disruption = "major"
				}
				alert := notify.Alert{
					Title:       "Vehicles need urgent attention",
					Description: fmt.Sprintf("%d vehicles are classified urgent (%d total attention items)", urgent, len(items)),
					Category:    "attention",
					Severity:    notify.SeverityHigh,
					EstimatedImpact: notify.Impact{
						TimeMinutes:        urgent * 30,
						WorkflowDisruption: disruption,
					},
				}
				if _, err := publisher.Publish(ctx, alert); err != nil {
					log.Error("attention alert failed",
						logging.Error(err),
						logging.String(logging.FieldEventType, "alert_publish_failed"),
					)
				}
			}
			lastUrgent = urgent
		},
	}
}

// NewBottleneckWatch polls the analytics snapshot and publishes an alert when
// the flagged bottleneck set changes to something non-empty.
func NewBottleneckWatch(engine *analytics.Engine, publisher notify.Publisher, interval time.Duration, logger *slog.Logger) Monitor {
	log := logging.NewComponentLogger(logger, "bottleneck-watch")
	lastFlagged := ""

	return Monitor{
		Name:     "bottleneck_watch",
		Interval: interval,
		Run: func(ctx context.Context) {
			snapshot := engine.Snapshot(ctx)
			flagged := stageList(snapshot.Bottlenecks)
			if flagged != "" && flagged != lastFlagged {
				alert := notify.Alert{
					Title:       "Workflow bottleneck detected",
					Description: fmt.Sprintf("Stages over capacity threshold: %s", flagged),
					Category:    "bottleneck",
					Severity:    notify.SeverityMedium,
					EstimatedImpact: notify.Impact{
						TimeMinutes:        len(snapshot.Bottlenecks) * 60,
						WorkflowDisruption: "moderate",
					},
				}
				if _, err := publisher.Publish(ctx, alert); err != nil {
					log.Error("bottleneck alert failed",
						logging.Error(err),
						logging.String(logging.FieldEventType, "alert_publish_failed"),
					)
				}
			}
			lastFlagged = flagged
		},
	}
}

func stageList(stages []stage.Stage) string {
	if len(stages) == 0 {
		return ""
	}
	names := make([]string, 0, len(stages))
	for _, st := range stages {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}
