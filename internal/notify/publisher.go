package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"lotflow/internal/config"
	"lotflow/internal/logging"
	"lotflow/internal/storage"
)

const userAgent = "lotflow/0.1.0"

// NewPublisher builds the notification publisher. Alerts are always persisted;
// push delivery over ntfy is added when a topic is configured.
func NewPublisher(cfg *config.Config, db *storage.DB, logger *slog.Logger) Publisher {
	p := &publisher{
		db:     db,
		logger: logging.NewComponentLogger(logger, "notify"),
		now:    time.Now,
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic != "" {
		timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		p.push = &ntfyPusher{
			endpoint: topic,
			client:   &http.Client{Timeout: timeout},
		}
	}
	return p
}

type publisher struct {
	db     *storage.DB
	push   *ntfyPusher
	logger *slog.Logger
	now    func() time.Time
}

// Publish scores, persists, and (when configured) pushes an alert. Push
// failures are logged but do not fail the publish: the stored notification is
// the durable artifact.
func (p *publisher) Publish(ctx context.Context, alert Alert) (*Notification, error) {
	notification := &Notification{
		ID:        uuid.NewString(),
		Alert:     alert,
		Priority:  PriorityFor(alert),
		CreatedAt: p.now().UTC(),
	}

	_, err := p.db.Handle().ExecContext(
		ctx,
		`INSERT INTO notifications (
            id, title, description, category, severity, location, priority,
            financial, time_minutes, customer_satisfaction, workflow_disruption, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		notification.ID,
		alert.Title,
		alert.Description,
		alert.Category,
		string(alert.Severity),
		storage.NullableString(alert.Location),
		notification.Priority,
		alert.EstimatedImpact.Financial,
		alert.EstimatedImpact.TimeMinutes,
		storage.NullableString(alert.EstimatedImpact.CustomerSatisfaction),
		storage.NullableString(alert.EstimatedImpact.WorkflowDisruption),
		storage.FormatTime(notification.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}

	if p.push != nil {
		if pushErr := p.push.send(ctx, notification); pushErr != nil {
			p.logger.Warn("ntfy push failed; notification persisted",
				logging.Error(pushErr),
				logging.String("title", alert.Title),
			)
		}
	}
	return notification, nil
}

// Recent returns the newest notifications, most recent first.
func (p *publisher) Recent(ctx context.Context, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := p.db.Handle().QueryContext(
		ctx,
		`SELECT id, title, description, category, severity, location, priority,
                financial, time_minutes, customer_satisfaction, workflow_disruption, created_at
         FROM notifications ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()
	return scanNotifications(rows)
}

// Test publishes a low-severity test alert.
func (p *publisher) Test(ctx context.Context) error {
	_, err := p.Publish(ctx, Alert{
		Title:       "lotflow - Test",
		Description: "Notification system test",
		Category:    "test",
		Severity:    SeverityLow,
	})
	return err
}

type ntfyPusher struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyPusher) send(ctx context.Context, notification *Notification) error {
	if n == nil || n.client == nil {
		return nil
	}

	message := notification.Alert.Description
	if loc := strings.TrimSpace(notification.Alert.Location); loc != "" {
		message = fmt.Sprintf("%s\nLocation: %s", message, loc)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if notification.Alert.Title != "" {
		req.Header.Set("Title", notification.Alert.Title)
	}
	req.Header.Set("Tags", "lotflow,"+notification.Alert.Category)
	if priority := ntfyPriority(notification.Priority); priority != "" {
		req.Header.Set("Priority", priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func ntfyPriority(priority int) string {
	switch {
	case priority >= 9:
		return "urgent"
	case priority >= 7:
		return "high"
	case priority <= 3:
		return "low"
	default:
		return ""
	}
}
