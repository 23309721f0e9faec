package notify

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"lotflow/internal/storage"
)

// Severity of an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Impact estimates the consequences of the condition behind an alert.
type Impact struct {
	Financial            float64
	TimeMinutes          int
	CustomerSatisfaction string
	WorkflowDisruption   string
}

// Alert is the payload consumed by the publisher.
type Alert struct {
	Title           string
	Description     string
	Category        string
	Severity        Severity
	Location        string
	EstimatedImpact Impact
}

// Notification is a stored alert with its computed priority.
type Notification struct {
	ID        string
	Alert     Alert
	Priority  int
	CreatedAt time.Time
}

// Publisher is the notification surface exposed to monitors and engines.
type Publisher interface {
	Publish(ctx context.Context, alert Alert) (*Notification, error)
	Recent(ctx context.Context, limit int) ([]Notification, error)
	Test(ctx context.Context) error
}

// PriorityFor computes a notification priority on a 1-10 scale: a base by
// severity, +2 for financial impact above 1000, +3 for major workflow
// disruption, capped at 10.
func PriorityFor(alert Alert) int {
	var priority int
	switch alert.Severity {
	case SeverityCritical:
		priority = 10
	case SeverityHigh:
		priority = 7
	case SeverityMedium:
		priority = 4
	default:
		priority = 2
	}
	if alert.EstimatedImpact.Financial > 1000 {
		priority += 2
	}
	if strings.EqualFold(strings.TrimSpace(alert.EstimatedImpact.WorkflowDisruption), "major") {
		priority += 3
	}
	if priority > 10 {
		priority = 10
	}
	return priority
}

func scanNotifications(rows *sql.Rows) ([]Notification, error) {
	var notifications []Notification
	for rows.Next() {
		var (
			n        Notification
			location sql.NullString
			sat      sql.NullString
			disrupt  sql.NullString
			severity string
			created  string
		)
		if err := rows.Scan(
			&n.ID,
			&n.Alert.Title,
			&n.Alert.Description,
			&n.Alert.Category,
			&severity,
			&location,
			&n.Priority,
			&n.Alert.EstimatedImpact.Financial,
			&n.Alert.EstimatedImpact.TimeMinutes,
			&sat,
			&disrupt,
			&created,
		); err != nil {
			return nil, err
		}
		n.Alert.Severity = Severity(severity)
		n.Alert.Location = location.String
		n.Alert.EstimatedImpact.CustomerSatisfaction = sat.String
		n.Alert.EstimatedImpact.WorkflowDisruption = disrupt.String
		if parsed, err := storage.ParseTime(created); err == nil {
			n.CreatedAt = parsed
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
