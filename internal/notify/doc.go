// Package notify scores, stores, and delivers operational alerts.
//
// Severity sets a base priority which impact details can raise: meaningful
// financial exposure and major workflow disruption each bump the score, capped
// at ten. Alerts are always persisted to notification history; push delivery
// to ntfy happens only when a topic is configured and degrades to a logged
// warning on failure.
//
// All callers depend on the small Publisher interface so tests can capture
// alerts without HTTP glue.
package notify
