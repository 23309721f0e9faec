package preflight

import (
	"context"

	"lotflow/internal/config"
	"lotflow/internal/storage"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// NtfyTester is the notification health probe. notify.Publisher satisfies it.
type NtfyTester interface {
	Test(ctx context.Context) error
}

// RunAll executes all applicable preflight checks for the given config.
// The database check only runs when a store is supplied, and the ntfy check
// only when a topic is configured.
func RunAll(ctx context.Context, cfg *config.Config, db *storage.DB, ntfy NtfyTester) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	if db != nil {
		results = append(results, CheckDatabase(ctx, db))
	}

	if cfg.Notifications.NtfyTopic != "" && ntfy != nil {
		results = append(results, CheckNtfy(ctx, ntfy))
	}

	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
