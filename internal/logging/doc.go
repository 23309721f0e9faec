// Package logging assembles the structured slog loggers used across lotflow
// components.
//
// It centralizes level and output plumbing and exposes typed attribute
// helpers so engine code tags log lines with vehicle IDs, locations, and
// workflow stages using consistent field names. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
