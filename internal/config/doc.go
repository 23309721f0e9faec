// Package config loads, normalizes, and validates Lotflow configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and normalizes the location catalog so
// identifiers and types arrive lowercased. The Config type centralizes every
// knob the daemon and CLI need, from storage directories to polling intervals
// and the digest cron schedule.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
