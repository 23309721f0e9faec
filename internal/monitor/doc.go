// Package monitor runs the daemon's periodic background checks.
//
// The Runner drives fixed-interval monitors (the attention sweep and the
// bottleneck watch) on independent goroutines with a shared cancel. Both
// watchers carry state between passes so a standing backlog alerts once
// rather than on every tick. The daily digest follows a cron schedule instead
// of a fixed interval and therefore owns its own loop.
package monitor
