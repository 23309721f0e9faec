// Package daemon coordinates the long-running Lotflow process.
//
// Services is the composition root: it opens the database and wires the
// location registry, workflow store and engine, ledger, collections, costs,
// attention, analytics, and the notification publisher. Both the daemon and
// one-shot CLI commands build the same Services so behavior never diverges
// between the two entry points.
//
// The Daemon itself runs preflight checks, holds a flock-based lock to
// prevent multiple instances, and owns the lifecycle of the monitor runner
// and the digest scheduler. Keep orchestration here; the checks and sweeps
// themselves live in their own packages.
package daemon
