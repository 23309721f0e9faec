// Package preflight provides readiness checks for the directories and
// services Lotflow depends on.
//
// These checks run in two contexts:
//   - The daemon calls RunAll at startup and refuses to start if any check
//     fails, so a missing data directory surfaces immediately instead of as
//     a runtime write error.
//   - The CLI "lotflow status" command runs the same checks to display
//     environment health.
//
// The ntfy check is gated on a configured topic; unset features are skipped.
package preflight
