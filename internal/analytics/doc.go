// Package analytics builds point-in-time snapshots of lot health.
//
// A snapshot combines the stage distribution of tracked vehicles, average
// dwell time per stage reconstructed from the movement ledger, the count of
// vehicles needing attention, and bottleneck detection for stages holding
// well above their share of the lot. Dwell time uses real timestamps between
// consecutive ledger records rather than estimates.
package analytics
