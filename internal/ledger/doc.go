// Package ledger keeps the flat, append-only log of every movement across the
// lot.
//
// Unlike the per-vehicle history in the workflow store, the ledger is ordered
// by timestamp across all vehicles, which is what dwell-time analytics needs
// to reconstruct how long each vehicle sat in each stage.
package ledger
