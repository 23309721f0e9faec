// Package workflow persists per-vehicle tracking entries and drives movement
// processing.
//
// The Store keeps one entry per vehicle with an append-only movement history
// in SQLite, assigning monotonic sequence numbers and paginating reads with an
// after-sequence cursor. The Engine validates incoming moves against the
// location registry, applies them to the store, mirrors each record into the
// movement ledger, fans placements out to the affected collections, and hands
// status changes to the cost recorder.
//
// MoveCar reports acceptance as a boolean; rejected moves are logged with the
// failing field and leave no trace in history. Side effects past the store
// write are best effort so a cost or collection failure never loses a
// recorded movement.
package workflow
