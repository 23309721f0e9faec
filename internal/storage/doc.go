// Package storage owns the SQLite database used by every persistence layer.
//
// Open creates the data directory, applies embedded schema migrations in
// order, and returns a DB handle shared by the workflow store, the movement
// ledger, collections, costs, and notification history. Schema changes add a
// numbered migration file; already-applied versions are skipped on reopen.
package storage
