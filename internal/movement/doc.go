// Package movement defines the movement record shared by the workflow store
// and the ledger, plus the closed set of movement reasons.
package movement
