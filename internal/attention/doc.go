// Package attention surfaces vehicles that need human intervention.
//
// The Engine sweeps the garage, showroom, and inventory collections through
// per-area rule sets: parts holds, low EV batteries, and repair queues in the
// garage; incomplete pre-delivery inspection and unpaid customs on the
// floors; overdue servicing in inventory. Results are sorted most urgent
// first so the head of the list is always the next thing to deal with.
//
// Readiness projects a single vehicle's sale readiness as a score out of one
// hundred with itemized deductions, plus a delivery outlook derived from the
// expected delivery date.
package attention
