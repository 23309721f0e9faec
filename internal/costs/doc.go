// Package costs attributes parts and tool usage to status transitions.
//
// Prices are fixed-point decimals resolved from a keyword price list, so
// "front brake pads" bills as brake work regardless of phrasing. Every status
// change gets a cost entry even when nothing was consumed; a zero-amount row
// still records that the transition happened.
package costs
