// Package faults defines the error markers shared across Lotflow packages so
// callers can classify failures with errors.Is without string matching.
package faults
