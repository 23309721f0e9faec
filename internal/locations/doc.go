// Package locations maintains the registry of physical lot locations.
//
// A Registry starts from the built-in catalog (garage bays, showroom floors,
// inventory zones, transport staging) and merges user-defined entries from the
// configuration, letting a dealership rename or extend the lot without code
// changes. Lookups are case-insensitive and unknown identifiers surface a
// not-found fault so movement validation can reject typos early.
package locations
