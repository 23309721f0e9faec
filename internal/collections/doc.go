// Package collections stores named vehicle groupings such as the garage
// roster, showroom floors, and inventory zones.
//
// Each collection is persisted as a JSON document keyed by name. Placement
// upserts only touch location, status, and the update timestamp so enrichment
// fields recorded elsewhere (battery level, assignments, service dates)
// survive routine moves. KeysForLocation maps a location to the collections a
// vehicle there belongs to, including the inventory garage overlap.
package collections
