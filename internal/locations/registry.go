package locations

import (
	"sort"
	"strings"

	"lotflow/internal/config"
	"lotflow/internal/faults"
)

// Type categorizes a physical or process location.
type Type string

const (
	TypeShowroom  Type = "showroom"
	TypeGarage    Type = "garage"
	TypeInventory Type = "inventory"
	TypeFloor     Type = "floor"
	TypeLot       Type = "lot"
)

// Location describes one known location. Capacity of zero means unbounded.
type Location struct {
	ID       string
	Name     string
	Type     Type
	Capacity int
}

// Registry is the immutable location catalog.
type Registry struct {
	byID  map[string]Location
	order []string
}

var builtinCatalog = []Location{
	{ID: "new_arrivals", Name: "New Arrivals", Type: TypeLot},
	{ID: "pdi_bay", Name: "PDI Bay", Type: TypeGarage, Capacity: 4},
	{ID: "inventory_garage", Name: "Inventory Garage", Type: TypeInventory},
	{ID: "main_inventory", Name: "Main Inventory", Type: TypeInventory},
	{ID: "showroom_floor_1", Name: "Showroom Floor 1", Type: TypeFloor, Capacity: 12},
	{ID: "showroom_floor_2", Name: "Showroom Floor 2", Type: TypeFloor, Capacity: 12},
	{ID: "repair_garage", Name: "Repair Garage", Type: TypeGarage, Capacity: 6},
	{ID: "delivery_bay", Name: "Delivery Bay", Type: TypeGarage, Capacity: 2},
	{ID: "sold_lot", Name: "Sold Lot", Type: TypeLot},
}

// NewRegistry builds the catalog from built-ins plus config entries.
func NewRegistry(cfg *config.Config) *Registry {
	reg := &Registry{byID: make(map[string]Location, len(builtinCatalog))}
	for _, loc := range builtinCatalog {
		reg.add(loc)
	}
	if cfg != nil {
		for _, entry := range cfg.Locations.Catalog {
			reg.add(Location{
				ID:       entry.ID,
				Name:     entry.Name,
				Type:     Type(entry.Type),
				Capacity: entry.Capacity,
			})
		}
	}
	sort.Strings(reg.order)
	return reg
}

func (r *Registry) add(loc Location) {
	id := strings.ToLower(strings.TrimSpace(loc.ID))
	if id == "" {
		return
	}
	loc.ID = id
	if loc.Name == "" {
		loc.Name = id
	}
	if _, exists := r.byID[id]; !exists {
		r.order = append(r.order, id)
	}
	r.byID[id] = loc
}

// List returns all known locations ordered by id.
func (r *Registry) List() []Location {
	out := make([]Location, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Get looks up a location by id.
func (r *Registry) Get(id string) (Location, error) {
	loc, ok := r.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Location{}, faults.Wrap(faults.ErrNotFound, "locations", "get", id, nil)
	}
	return loc, nil
}

// Known reports whether a location id exists in the catalog.
func (r *Registry) Known(id string) bool {
	_, ok := r.byID[strings.ToLower(strings.TrimSpace(id))]
	return ok
}
