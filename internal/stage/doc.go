// Package stage classifies a vehicle's location and status into a workflow
// stage.
//
// Classification is a pure function: the same location and status pair always
// maps to the same stage, and nothing here touches storage. Callers derive the
// stage on demand instead of persisting it, which keeps historical records
// honest when classification rules evolve.
package stage
