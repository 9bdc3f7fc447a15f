package component

import "github.com/jakecoffman/cp"

// WorldBounds is the playable rectangle the integrator keeps bodies inside.
type WorldBounds struct {
	Min      cp.Vector
	Max      cp.Vector
	Behavior BoundaryBehavior
}

var WorldBoundsComponent = NewComponent[WorldBounds]()
