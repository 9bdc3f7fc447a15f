package component

// Patrol turns a body around at either end of a horizontal span.
type Patrol struct {
	MinX  float64
	MaxX  float64
	Speed float64
}

var PatrolComponent = NewComponent[Patrol]()
