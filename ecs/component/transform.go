package component

import "github.com/jakecoffman/cp"

type Transform struct {
	Position cp.Vector
	Rotation float64
	Scale    cp.Vector
}

func NewTransform(x, y float64) *Transform {
	return &Transform{Position: cp.Vector{X: x, Y: y}, Scale: cp.Vector{X: 1, Y: 1}}
}

// ScaleOrOne treats a zero scale component as 1.
func (t Transform) ScaleOrOne() cp.Vector {
	s := t.Scale
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	return s
}

var TransformComponent = NewComponent[Transform]()
