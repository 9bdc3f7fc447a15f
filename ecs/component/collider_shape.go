package component

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/geom"
)

// ColliderShape is a collider's geometry in entity space. Circles use Radius;
// rectangles use Size, Origin and Rotation. Offset moves either shape away
// from the transform position.
type ColliderShape struct {
	Kind     geom.Kind
	Radius   float64
	Size     cp.Vector
	Origin   Origin
	Rotation float64
	Offset   cp.Vector
}

// NewCircleShape panics when radius is not positive.
func NewCircleShape(radius float64) ColliderShape {
	s := ColliderShape{Kind: geom.KindCircle, Radius: radius}
	s.MustValidate()
	return s
}

// NewRectShape panics when either side is not positive.
func NewRectShape(width, height float64, origin Origin) ColliderShape {
	s := ColliderShape{Kind: geom.KindRect, Size: cp.Vector{X: width, Y: height}, Origin: origin}
	s.MustValidate()
	return s
}

func (s ColliderShape) Validate() error {
	switch s.Kind {
	case geom.KindCircle:
		if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
			return fmt.Errorf("collider shape: circle radius must be positive, got %v", s.Radius)
		}
	case geom.KindRect:
		if !(s.Size.X > 0) || !(s.Size.Y > 0) || math.IsInf(s.Size.X, 0) || math.IsInf(s.Size.Y, 0) {
			return fmt.Errorf("collider shape: rect size must be positive, got %vx%v", s.Size.X, s.Size.Y)
		}
		if !s.Origin.Valid() {
			return fmt.Errorf("collider shape: invalid origin %d", uint8(s.Origin))
		}
	default:
		return fmt.Errorf("collider shape: %w: %d", geom.ErrUnknownShape, uint8(s.Kind))
	}
	return nil
}

func (s ColliderShape) MustValidate() {
	if err := s.Validate(); err != nil {
		panic(err)
	}
}

// World resolves the shape against a transform.
func (s ColliderShape) World(t Transform) geom.Shape {
	scale := t.ScaleOrOne()
	offset := cp.Vector{X: s.Offset.X * scale.X, Y: s.Offset.Y * scale.Y}
	if t.Rotation != 0 {
		offset = offset.Rotate(cp.ForAngle(t.Rotation))
	}
	anchor := t.Position.Add(offset)

	if s.Kind == geom.KindCircle {
		r := s.Radius * math.Max(math.Abs(scale.X), math.Abs(scale.Y))
		return geom.NewCircle(anchor, r)
	}

	size := cp.Vector{X: s.Size.X * math.Abs(scale.X), Y: s.Size.Y * math.Abs(scale.Y)}
	angle := t.Rotation + s.Rotation
	toCenter := s.Origin.CenterOffset(size)
	if angle != 0 {
		toCenter = toCenter.Rotate(cp.ForAngle(angle))
	}
	return geom.NewRect(anchor.Add(toCenter), size, angle)
}
