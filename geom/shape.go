// Package geom implements the narrow-phase shape queries used by the
// collision system: static overlap, penetration and swept time of impact for
// circles and (optionally rotated) rectangles.
package geom

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/common"
)

var ErrUnknownShape = errors.New("geom: unknown shape kind")

// Kind tags the variant held by a Shape.
type Kind uint8

const (
	KindCircle Kind = iota
	KindRect

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindRect:
		return "rect"
	default:
		return "unknown"
	}
}

func (k Kind) Valid() bool {
	return k < kindCount
}

// Shape is a world-space circle or rectangle. Radius is only meaningful for
// circles; Half and Rotation only for rectangles.
type Shape struct {
	Kind     Kind
	Center   cp.Vector
	Radius   float64
	Half     cp.Vector
	Rotation float64
}

func NewCircle(center cp.Vector, radius float64) Shape {
	return Shape{Kind: KindCircle, Center: center, Radius: radius}
}

func NewRect(center, size cp.Vector, rotation float64) Shape {
	return Shape{
		Kind:     KindRect,
		Center:   center,
		Half:     cp.Vector{X: size.X / 2, Y: size.Y / 2},
		Rotation: rotation,
	}
}

// Translate returns a copy of s moved by d.
func (s Shape) Translate(d cp.Vector) Shape {
	s.Center = s.Center.Add(d)
	return s
}

// Degenerate reports whether the shape has no area.
func (s Shape) Degenerate() bool {
	switch s.Kind {
	case KindCircle:
		return !(s.Radius > 0)
	case KindRect:
		return !(s.Half.X > 0) || !(s.Half.Y > 0)
	default:
		return true
	}
}

// axisAligned returns the world half extents when the shape's bounding box is
// exact: circles, and rectangles rotated by a multiple of a quarter turn.
func (s Shape) axisAligned() (cp.Vector, bool) {
	if s.Kind == KindCircle {
		return cp.Vector{X: s.Radius, Y: s.Radius}, true
	}
	if s.Rotation == 0 {
		return s.Half, true
	}
	q := s.Rotation / (math.Pi / 2)
	n := math.Round(q)
	if math.Abs(q-n) > 1e-9 {
		return cp.Vector{}, false
	}
	if int64(n)%2 != 0 {
		return cp.Vector{X: s.Half.Y, Y: s.Half.X}, true
	}
	return s.Half, true
}

// Bounds returns the world-space axis-aligned bounding box.
func (s Shape) Bounds() (min, max cp.Vector) {
	if half, ok := s.axisAligned(); ok {
		return s.Center.Sub(half), s.Center.Add(half)
	}
	verts := s.Vertices()
	min, max = verts[0], verts[0]
	for _, v := range verts[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max
}

// Vertices returns the four corners of a rectangle in winding order. Circles
// return nil.
func (s Shape) Vertices() []cp.Vector {
	if s.Kind != KindRect {
		return nil
	}
	rot := cp.ForAngle(s.Rotation)
	local := [4]cp.Vector{
		{X: -s.Half.X, Y: -s.Half.Y},
		{X: s.Half.X, Y: -s.Half.Y},
		{X: s.Half.X, Y: s.Half.Y},
		{X: -s.Half.X, Y: s.Half.Y},
	}
	out := make([]cp.Vector, 4)
	for i, v := range local {
		out[i] = s.Center.Add(v.Rotate(rot))
	}
	return out
}

// axes returns the rectangle's two edge normals.
func (s Shape) axes() [2]cp.Vector {
	rot := cp.ForAngle(s.Rotation)
	return [2]cp.Vector{rot, rot.Perp()}
}

// toLocal maps a world point into the rectangle's frame, centered on it.
func (s Shape) toLocal(p cp.Vector) cp.Vector {
	d := p.Sub(s.Center)
	if s.Rotation == 0 {
		return d
	}
	return d.Unrotate(cp.ForAngle(s.Rotation))
}

// toWorldDir rotates a local direction back into world space.
func (s Shape) toWorldDir(v cp.Vector) cp.Vector {
	if s.Rotation == 0 {
		return v
	}
	return v.Rotate(cp.ForAngle(s.Rotation))
}

// FallbackNormal is returned wherever a direction is undefined, such as
// coincident centers.
var FallbackNormal = cp.Vector{X: 1, Y: 0}

func normalizeOr(v, fallback cp.Vector) cp.Vector {
	l := v.Length()
	if l <= common.Epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return fallback
	}
	return v.Mult(1 / l)
}

func isZero(v cp.Vector) bool {
	return v.X == 0 && v.Y == 0
}
