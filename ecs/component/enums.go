package component

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

// CollisionMode selects how a collider takes part in the collision pass.
type CollisionMode uint8

const (
	// CollisionModeNone disables detection without disabling the collider.
	CollisionModeNone CollisionMode = iota
	// CollisionModeOverlap detects contacts but never corrects them.
	CollisionModeOverlap
	// CollisionModeDiscrete resolves penetration at the current position.
	CollisionModeDiscrete
	// CollisionModeContinuous sweeps the tick's displacement first.
	CollisionModeContinuous
)

var collisionModeNames = []string{"none", "overlap", "discrete", "continuous"}

func (m CollisionMode) Valid() bool { return int(m) < len(collisionModeNames) }

func (m CollisionMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("CollisionMode(%d)", uint8(m))
	}
	return collisionModeNames[m]
}

func (m CollisionMode) MarshalYAML() (any, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid collision mode %d", uint8(m))
	}
	return m.String(), nil
}

func (m *CollisionMode) UnmarshalYAML(value *yaml.Node) error {
	i, err := decodeEnumNode(value, "collision mode", collisionModeNames)
	if err != nil {
		return err
	}
	*m = CollisionMode(i)
	return nil
}

// CollisionResponse shapes the velocity left over after a swept impact.
type CollisionResponse uint8

const (
	// ResponseSlide keeps the motion along the contact surface.
	ResponseSlide CollisionResponse = iota
	// ResponseBounce reflects the motion about the contact normal.
	ResponseBounce
	// ResponsePush keeps the full remaining speed, redirected along the surface.
	ResponsePush
	// ResponseStop discards the remaining motion.
	ResponseStop
)

var collisionResponseNames = []string{"slide", "bounce", "push", "stop"}

func (r CollisionResponse) Valid() bool { return int(r) < len(collisionResponseNames) }

func (r CollisionResponse) String() string {
	if !r.Valid() {
		return fmt.Sprintf("CollisionResponse(%d)", uint8(r))
	}
	return collisionResponseNames[r]
}

func (r CollisionResponse) MarshalYAML() (any, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid collision response %d", uint8(r))
	}
	return r.String(), nil
}

func (r *CollisionResponse) UnmarshalYAML(value *yaml.Node) error {
	i, err := decodeEnumNode(value, "collision response", collisionResponseNames)
	if err != nil {
		return err
	}
	*r = CollisionResponse(i)
	return nil
}

// Origin is the point of a rectangle that sits on the transform position.
type Origin uint8

const (
	OriginCenter Origin = iota
	OriginTopLeft
	OriginTop
	OriginTopRight
	OriginRight
	OriginBottomRight
	OriginBottom
	OriginBottomLeft
	OriginLeft
)

var originNames = []string{"center", "top_left", "top", "top_right", "right", "bottom_right", "bottom", "bottom_left", "left"}

// originFactors are multiples of the size giving the offset from the origin
// point to the rectangle center. Y grows downward.
var originFactors = []cp.Vector{
	{X: 0, Y: 0},
	{X: 0.5, Y: 0.5},
	{X: 0, Y: 0.5},
	{X: -0.5, Y: 0.5},
	{X: -0.5, Y: 0},
	{X: -0.5, Y: -0.5},
	{X: 0, Y: -0.5},
	{X: 0.5, Y: -0.5},
	{X: 0.5, Y: 0},
}

func (o Origin) Valid() bool { return int(o) < len(originNames) }

func (o Origin) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Origin(%d)", uint8(o))
	}
	return originNames[o]
}

// CenterOffset returns the vector from the origin point to the center of a
// rectangle of the given size.
func (o Origin) CenterOffset(size cp.Vector) cp.Vector {
	if !o.Valid() {
		return cp.Vector{}
	}
	f := originFactors[o]
	return cp.Vector{X: f.X * size.X, Y: f.Y * size.Y}
}

func (o Origin) MarshalYAML() (any, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid origin %d", uint8(o))
	}
	return o.String(), nil
}

func (o *Origin) UnmarshalYAML(value *yaml.Node) error {
	i, err := decodeEnumNode(value, "origin", originNames)
	if err != nil {
		return err
	}
	*o = Origin(i)
	return nil
}

// BoundaryBehavior is what the integrator does to a body leaving the world
// bounds.
type BoundaryBehavior uint8

const (
	// BoundaryStop clamps the body and zeroes its velocity.
	BoundaryStop BoundaryBehavior = iota
	// BoundarySlide clamps the body and zeroes the velocity across the edge.
	BoundarySlide
	// BoundaryReflect clamps the body and mirrors the velocity across the edge.
	BoundaryReflect
)

var boundaryBehaviorNames = []string{"stop", "slide", "reflect"}

func (b BoundaryBehavior) Valid() bool { return int(b) < len(boundaryBehaviorNames) }

func (b BoundaryBehavior) String() string {
	if !b.Valid() {
		return fmt.Sprintf("BoundaryBehavior(%d)", uint8(b))
	}
	return boundaryBehaviorNames[b]
}

func (b BoundaryBehavior) MarshalYAML() (any, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid boundary behavior %d", uint8(b))
	}
	return b.String(), nil
}

func (b *BoundaryBehavior) UnmarshalYAML(value *yaml.Node) error {
	i, err := decodeEnumNode(value, "boundary behavior", boundaryBehaviorNames)
	if err != nil {
		return err
	}
	*b = BoundaryBehavior(i)
	return nil
}

// ParseBoundaryBehavior reads a behavior name. Empty means slide.
func ParseBoundaryBehavior(s string) (BoundaryBehavior, error) {
	if strings.TrimSpace(s) == "" {
		return BoundarySlide, nil
	}
	i, err := parseEnum(s, "boundary behavior", boundaryBehaviorNames)
	if err != nil {
		return 0, err
	}
	return BoundaryBehavior(i), nil
}

func decodeEnumNode(value *yaml.Node, what string, names []string) (int, error) {
	if value.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("%s must be a string", what)
	}
	return parseEnum(value.Value, what, names)
}

func parseEnum(v, what string, names []string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(v))
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, v)
}
