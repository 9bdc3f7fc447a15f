package component

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/geom"
)

// ColliderConfig is the persisted form of a collider: shape parameters and
// filtering scalars. Contact sets and callbacks are runtime-only.
type ColliderConfig struct {
	Shape    string             `yaml:"shape"`
	Radius   float64            `yaml:"radius,omitempty"`
	Width    float64            `yaml:"width,omitempty"`
	Height   float64            `yaml:"height,omitempty"`
	Origin   Origin             `yaml:"origin,omitempty"`
	Rotation float64            `yaml:"rotation,omitempty"`
	OffsetX  float64            `yaml:"offset_x,omitempty"`
	OffsetY  float64            `yaml:"offset_y,omitempty"`
	Category Category           `yaml:"category"`
	Mask     []Category         `yaml:"mask,omitempty"`
	Mode     *CollisionMode     `yaml:"mode,omitempty"`
	Response *CollisionResponse `yaml:"response,omitempty"`
	Enabled  *bool              `yaml:"enabled,omitempty"`
	Script   string             `yaml:"script,omitempty"`
}

// Config captures the collider's persisted configuration.
func (c *Collider) Config() ColliderConfig {
	mode := c.Mode
	response := c.Response
	enabled := c.Enabled
	cfg := ColliderConfig{
		Shape:    c.Shape.Kind.String(),
		Origin:   c.Shape.Origin,
		Rotation: c.Shape.Rotation,
		OffsetX:  c.Shape.Offset.X,
		OffsetY:  c.Shape.Offset.Y,
		Category: c.Category,
		Mask:     c.CollidesWith(),
		Mode:     &mode,
		Response: &response,
		Enabled:  &enabled,
		Script:   c.Script,
	}
	if c.Shape.Kind == geom.KindCircle {
		cfg.Radius = c.Shape.Radius
	} else {
		cfg.Width = c.Shape.Size.X
		cfg.Height = c.Shape.Size.Y
	}
	return cfg
}

// Build creates a collider from the configuration. Unset mode defaults to
// discrete and unset enabled to true.
func (cfg ColliderConfig) Build() (*Collider, error) {
	shape := ColliderShape{
		Origin:   cfg.Origin,
		Rotation: cfg.Rotation,
		Offset:   cp.Vector{X: cfg.OffsetX, Y: cfg.OffsetY},
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Shape)) {
	case "circle":
		shape.Kind = geom.KindCircle
		shape.Radius = cfg.Radius
	case "rect", "":
		shape.Kind = geom.KindRect
		shape.Size = cp.Vector{X: cfg.Width, Y: cfg.Height}
	default:
		return nil, fmt.Errorf("collider config: %w: %q", geom.ErrUnknownShape, cfg.Shape)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("collider config: %w", err)
	}

	c := NewCollider(shape)
	c.SetCollisionCategory(cfg.Category)
	c.SetCollidesWith(cfg.Mask...)
	if cfg.Mode != nil {
		if !cfg.Mode.Valid() {
			return nil, fmt.Errorf("collider config: invalid mode %d", uint8(*cfg.Mode))
		}
		c.Mode = *cfg.Mode
	}
	if cfg.Response != nil {
		if !cfg.Response.Valid() {
			return nil, fmt.Errorf("collider config: invalid response %d", uint8(*cfg.Response))
		}
		c.Response = *cfg.Response
	}
	if cfg.Enabled != nil {
		c.Enabled = *cfg.Enabled
	}
	c.Script = cfg.Script
	return c, nil
}
