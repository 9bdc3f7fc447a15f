package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab: a name plus raw component specs keyed by
// component name. Each builder decodes its own entry.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

// RigidBodyComponentSpec leaves pointer fields nil to keep the body defaults.
type RigidBodyComponentSpec struct {
	VelocityX      float64  `yaml:"velocity_x"`
	VelocityY      float64  `yaml:"velocity_y"`
	Mass           float64  `yaml:"mass"`
	Immovable      bool     `yaml:"immovable"`
	Pushable       *bool    `yaml:"pushable"`
	Bounce         float64  `yaml:"bounce"`
	Friction       *float64 `yaml:"friction"`
	GravityScale   *float64 `yaml:"gravity_scale"`
	CustomSeparate bool     `yaml:"custom_separate"`
}

type WorldBoundsComponentSpec struct {
	MinX     float64 `yaml:"min_x"`
	MinY     float64 `yaml:"min_y"`
	MaxX     float64 `yaml:"max_x"`
	MaxY     float64 `yaml:"max_y"`
	Behavior string  `yaml:"behavior"`
}

// PatrolComponentSpec moves a body back and forth between two x positions.
type PatrolComponentSpec struct {
	MinX  float64 `yaml:"min_x"`
	MaxX  float64 `yaml:"max_x"`
	Speed float64 `yaml:"speed"`
}
