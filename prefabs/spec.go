package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SandboxSpec tunes the sandbox: simulation settings and the body the arrow
// keys drive.
type SandboxSpec struct {
	Name      string  `yaml:"name"`
	GravityX  float64 `yaml:"gravity_x"`
	GravityY  float64 `yaml:"gravity_y"`
	ForceX    bool    `yaml:"force_x"`
	Zoom      float64 `yaml:"zoom"`
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
	// Controlled names the level instance moved by input.
	Controlled string `yaml:"controlled"`
}

func LoadSandboxSpec() (*SandboxSpec, error) {
	spec, err := LoadSpec[SandboxSpec]("sandbox.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
