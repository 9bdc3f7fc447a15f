package entity

import (
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":        addTransform,
	"rigid_body":       addRigidBody,
	"collider":         addCollider,
	"exclusion_groups": addExclusionGroups,
	"patrol":           addPatrol,
	"world_bounds":     addWorldBounds,
}

// Colliders are built after the transform and body they describe.
var componentBuildOrder = []string{
	"transform",
	"rigid_body",
	"collider",
	"exclusion_groups",
	"patrol",
	"world_bounds",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := build(name); err != nil {
				ecs.DestroyEntity(w, e)
				return 0, err
			}
		}
	}

	return e, nil
}

// SetEntityTransform places e, adding a unit-scale transform when it has none.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = component.NewTransform(x, y)
	}
	t.Position = cp.Vector{X: x, Y: y}
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return err
	}
	t := component.NewTransform(spec.X, spec.Y)
	t.Rotation = spec.Rotation
	if spec.ScaleX != 0 {
		t.Scale.X = spec.ScaleX
	}
	if spec.ScaleY != 0 {
		t.Scale.Y = spec.ScaleY
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

type rigidBodySpec = prefabs.RigidBodyComponentSpec

func addRigidBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[rigidBodySpec](raw)
	if err != nil {
		return err
	}
	if spec.Bounce < 0 || spec.Bounce > 1 {
		return fmt.Errorf("bounce %v outside [0, 1]", spec.Bounce)
	}

	rb := component.NewRigidBody()
	rb.Velocity = cp.Vector{X: spec.VelocityX, Y: spec.VelocityY}
	if spec.Mass > 0 {
		rb.Mass = spec.Mass
	}
	rb.Immovable = spec.Immovable
	if spec.Pushable != nil {
		rb.Pushable = *spec.Pushable
	}
	rb.Bounce = spec.Bounce
	if spec.Friction != nil {
		rb.Friction = *spec.Friction
	}
	if spec.GravityScale != nil {
		rb.GravityScale = *spec.GravityScale
	}
	rb.CustomSeparate = spec.CustomSeparate
	return ecs.Add(w, e, component.RigidBodyComponent.Kind(), rb)
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	cfg, err := prefabs.DecodeComponentSpec[component.ColliderConfig](raw)
	if err != nil {
		return err
	}
	c, err := cfg.Build()
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), c)
}

func addExclusionGroups(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	groups, err := prefabs.DecodeComponentSpec[[]string](raw)
	if err != nil {
		return err
	}
	for _, g := range groups {
		if g == "" {
			return fmt.Errorf("empty exclusion group name")
		}
		w.Groups().Add(g, e)
	}
	return nil
}

func addPatrol(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PatrolComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.MaxX < spec.MinX {
		return fmt.Errorf("patrol max_x %v below min_x %v", spec.MaxX, spec.MinX)
	}
	return ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{
		MinX:  spec.MinX,
		MaxX:  spec.MaxX,
		Speed: spec.Speed,
	})
}

func addWorldBounds(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.WorldBoundsComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.MaxX <= spec.MinX || spec.MaxY <= spec.MinY {
		return fmt.Errorf("world bounds are empty")
	}
	behavior, err := component.ParseBoundaryBehavior(spec.Behavior)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.WorldBoundsComponent.Kind(), &component.WorldBounds{
		Min:      cp.Vector{X: spec.MinX, Y: spec.MinY},
		Max:      cp.Vector{X: spec.MaxX, Y: spec.MaxY},
		Behavior: behavior,
	})
}
