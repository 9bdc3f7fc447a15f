package levels

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/ecs/entity"
)

// TerrainCategory is the collision category of tile colliders.
const TerrainCategory component.Category = 2

// Scene is what Spawn created.
type Scene struct {
	// Named maps instance IDs to entities.
	Named  map[string]ecs.Entity
	Tiles  []ecs.Entity
	Bounds ecs.Entity
}

// Spawn builds the level into w. On error, everything created so far is
// destroyed.
func Spawn(w *ecs.World, lvl *Level) (*Scene, error) {
	if w == nil || lvl == nil {
		return nil, fmt.Errorf("spawn level: nil world or level")
	}
	scene := &Scene{Named: make(map[string]ecs.Entity)}
	var created []ecs.Entity
	fail := func(err error) (*Scene, error) {
		for _, e := range created {
			ecs.DestroyEntity(w, e)
		}
		return nil, fmt.Errorf("spawn level %q: %w", lvl.Name, err)
	}

	for i, layer := range lvl.Layers {
		if !lvl.Physics(i) {
			continue
		}
		tiles, err := spawnTileRuns(w, lvl, layer)
		created = append(created, tiles...)
		if err != nil {
			return fail(err)
		}
		scene.Tiles = append(scene.Tiles, tiles...)
	}

	if lvl.Bounds != "" && lvl.Width > 0 && lvl.Height > 0 && lvl.TileSize > 0 {
		behavior, err := component.ParseBoundaryBehavior(lvl.Bounds)
		if err != nil {
			return fail(err)
		}
		e := ecs.CreateEntity(w)
		created = append(created, e)
		if err := ecs.Add(w, e, component.WorldBoundsComponent.Kind(), &component.WorldBounds{
			Max:      cp.Vector{X: float64(lvl.Width * lvl.TileSize), Y: float64(lvl.Height * lvl.TileSize)},
			Behavior: behavior,
		}); err != nil {
			return fail(err)
		}
		scene.Bounds = e
	}

	for _, inst := range lvl.Entities {
		e, err := entity.BuildEntity(w, inst.Type)
		if err != nil {
			return fail(err)
		}
		created = append(created, e)
		if err := applyInstance(w, e, inst); err != nil {
			return fail(fmt.Errorf("%s: %w", inst.Type, err))
		}
		if inst.ID == "" {
			continue
		}
		if _, dup := scene.Named[inst.ID]; dup {
			return fail(fmt.Errorf("duplicate instance id %q", inst.ID))
		}
		scene.Named[inst.ID] = e
	}

	// Parents may be declared after their children.
	for _, inst := range lvl.Entities {
		if inst.Parent == "" {
			continue
		}
		child, ok := scene.Named[inst.ID]
		if !ok {
			return fail(fmt.Errorf("%s: parented instances need an id", inst.Type))
		}
		parent, ok := scene.Named[inst.Parent]
		if !ok {
			return fail(fmt.Errorf("%s: unknown parent %q", inst.ID, inst.Parent))
		}
		if err := ecs.Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)}); err != nil {
			return fail(err)
		}
	}

	return scene, nil
}

func applyInstance(w *ecs.World, e ecs.Entity, inst Entity) error {
	if ecs.Has(w, e, component.TransformComponent.Kind()) {
		if err := entity.SetEntityTransform(w, e, inst.X, inst.Y, inst.Rotation); err != nil {
			return err
		}
	}
	for _, g := range inst.Groups {
		if g == "" {
			return fmt.Errorf("empty group name")
		}
		w.Groups().Add(g, e)
	}
	if len(inst.Props) == 0 {
		return nil
	}

	if rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok {
		if v, ok := propFloat(inst.Props, "velocity_x"); ok {
			rb.Velocity.X = v
		}
		if v, ok := propFloat(inst.Props, "velocity_y"); ok {
			rb.Velocity.Y = v
		}
	}
	if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		if v, ok := inst.Props["enabled"].(bool); ok {
			c.Enabled = v
		}
		if v, ok := inst.Props["script"].(string); ok {
			c.Script = v
		}
	}
	return nil
}

func propFloat(props map[string]any, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// spawnTileRuns merges each row's consecutive solid cells into one static
// collider, so bodies sliding along a floor never catch on tile seams.
func spawnTileRuns(w *ecs.World, lvl *Level, layer []int) ([]ecs.Entity, error) {
	var out []ecs.Entity
	size := float64(lvl.TileSize)
	for y := 0; y < lvl.Height; y++ {
		row := layer[y*lvl.Width : (y+1)*lvl.Width]
		for x := 0; x < lvl.Width; {
			if row[x] == 0 {
				x++
				continue
			}
			start := x
			for x < lvl.Width && row[x] != 0 {
				x++
			}
			e := ecs.CreateEntity(w)
			out = append(out, e)
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(float64(start)*size, float64(y)*size)); err != nil {
				return out, err
			}
			c := component.NewCollider(component.NewRectShape(float64(x-start)*size, size, component.OriginTopLeft))
			c.SetCollisionCategory(TerrainCategory)
			if err := ecs.Add(w, e, component.ColliderComponent.Kind(), c); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}
