package entity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/geom"
	"github.com/stretchr/testify/require"
)

// writePrefab puts a prefab on disk where Load looks before the embedded set.
func writePrefab(t *testing.T, name, body string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "prefabs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prefabs", name), []byte(body), 0o644))
}

func TestBuildEmbeddedPrefabs(t *testing.T) {
	for _, name := range []string{
		"player", "crate", "heavy_crate", "ball", "bullet", "wall", "floor",
		"ramp", "moving_platform", "one_way_platform", "trigger", "gate", "bounds",
	} {
		t.Run(name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := BuildEntity(w, name)
			require.NoError(t, err)
			require.True(t, ecs.IsAlive(w, e))
		})
	}
}

func TestBuildPlayer(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "player.yaml")
	require.NoError(t, err)

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	require.Equal(t, cp.Vector{X: 1, Y: 1}, tr.Scale)

	rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	require.True(t, ok)
	require.True(t, rb.Pushable)
	require.Equal(t, 1.0, rb.GravityScale)

	c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	require.True(t, ok)
	require.Equal(t, geom.KindRect, c.Shape.Kind)
	require.Equal(t, cp.Vector{X: 14, Y: 24}, c.Shape.Size)
	require.Equal(t, component.Category(1), c.Category)
	require.Equal(t, []component.Category{2, 3, 4}, c.CollidesWith())
	require.Equal(t, component.CollisionModeDiscrete, c.Mode)
}

func TestBuildBulletAndPlatform(t *testing.T) {
	w := ecs.NewWorld()
	bullet, err := BuildEntity(w, "bullet")
	require.NoError(t, err)
	c, _ := ecs.Get(w, bullet, component.ColliderComponent.Kind())
	require.Equal(t, component.CollisionModeContinuous, c.Mode)
	require.Equal(t, component.ResponseStop, c.Response)
	rb, _ := ecs.Get(w, bullet, component.RigidBodyComponent.Kind())
	require.False(t, rb.Pushable)
	require.Zero(t, rb.GravityScale)
	require.Equal(t, 900.0, rb.Velocity.X)

	platform, err := BuildEntity(w, "moving_platform")
	require.NoError(t, err)
	require.True(t, ecs.Has(w, platform, component.PatrolComponent.Kind()))
	rb, _ = ecs.Get(w, platform, component.RigidBodyComponent.Kind())
	require.True(t, rb.Immovable)

	bounds, err := BuildEntity(w, "bounds")
	require.NoError(t, err)
	wb, ok := ecs.Get(w, bounds, component.WorldBoundsComponent.Kind())
	require.True(t, ok)
	require.Equal(t, component.BoundarySlide, wb.Behavior)
	require.Equal(t, cp.Vector{X: 960, Y: 540}, wb.Max)
}

func TestBuildExclusionGroups(t *testing.T) {
	writePrefab(t, "squad.yaml", `
name: squad
components:
  transform: {x: 10, y: 20}
  collider: {shape: circle, radius: 4}
  exclusion_groups: [squad, allies]
`)
	w := ecs.NewWorld()
	a, err := BuildEntity(w, "squad")
	require.NoError(t, err)
	b, err := BuildEntity(w, "squad")
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"squad", "allies"}, w.Groups().GroupsOf(a))
	require.True(t, w.Groups().Shared(a, b))

	tr, _ := ecs.Get(w, a, component.TransformComponent.Kind())
	require.Equal(t, cp.Vector{X: 10, Y: 20}, tr.Position)
}

func TestBuildEntityErrors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"unknown_component", "name: x\ncomponents:\n  transform: {}\n  sprite: {image: a.png}\n", `no builder for component "sprite"`},
		{"bad_collider", "name: x\ncomponents:\n  collider: {shape: triangle}\n", `add "collider"`},
		{"bad_mode", "name: x\ncomponents:\n  collider: {shape: rect, width: 2, height: 2, mode: warp}\n", "unknown collision mode"},
		{"bad_bounce", "name: x\ncomponents:\n  rigid_body: {bounce: 2}\n", "bounce"},
		{"bad_bounds", "name: x\ncomponents:\n  world_bounds: {max_x: 10, max_y: 10, behavior: wrap}\n", "unknown boundary behavior"},
		{"empty_bounds", "name: x\ncomponents:\n  world_bounds: {}\n", "world bounds are empty"},
		{"no_components", "name: x\n", "does not define components"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			writePrefab(t, "broken.yaml", c.body)
			w := ecs.NewWorld()
			_, err := BuildEntity(w, "broken")
			require.ErrorContains(t, err, c.wantErr)
			require.Empty(t, ecs.Entities(w), "failed builds leave nothing behind")
		})
	}

	_, err := BuildEntity(nil, "crate")
	require.Error(t, err)
}

func TestSetEntityTransform(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, SetEntityTransform(w, e, 3, 4, 0.5))
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	require.Equal(t, cp.Vector{X: 3, Y: 4}, tr.Position)
	require.Equal(t, 0.5, tr.Rotation)
	require.Equal(t, cp.Vector{X: 1, Y: 1}, tr.Scale)
}
