package levels

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/stretchr/testify/require"
)

func TestLoadSandbox(t *testing.T) {
	lvl, err := LoadLevel("sandbox")
	require.NoError(t, err)
	require.Equal(t, "sandbox", lvl.Name)
	require.Len(t, lvl.Layers, 2)
	require.True(t, lvl.Physics(0))
	require.False(t, lvl.Physics(1))
	require.True(t, lvl.Physics(5))
}

func TestDecodeLevelRejectsBadLayers(t *testing.T) {
	_, err := decodeLevel([]byte(`{"name":"x","width":2,"height":2,"tile_size":8,"layers":[[1,0,1]]}`))
	require.ErrorContains(t, err, "layer 0 has 3 cells, want 4")

	_, err = decodeLevel([]byte(`{"name":"x","width":1,"height":1,"layers":[[1]]}`))
	require.ErrorContains(t, err, "tile_size")

	_, err = decodeLevel([]byte(`{`))
	require.Error(t, err)
}

func TestSpawnMergesTileRuns(t *testing.T) {
	lvl := &Level{
		Name:     "runs",
		Width:    4,
		Height:   2,
		TileSize: 10,
		Layers: [][]int{
			{1, 1, 0, 1,
				1, 1, 1, 1},
		},
		Bounds: "reflect",
	}
	w := ecs.NewWorld()
	scene, err := Spawn(w, lvl)
	require.NoError(t, err)
	require.Len(t, scene.Tiles, 3)

	type run struct {
		pos  cp.Vector
		size cp.Vector
	}
	var got []run
	for _, e := range scene.Tiles {
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		c, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
		require.Equal(t, TerrainCategory, c.Category)
		require.False(t, ecs.Has(w, e, component.RigidBodyComponent.Kind()))
		got = append(got, run{tr.Position, c.Shape.Size})
	}
	require.Equal(t, []run{
		{cp.Vector{X: 0, Y: 0}, cp.Vector{X: 20, Y: 10}},
		{cp.Vector{X: 30, Y: 0}, cp.Vector{X: 10, Y: 10}},
		{cp.Vector{X: 0, Y: 10}, cp.Vector{X: 40, Y: 10}},
	}, got)

	wb, ok := ecs.Get(w, scene.Bounds, component.WorldBoundsComponent.Kind())
	require.True(t, ok)
	require.Equal(t, cp.Vector{X: 40, Y: 20}, wb.Max)
	require.Equal(t, component.BoundaryReflect, wb.Behavior)
}

func TestSpawnSandbox(t *testing.T) {
	lvl, err := LoadLevel("sandbox.json")
	require.NoError(t, err)
	w := ecs.NewWorld()
	scene, err := Spawn(w, lvl)
	require.NoError(t, err)

	player, ok := scene.Named["player"]
	require.True(t, ok)
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	require.Equal(t, cp.Vector{X: 96, Y: 480}, tr.Position)

	a, b := scene.Named["ball_a"], scene.Named["ball_b"]
	require.True(t, w.Groups().Shared(a, b))
	rb, _ := ecs.Get(w, a, component.RigidBodyComponent.Kind())
	require.Equal(t, 140.0, rb.Velocity.X)

	_, ok = ecs.First(w, component.WorldBoundsComponent.Kind())
	require.True(t, ok)
}

func TestSpawnParents(t *testing.T) {
	lvl := &Level{
		Name: "family",
		Entities: []Entity{
			{Type: "trigger", ID: "sensor", Parent: "body"},
			{Type: "crate", ID: "body", X: 5, Y: 6},
		},
	}
	w := ecs.NewWorld()
	scene, err := Spawn(w, lvl)
	require.NoError(t, err)

	p, ok := ecs.Get(w, scene.Named["sensor"], component.ParentComponent.Kind())
	require.True(t, ok)
	require.Equal(t, uint64(scene.Named["body"]), p.Entity)
}

func TestSpawnErrorsCleanUp(t *testing.T) {
	cases := []struct {
		name    string
		lvl     *Level
		wantErr string
	}{
		{"unknown_prefab", &Level{Entities: []Entity{{Type: "crate"}, {Type: "dragon"}}}, "dragon"},
		{"unknown_parent", &Level{Entities: []Entity{{Type: "crate", ID: "a", Parent: "ghost"}}}, `unknown parent "ghost"`},
		{"parent_without_id", &Level{Entities: []Entity{{Type: "crate", ID: "a"}, {Type: "crate", Parent: "a"}}}, "need an id"},
		{"duplicate_id", &Level{Entities: []Entity{{Type: "crate", ID: "a"}, {Type: "ball", ID: "a"}}}, "duplicate instance id"},
		{"bad_bounds", &Level{Width: 1, Height: 1, TileSize: 8, Bounds: "wrap"}, "unknown boundary behavior"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := Spawn(w, c.lvl)
			require.ErrorContains(t, err, c.wantErr)
			require.Empty(t, ecs.Entities(w))
		})
	}
}
