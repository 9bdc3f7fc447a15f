package component

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/geom"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCollisionFilterMask(t *testing.T) {
	var f CollisionFilter
	require.True(t, f.CanCollideWith(7), "empty mask accepts everything")

	f.SetCollidesWith(3, 1, 3)
	require.Equal(t, []Category{1, 3}, f.CollidesWith())
	require.True(t, f.CanCollideWith(1))
	require.False(t, f.CanCollideWith(2))

	f.AddCollidesWith(2)
	require.True(t, f.CanCollideWith(2))

	f.RemoveCollidesWith(1, 2, 3)
	require.Empty(t, f.CollidesWith())
	require.True(t, f.CanCollideWith(42), "emptied mask accepts everything again")

	f.SetCollisionCategory(5)
	require.Equal(t, Category(5), f.GetCollisionCategory())
}

func TestInvokeCollisionCallbacks(t *testing.T) {
	type event struct {
		kind  string
		other uint64
	}
	var events []event
	record := func(kind string) CollisionCallback {
		return func(_, other uint64) { events = append(events, event{kind, other}) }
	}

	c := NewCollider(NewCircleShape(1))
	c.OnCollisionStart = record("start")
	c.OnCollision = record("stay")
	c.OnCollisionStop = record("stop")
	c.OnOverlapStart = record("overlap_start")
	c.OnOverlapStop = record("overlap_stop")

	ticks := []struct {
		name       string
		collisions []uint64
		overlaps   []uint64
		want       []event
	}{
		{"first_contact", []uint64{2, 3}, nil, []event{{"start", 2}, {"start", 3}}},
		{"one_stays_one_leaves", []uint64{2}, []uint64{9}, []event{{"stay", 2}, {"stop", 3}, {"overlap_start", 9}}},
		{"duplicates_recorded_once", []uint64{2, 2}, []uint64{9}, []event{{"stay", 2}}},
		{"all_gone", nil, nil, []event{{"stop", 2}, {"overlap_stop", 9}}},
		{"quiet", nil, nil, nil},
	}
	for _, tick := range ticks {
		t.Run(tick.name, func(t *testing.T) {
			events = nil
			for _, e := range tick.collisions {
				c.AddCollision(e, cp.Vector{Y: -1})
			}
			for _, e := range tick.overlaps {
				c.AddOverlap(e)
			}
			fired := c.InvokeCollisionCallbacks(1)
			require.Equal(t, tick.want, events)
			require.Equal(t, len(tick.want), fired)
			for _, e := range tick.collisions {
				require.True(t, c.IsCollidingWith(e))
			}
		})
	}
	require.Empty(t, c.Collisions())
	require.Empty(t, c.Overlaps())
}

func TestColliderAssertions(t *testing.T) {
	require.Panics(t, func() { NewCircleShape(0) })
	require.Panics(t, func() { NewRectShape(10, 0, OriginCenter) })
	require.Panics(t, func() { NewCollider(ColliderShape{Kind: geom.KindCircle, Radius: -1}) })

	c := NewCollider(NewRectShape(4, 4, OriginCenter))
	require.Panics(t, func() { c.SetCollisionMode(CollisionMode(42)) })
	require.Panics(t, func() { c.SetCollisionResponse(CollisionResponse(42)) })

	c.SetCollisionMode(CollisionModeContinuous)
	require.Equal(t, CollisionModeContinuous, c.Mode)
	require.True(t, c.Active())
	c.Disable()
	require.False(t, c.Active())
}

func TestColliderConfigRoundTrip(t *testing.T) {
	src := `
shape: rect
width: 32
height: 16
origin: top_left
category: 2
mask: [1, 4]
mode: continuous
response: bounce
script: one_way.tengo
`
	var cfg ColliderConfig
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))

	c, err := cfg.Build()
	require.NoError(t, err)
	require.Equal(t, geom.KindRect, c.Shape.Kind)
	require.Equal(t, cp.Vector{X: 32, Y: 16}, c.Shape.Size)
	require.Equal(t, OriginTopLeft, c.Shape.Origin)
	require.Equal(t, Category(2), c.GetCollisionCategory())
	require.Equal(t, []Category{1, 4}, c.CollidesWith())
	require.Equal(t, CollisionModeContinuous, c.Mode)
	require.Equal(t, ResponseBounce, c.Response)
	require.True(t, c.Enabled)

	out, err := yaml.Marshal(c.Config())
	require.NoError(t, err)

	var again ColliderConfig
	require.NoError(t, yaml.Unmarshal(out, &again))
	rebuilt, err := again.Build()
	require.NoError(t, err)
	require.Equal(t, c.Config(), rebuilt.Config())
}

func TestColliderConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unknown_mode", "shape: circle\nradius: 2\nmode: sometimes\n"},
		{"unknown_response", "shape: circle\nradius: 2\nresponse: wobble\n"},
		{"unknown_origin", "shape: rect\nwidth: 2\nheight: 2\norigin: middle\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var cfg ColliderConfig
			require.Error(t, yaml.Unmarshal([]byte(c.src), &cfg))
		})
	}

	_, err := ColliderConfig{Shape: "triangle"}.Build()
	require.ErrorIs(t, err, geom.ErrUnknownShape)

	_, err = ColliderConfig{Shape: "circle"}.Build()
	require.Error(t, err)
}

func TestColliderShapeWorld(t *testing.T) {
	cases := []struct {
		name   string
		shape  ColliderShape
		tr     Transform
		center cp.Vector
		half   cp.Vector
		radius float64
	}{
		{
			name:   "centered_rect",
			shape:  NewRectShape(10, 20, OriginCenter),
			tr:     *NewTransform(5, 5),
			center: cp.Vector{X: 5, Y: 5},
			half:   cp.Vector{X: 5, Y: 10},
		},
		{
			name:   "top_left_rect_scaled",
			shape:  NewRectShape(10, 20, OriginTopLeft),
			tr:     Transform{Position: cp.Vector{X: 0, Y: 0}, Scale: cp.Vector{X: 2, Y: 1}},
			center: cp.Vector{X: 10, Y: 10},
			half:   cp.Vector{X: 10, Y: 10},
		},
		{
			name:   "circle_offset",
			shape:  ColliderShape{Kind: geom.KindCircle, Radius: 3, Offset: cp.Vector{X: 0, Y: -4}},
			tr:     *NewTransform(1, 1),
			center: cp.Vector{X: 1, Y: -3},
			radius: 3,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := c.shape.World(c.tr)
			require.InDelta(t, c.center.X, s.Center.X, 1e-9)
			require.InDelta(t, c.center.Y, s.Center.Y, 1e-9)
			require.Equal(t, c.half, s.Half)
			require.Equal(t, c.radius, s.Radius)
		})
	}

	rotated := ColliderShape{Kind: geom.KindCircle, Radius: 1, Offset: cp.Vector{X: 2}}.World(Transform{Rotation: math.Pi / 2})
	require.InDelta(t, 0, rotated.Center.X, 1e-9)
	require.InDelta(t, 2, rotated.Center.Y, 1e-9)
}
