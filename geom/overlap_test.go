package geom

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
)

func TestOverlapsCircleBoundary(t *testing.T) {
	a := NewCircle(cp.Vector{}, 1)
	cases := []struct {
		name string
		dist float64
		want bool
	}{
		{"apart", 3.0001, false},
		{"touching", 3, true},
		{"overlapping", 2.5, true},
		{"coincident", 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewCircle(cp.Vector{X: c.dist}, 2)
			require.Equal(t, c.want, Overlaps(a, b))
			require.Equal(t, c.want, Overlaps(b, a))
		})
	}
}

func TestOverlapsRects(t *testing.T) {
	size := cp.Vector{X: 10, Y: 10}
	cases := []struct {
		name string
		a, b Shape
		want bool
	}{
		{"apart", NewRect(cp.Vector{}, size, 0), NewRect(cp.Vector{X: 20}, size, 0), false},
		{"edges_touching", NewRect(cp.Vector{}, size, 0), NewRect(cp.Vector{X: 10}, size, 0), false},
		{"overlapping", NewRect(cp.Vector{}, size, 0), NewRect(cp.Vector{X: 9, Y: 9}, size, 0), true},
		{"quarter_turn_is_aligned", NewRect(cp.Vector{}, cp.Vector{X: 20, Y: 2}, math.Pi/2), NewRect(cp.Vector{Y: 9}, size, 0), true},
		// bounding boxes overlap but the diamond's edge clears the corner
		{"rotated_gap", NewRect(cp.Vector{}, size, math.Pi/4), NewRect(cp.Vector{X: 10, Y: 10}, size, 0), false},
		{"rotated_hit", NewRect(cp.Vector{}, size, math.Pi/4), NewRect(cp.Vector{X: 11}, size, 0), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Overlaps(c.a, c.b))
			require.Equal(t, c.want, Overlaps(c.b, c.a))
		})
	}
}

func TestOverlapsCircleRect(t *testing.T) {
	rect := NewRect(cp.Vector{}, cp.Vector{X: 20, Y: 20}, 0)
	cases := []struct {
		name   string
		circle Shape
		rect   Shape
		want   bool
	}{
		{"face_touching", NewCircle(cp.Vector{X: 13}, 3), rect, true},
		{"face_apart", NewCircle(cp.Vector{X: 13.01}, 3), rect, false},
		{"corner_gap", NewCircle(cp.Vector{X: 12.5, Y: 12.5}, 3), rect, false},
		{"center_inside", NewCircle(cp.Vector{X: 1, Y: 1}, 3), rect, true},
		{"rotated_corner", NewCircle(cp.Vector{X: 15}, 1.5), NewRect(cp.Vector{}, cp.Vector{X: 20, Y: 20}, math.Pi/4), true},
		{"rotated_miss", NewCircle(cp.Vector{X: 12, Y: 12}, 3), NewRect(cp.Vector{}, cp.Vector{X: 20, Y: 20}, math.Pi/4), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Overlaps(c.circle, c.rect))
			require.Equal(t, c.want, Overlaps(c.rect, c.circle))
		})
	}
}

func TestOverlapsUnknownKind(t *testing.T) {
	bad := Shape{Kind: Kind(9)}
	require.False(t, Overlaps(bad, NewCircle(cp.Vector{}, 1)))
	require.False(t, Intersects(bad, NewCircle(cp.Vector{}, 1)).Occurred())
	require.False(t, Raycast(bad, cp.Vector{X: 1}, NewCircle(cp.Vector{}, 1)).Occurred())
}
