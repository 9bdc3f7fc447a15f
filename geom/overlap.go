package geom

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/common"
)

type overlapFunc func(a, b Shape) bool

var overlapTable = [kindCount][kindCount]overlapFunc{
	KindCircle: {
		KindCircle: overlapCircleCircle,
		KindRect:   overlapCircleRect,
	},
	KindRect: {
		KindCircle: func(a, b Shape) bool { return overlapCircleRect(b, a) },
		KindRect:   overlapRectRect,
	},
}

// Overlaps reports whether a and b share any area. Circles count as
// overlapping when they touch; rectangles whose edges only touch do not.
func Overlaps(a, b Shape) bool {
	if !a.Kind.Valid() || !b.Kind.Valid() {
		return false
	}
	return overlapTable[a.Kind][b.Kind](a, b)
}

func overlapCircleCircle(a, b Shape) bool {
	r := a.Radius + b.Radius
	return a.Center.DistanceSq(b.Center) <= r*r
}

func overlapCircleRect(c, r Shape) bool {
	local := r.toLocal(c.Center)
	nearest := clampToHalf(local, r.Half)
	return local.DistanceSq(nearest) <= c.Radius*c.Radius
}

func overlapRectRect(a, b Shape) bool {
	ha, okA := a.axisAligned()
	hb, okB := b.axisAligned()
	if okA && okB {
		dx := math.Abs(a.Center.X - b.Center.X)
		dy := math.Abs(a.Center.Y - b.Center.Y)
		return ha.X+hb.X-dx > common.Epsilon && ha.Y+hb.Y-dy > common.Epsilon
	}
	_, _, ok := satRects(a, b)
	return ok
}

func clampToHalf(p, half cp.Vector) cp.Vector {
	return cp.Vector{
		X: common.Clamp(p.X, -half.X, half.X),
		Y: common.Clamp(p.Y, -half.Y, half.Y),
	}
}

// satRects runs the separating axis test over both rectangles' edge normals.
// On overlap it returns the smallest penetration and the axis oriented to push
// a out of b.
func satRects(a, b Shape) (float64, cp.Vector, bool) {
	axesA := a.axes()
	axesB := b.axes()
	candidates := [4]cp.Vector{axesA[0], axesA[1], axesB[0], axesB[1]}

	delta := b.Center.Sub(a.Center)
	best := math.Inf(1)
	var bestAxis cp.Vector
	for _, n := range candidates {
		ra := projectedRadius(a, axesA, n)
		rb := projectedRadius(b, axesB, n)
		d := delta.Dot(n)
		overlap := ra + rb - math.Abs(d)
		if overlap <= common.Epsilon {
			return 0, cp.Vector{}, false
		}
		if overlap < best {
			best = overlap
			bestAxis = n
			if d > 0 {
				bestAxis = n.Neg()
			}
		}
	}
	return best, bestAxis, true
}

func projectedRadius(s Shape, axes [2]cp.Vector, n cp.Vector) float64 {
	return s.Half.X*math.Abs(axes[0].Dot(n)) + s.Half.Y*math.Abs(axes[1].Dot(n))
}
