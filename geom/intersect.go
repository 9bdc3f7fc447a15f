package geom

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/common"
)

// Intersection is the minimum translation that separates two shapes. Normal
// points in the direction the first shape must move; Depth is the distance.
type Intersection struct {
	Normal cp.Vector
	Depth  float64
}

func (i Intersection) Occurred() bool {
	return !isZero(i.Normal)
}

// Flip returns the intersection seen from the other shape.
func (i Intersection) Flip() Intersection {
	return Intersection{Normal: i.Normal.Neg(), Depth: i.Depth}
}

type intersectFunc func(a, b Shape) Intersection

var intersectTable = [kindCount][kindCount]intersectFunc{
	KindCircle: {
		KindCircle: intersectCircleCircle,
		KindRect:   intersectCircleRect,
	},
	KindRect: {
		KindCircle: func(a, b Shape) Intersection { return intersectCircleRect(b, a).Flip() },
		KindRect:   intersectRectRect,
	},
}

// Intersects returns the penetration of a into b. Translating a by
// Normal*Depth leaves the shapes touching at most.
func Intersects(a, b Shape) Intersection {
	if !a.Kind.Valid() || !b.Kind.Valid() {
		return Intersection{}
	}
	return intersectTable[a.Kind][b.Kind](a, b)
}

func intersectCircleCircle(a, b Shape) Intersection {
	delta := a.Center.Sub(b.Center)
	r := a.Radius + b.Radius
	d2 := delta.LengthSq()
	if d2 > r*r {
		return Intersection{}
	}
	dist := math.Sqrt(d2)
	if dist <= common.Epsilon {
		return Intersection{Normal: FallbackNormal, Depth: r}
	}
	return Intersection{Normal: delta.Mult(1 / dist), Depth: r - dist}
}

func intersectCircleRect(c, r Shape) Intersection {
	local := r.toLocal(c.Center)
	nearest := clampToHalf(local, r.Half)
	diff := local.Sub(nearest)
	d2 := diff.LengthSq()
	if d2 > c.Radius*c.Radius {
		return Intersection{}
	}

	if d2 > common.Epsilon*common.Epsilon {
		dist := math.Sqrt(d2)
		return Intersection{
			Normal: r.toWorldDir(diff.Mult(1 / dist)),
			Depth:  c.Radius - dist,
		}
	}

	// center inside the rect: leave through the closest face
	px := r.Half.X - math.Abs(local.X)
	py := r.Half.Y - math.Abs(local.Y)
	var n cp.Vector
	var depth float64
	if px <= py {
		n = cp.Vector{X: signOr(local.X, 1)}
		depth = px + c.Radius
	} else {
		n = cp.Vector{Y: signOr(local.Y, 1)}
		depth = py + c.Radius
	}
	return Intersection{Normal: r.toWorldDir(n), Depth: depth}
}

func intersectRectRect(a, b Shape) Intersection {
	ha, okA := a.axisAligned()
	hb, okB := b.axisAligned()
	if !okA || !okB {
		depth, n, ok := satRects(a, b)
		if !ok {
			return Intersection{}
		}
		return Intersection{Normal: n, Depth: depth}
	}

	d := a.Center.Sub(b.Center)
	px := ha.X + hb.X - math.Abs(d.X)
	py := ha.Y + hb.Y - math.Abs(d.Y)
	if px <= common.Epsilon || py <= common.Epsilon {
		return Intersection{}
	}
	if isZero(d) {
		return Intersection{Normal: FallbackNormal, Depth: px}
	}
	if px < py {
		return Intersection{Normal: cp.Vector{X: signOr(d.X, 1)}, Depth: px}
	}
	return Intersection{Normal: cp.Vector{Y: signOr(d.Y, 1)}, Depth: py}
}

func signOr(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return common.Sign(v)
}
