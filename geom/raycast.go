package geom

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/common"
)

// startTolerance absorbs rounding when a sweep begins exactly in contact.
const startTolerance = 1e-7

// RaycastResult is the time of impact of a swept shape. T is the fraction of
// the displacement travelled before contact and Normal the target's surface
// normal at the contact point.
type RaycastResult struct {
	T      float64
	Normal cp.Vector
}

// Occurred reports whether contact happens within this displacement.
func (r RaycastResult) Occurred() bool {
	return r.T >= 0 && r.T < 1 && !isZero(r.Normal)
}

var noHit = RaycastResult{T: 1}

type raycastFunc func(a Shape, d cp.Vector, b Shape) RaycastResult

var raycastTable = [kindCount][kindCount]raycastFunc{
	KindCircle: {
		KindCircle: raycastCircleCircle,
		KindRect:   raycastCircleRect,
	},
	KindRect: {
		KindCircle: raycastRectCircle,
		KindRect:   raycastRectRect,
	},
}

// Raycast sweeps a along displacement d against the static shape b. A sweep
// that starts with the shapes already overlapping reports no hit; the caller
// resolves that penetration statically. A sweep starting in exact contact
// and moving inward hits at T == 0.
func Raycast(a Shape, d cp.Vector, b Shape) RaycastResult {
	if !a.Kind.Valid() || !b.Kind.Valid() || isZero(d) {
		return noHit
	}
	return raycastTable[a.Kind][b.Kind](a, d, b)
}

func raycastCircleCircle(a Shape, d cp.Vector, b Shape) RaycastResult {
	return rayCircle(a.Center, d, b.Center, a.Radius+b.Radius)
}

// raycastCircleRect sweeps the circle center against the rect grown by the
// radius, with rounded corners, in the rect's frame.
func raycastCircleRect(a Shape, d cp.Vector, b Shape) RaycastResult {
	o := b.toLocal(a.Center)
	dir := d
	if b.Rotation != 0 {
		dir = d.Unrotate(cp.ForAngle(b.Rotation))
	}
	r := a.Radius
	expanded := cp.Vector{X: b.Half.X + r, Y: b.Half.Y + r}

	// Inside a corner square of the grown box the rounded corner is the only
	// reachable surface.
	if ax, ay := math.Abs(o.X), math.Abs(o.Y); ax > b.Half.X && ay > b.Half.Y && ax < expanded.X && ay < expanded.Y {
		return toWorld(b, rayCircle(o, dir, cornerOf(b.Half, o), r))
	}

	hit := raySlab(o, dir, expanded)
	if !hit.Occurred() {
		return noHit
	}
	p := o.Add(dir.Mult(hit.T))
	if math.Abs(p.X) > b.Half.X && math.Abs(p.Y) > b.Half.Y {
		hit = rayCircle(o, dir, cornerOf(b.Half, p), r)
	}
	return toWorld(b, hit)
}

func cornerOf(half, p cp.Vector) cp.Vector {
	return cp.Vector{X: common.Sign(p.X) * half.X, Y: common.Sign(p.Y) * half.Y}
}

// toWorld maps a hit found in b's frame back to world space.
func toWorld(b Shape, hit RaycastResult) RaycastResult {
	if !hit.Occurred() {
		return noHit
	}
	hit.Normal = b.toWorldDir(hit.Normal)
	return hit
}

func raycastRectCircle(a Shape, d cp.Vector, b Shape) RaycastResult {
	hit := raycastCircleRect(b, d.Neg(), a)
	if !hit.Occurred() {
		return noHit
	}
	hit.Normal = hit.Normal.Neg()
	return hit
}

// raycastRectRect is a swept separating axis test over both rectangles' edge
// normals. Each axis yields the interval of t during which the projections
// overlap; contact begins at the latest entry.
func raycastRectRect(a Shape, d cp.Vector, b Shape) RaycastResult {
	axesA := a.axes()
	axesB := b.axes()
	candidates := [4]cp.Vector{axesA[0], axesA[1], axesB[0], axesB[1]}

	delta := a.Center.Sub(b.Center)
	var entries [4]float64
	var speeds [4]float64
	entry := math.Inf(-1)
	exit := math.Inf(1)
	for i, n := range candidates {
		r := projectedRadius(a, axesA, n) + projectedRadius(b, axesB, n)
		v := d.Dot(n)
		lo, hi, ok := slabAxis(delta.Dot(n), v, r)
		if !ok {
			return noHit
		}
		entries[i], speeds[i] = lo, v
		entry = math.Max(entry, lo)
		exit = math.Min(exit, hi)
	}
	if entry > exit || exit <= 0 || entry >= 1 {
		return noHit
	}
	if entry < -startTolerance {
		// started overlapping
		return noHit
	}

	// Axes entered together, as at a corner, share the normal.
	var sum cp.Vector
	var used []cp.Vector
	for i, n := range candidates {
		if entries[i] < entry-common.Epsilon || speeds[i] == 0 {
			continue
		}
		dup := false
		for _, u := range used {
			if math.Abs(u.Dot(n)) > 1-common.Epsilon {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		used = append(used, n)
		sum = sum.Add(n.Mult(-common.Sign(speeds[i])))
	}
	return RaycastResult{T: math.Max(entry, 0), Normal: normalizeOr(sum, FallbackNormal)}
}

// raySlab intersects the segment o..o+d with the box [-half, half] using
// per-axis entry and exit times.
func raySlab(o, d, half cp.Vector) RaycastResult {
	entryX, exitX, ok := slabAxis(o.X, d.X, half.X)
	if !ok {
		return noHit
	}
	entryY, exitY, ok := slabAxis(o.Y, d.Y, half.Y)
	if !ok {
		return noHit
	}

	entry := math.Max(entryX, entryY)
	exit := math.Min(exitX, exitY)
	if entry > exit || exit <= 0 || entry >= 1 {
		return noHit
	}
	if entry < -startTolerance {
		// started inside
		return noHit
	}

	var n cp.Vector
	switch {
	case math.Abs(entryX-entryY) <= common.Epsilon:
		n = normalizeOr(cp.Vector{X: -common.Sign(d.X), Y: -common.Sign(d.Y)}, FallbackNormal)
	case entryX > entryY:
		n = cp.Vector{X: -common.Sign(d.X)}
	default:
		n = cp.Vector{Y: -common.Sign(d.Y)}
	}
	return RaycastResult{T: math.Max(entry, 0), Normal: n}
}

func slabAxis(o, d, half float64) (entry, exit float64, ok bool) {
	if d == 0 {
		if o < -half || o > half {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}
	inv := 1 / d
	t1 := (-half - o) * inv
	t2 := (half - o) * inv
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1, t2, true
}

// rayCircle intersects the segment o..o+d with the circle at c.
func rayCircle(o, d, c cp.Vector, radius float64) RaycastResult {
	f := o.Sub(c)
	a := d.Dot(d)
	if a <= common.Epsilon*common.Epsilon {
		return noHit
	}
	b := 2 * f.Dot(d)
	cc := f.Dot(f) - radius*radius
	if cc < -startTolerance*(radius*radius+1) {
		// started inside
		return noHit
	}
	disc := b*b - 4*a*cc
	if disc < 0 {
		return noHit
	}
	t := (-b - math.Sqrt(disc)) / (2 * a)
	if t < -startTolerance || t >= 1 {
		return noHit
	}
	t = math.Max(t, 0)
	p := o.Add(d.Mult(t))
	return RaycastResult{T: t, Normal: normalizeOr(p.Sub(c), FallbackNormal)}
}
