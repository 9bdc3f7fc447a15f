package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/common"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/geom"
)

// body is the view of one side of a contact. rb is nil for colliders without
// a rigid body; those behave as immovable and motionless.
type body struct {
	entity    ecs.Entity
	transform *component.Transform
	collider  *component.Collider
	rb        *component.RigidBody
}

// bodyOf fetches e's components fresh. It fails when e is dead, has lost its
// transform or its collider, or the collider was switched off.
func bodyOf(w *ecs.World, e ecs.Entity) (body, bool) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return body{}, false
	}
	c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok || !c.Active() {
		return body{}, false
	}
	rb, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	return body{entity: e, transform: tr, collider: c, rb: rb}, true
}

func (b body) shape() geom.Shape {
	return b.collider.Shape.World(*b.transform)
}

func (b body) immovable() bool {
	return b.rb == nil || b.rb.Immovable
}

func (b body) pushable() bool {
	return b.rb != nil && b.rb.Pushable
}

func (b body) custom() bool {
	return b.rb != nil && b.rb.CustomSeparate
}

func (b body) velocity() cp.Vector {
	if b.rb == nil {
		return cp.Vector{}
	}
	return b.rb.Velocity
}

func (b body) delta() cp.Vector {
	if b.rb == nil {
		return cp.Vector{}
	}
	return b.rb.Delta
}

func (b body) mass() float64 {
	return b.rb.EffectiveMass()
}

func (b body) bounce() float64 {
	if b.rb == nil {
		return 0
	}
	return b.rb.Bounce
}

func (b body) friction() float64 {
	if b.rb == nil {
		return 0
	}
	return b.rb.Friction
}

func (b body) move(d cp.Vector) {
	b.transform.Position = b.transform.Position.Add(d)
}

// setSpeed replaces the velocity component along the unit direction dir.
func (b body) setSpeed(dir cp.Vector, speed float64) {
	if b.rb == nil {
		return
	}
	v := b.rb.Velocity
	b.rb.Velocity = v.Add(dir.Mult(speed - v.Dot(dir)))
}

func (b body) markEmbedded() {
	if b.rb != nil {
		b.rb.Embedded = true
	}
}

// markContact flags the side of b facing along dir.
func (b body) markContact(dir cp.Vector, blocked bool) {
	if b.rb == nil {
		return
	}
	set := func(d *component.Directions) {
		if math.Abs(dir.X) > math.Abs(dir.Y) {
			if dir.X > 0 {
				d.Right = true
			} else {
				d.Left = true
			}
			return
		}
		if dir.Y > 0 {
			d.Down = true
		} else if dir.Y < 0 {
			d.Up = true
		}
	}
	set(&b.rb.Touching)
	if blocked {
		set(&b.rb.Blocked)
	}
}

type axis int

const (
	axisX axis = iota
	axisY
)

func (ax axis) dir() cp.Vector {
	if ax == axisX {
		return cp.Vector{X: 1}
	}
	return cp.Vector{Y: 1}
}

func (ax axis) of(v cp.Vector) float64 {
	if ax == axisX {
		return v.X
	}
	return v.Y
}

func (ax axis) other() axis {
	return 1 - ax
}

func (cs *CollisionSystem) gravityAxis() axis {
	if math.Abs(cs.Gravity.X) > math.Abs(cs.Gravity.Y) {
		return axisX
	}
	return axisY
}

// axisOrder returns the axes in resolution order. The axis gravity pulls
// along goes first so bodies land before they slide.
func (cs *CollisionSystem) axisOrder() [2]axis {
	if cs.ForceX {
		return [2]axis{axisX, axisY}
	}
	first := cs.gravityAxis()
	return [2]axis{first, first.other()}
}

// separate pushes a and b apart. hit is the penetration of a into b. It
// reports whether any correction was applied.
func (cs *CollisionSystem) separate(a, b body, hit geom.Intersection) bool {
	if a.immovable() && b.immovable() {
		return false
	}
	if a.custom() || b.custom() {
		return false
	}
	if boxShape(a.shape()) && boxShape(b.shape()) {
		return cs.separateAxes(a, b)
	}
	return cs.separateNormal(a, b, hit)
}

func boxShape(s geom.Shape) bool {
	return s.Kind == geom.KindRect && s.Rotation == 0
}

// separateAxes resolves two unrotated boxes one axis at a time. Overlap is
// measured again from the current positions before each axis.
func (cs *CollisionSystem) separateAxes(a, b body) bool {
	resolved := false
	for _, ax := range cs.axisOrder() {
		if !geom.Overlaps(a.shape(), b.shape()) {
			break
		}
		ov, embedded := axisOverlap(a, b, ax)
		if embedded {
			a.markEmbedded()
			b.markEmbedded()
		}
		if ov == 0 {
			continue
		}
		resolveAlong(a, b, ax.dir(), ov)
		cs.carry(a, b, ax)
		resolved = true
	}
	if resolved {
		return true
	}

	// Neither axis could be attributed to motion, usually because the pair
	// spawned inside each other. Fall back to the least-penetration axis.
	hit := geom.Intersects(a.shape(), b.shape())
	if !hit.Occurred() {
		return false
	}
	cs.debugf("entity=%s other=%s embedded, resolving along %v depth=%.4f", a.entity, b.entity, hit.Normal, hit.Depth)
	return cs.separateNormal(a, b, hit)
}

// axisOverlap measures how far a has moved into b along ax. Positive means a
// entered b travelling in +ax. The overlap is discarded when it is larger than
// both bodies moved on that axis this tick plus OverlapBias, since then it
// came from motion on the other axis. Equal motion on the axis reports
// embedded.
func axisOverlap(a, b body, ax axis) (float64, bool) {
	da := ax.of(a.delta())
	db := ax.of(b.delta())
	if common.NearlyEqual(da, db) {
		return 0, true
	}

	aMin, aMax := a.shape().Bounds()
	bMin, bMax := b.shape().Bounds()
	limit := math.Abs(da) + math.Abs(db) + common.OverlapBias

	var ov float64
	if da > db {
		ov = ax.of(aMax) - ax.of(bMin)
		if ov <= 0 || ov > limit {
			return 0, false
		}
	} else {
		ov = ax.of(aMin) - ax.of(bMax)
		if ov >= 0 || -ov > limit {
			return 0, false
		}
	}
	return ov, false
}

// separateNormal resolves along the minimum translation vector.
func (cs *CollisionSystem) separateNormal(a, b body, hit geom.Intersection) bool {
	if !hit.Occurred() {
		return false
	}
	// a leaves along hit.Normal, so it entered along its negation
	resolveAlong(a, b, hit.Normal.Neg(), hit.Depth)
	return true
}

// resolveAlong separates a pair along the unit direction dir. a entered b
// travelling along dir*sign(ov); a ends up moved against that and b with it,
// split by the mass and push rules, and the velocities along dir are
// exchanged.
func resolveAlong(a, b body, dir cp.Vector, ov float64) {
	if a.immovable() {
		a, b, ov = b, a, -ov
	}
	correction := ov + common.Sign(ov)*common.Slop
	into := dir.Mult(common.Sign(ov))
	v1 := a.velocity().Dot(dir)
	v2 := b.velocity().Dot(dir)

	if b.immovable() {
		a.move(dir.Mult(-correction))
		if (v1-v2)*ov > 0 {
			a.setSpeed(dir, v2-v1*a.bounce())
		}
		a.markContact(into, true)
		b.markContact(into.Neg(), false)
		return
	}

	switch {
	case a.pushable() && b.pushable():
		a.move(dir.Mult(-correction / 2))
		b.move(dir.Mult(correction / 2))

		m1, m2 := a.mass(), b.mass()
		nv1 := math.Sqrt(v2*v2*m2/m1) * common.Sign(v2)
		nv2 := math.Sqrt(v1*v1*m1/m2) * common.Sign(v1)
		avg := (nv1 + nv2) / 2
		a.setSpeed(dir, avg+(nv1-avg)*a.bounce())
		b.setSpeed(dir, avg+(nv2-avg)*b.bounce())
		a.markContact(into, false)
		b.markContact(into.Neg(), false)

	case a.pushable():
		a.move(dir.Mult(-correction))
		a.setSpeed(dir, v2-v1*a.bounce())
		a.markContact(into, true)
		b.markContact(into.Neg(), false)

	case b.pushable():
		b.move(dir.Mult(correction))
		b.setSpeed(dir, v1-v2*b.bounce())
		a.markContact(into, false)
		b.markContact(into.Neg(), true)

	default:
		a.move(dir.Mult(-correction / 2))
		b.move(dir.Mult(correction / 2))
		if common.Sign(v1) == common.Sign(ov) {
			a.setSpeed(dir, 0)
		}
		if common.Sign(v2) == -common.Sign(ov) {
			b.setSpeed(dir, 0)
		}
		a.markContact(into, true)
		b.markContact(into.Neg(), true)
	}
}

// carry moves a body resting on an immovable mover along with it. Only the
// axis gravity acts on counts as resting.
func (cs *CollisionSystem) carry(a, b body, ax axis) {
	if ax != cs.gravityAxis() {
		return
	}
	rider, carrier := a, b
	if a.immovable() {
		rider, carrier = b, a
	}
	if rider.immovable() || !carrier.immovable() {
		return
	}
	g := ax.of(cs.Gravity)
	if g == 0 || ax.of(rider.transform.Position)*common.Sign(g) > ax.of(carrier.transform.Position)*common.Sign(g) {
		return
	}
	shift := ax.other().of(carrier.delta()) * rider.friction()
	if shift == 0 {
		return
	}
	rider.move(ax.other().dir().Mult(shift))
}
