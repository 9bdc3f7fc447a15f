package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/common"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
)

// PhysicsSystem integrates rigid bodies at a fixed step and runs the
// collision pass between integration and the world bounds clamp.
type PhysicsSystem struct {
	Collision *CollisionSystem
	// Dt is the step in seconds; <= 0 means common.FixedDelta.
	Dt float64
	// Stats holds the counters of the latest Update.
	Stats Stats
	// Total accumulates Stats over every Update.
	Total Stats
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		Collision: NewCollisionSystem(),
		Dt:        common.FixedDelta,
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.Collision == nil {
		ps.Collision = NewCollisionSystem()
	}
	dt := ps.Dt
	if dt <= 0 {
		dt = common.FixedDelta
	}

	ps.Stats.Reset()
	ps.integrate(w, dt)
	ps.Collision.Step(w, dt, &ps.Stats)
	ps.clampToBounds(w)
	ps.Total.Add(ps.Stats)
}

// integrate applies gravity and moves every body except continuous colliders,
// whose motion the collision pass sweeps.
func (ps *PhysicsSystem) integrate(w *ecs.World, dt float64) {
	gravity := ps.Collision.Gravity
	ecs.ForEach2(w, component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody, tr *component.Transform) {
		rb.ResetContacts()
		if !rb.Immovable {
			rb.Velocity = rb.Velocity.Add(gravity.Mult(rb.GravityScale * dt))
		}
		if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok && c.Active() && c.Mode == component.CollisionModeContinuous && !rb.Immovable {
			return
		}
		d := rb.Velocity.Mult(dt)
		tr.Position = tr.Position.Add(d)
		rb.Delta = d
	})
}

// clampToBounds keeps bodies inside the WorldBounds singleton, if any.
func (ps *PhysicsSystem) clampToBounds(w *ecs.World) {
	boundsEntity, ok := ecs.First(w, component.WorldBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.WorldBoundsComponent.Kind())
	if !ok || bounds.Max.X <= bounds.Min.X || bounds.Max.Y <= bounds.Min.Y {
		return
	}

	ecs.ForEach2(w, component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody, tr *component.Transform) {
		if rb.Immovable {
			return
		}
		lo, hi := tr.Position, tr.Position
		if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
			lo, hi = c.Shape.World(*tr).Bounds()
		}

		shift := cp.Vector{
			X: boundsShift(lo.X, hi.X, bounds.Min.X, bounds.Max.X),
			Y: boundsShift(lo.Y, hi.Y, bounds.Min.Y, bounds.Max.Y),
		}
		if shift.X == 0 && shift.Y == 0 {
			return
		}
		tr.Position = tr.Position.Add(shift)

		switch bounds.Behavior {
		case component.BoundaryStop:
			rb.Velocity = cp.Vector{}
		case component.BoundarySlide:
			if shift.X != 0 {
				rb.Velocity.X = 0
			}
			if shift.Y != 0 {
				rb.Velocity.Y = 0
			}
		case component.BoundaryReflect:
			if shift.X != 0 {
				rb.Velocity.X = -rb.Velocity.X
			}
			if shift.Y != 0 {
				rb.Velocity.Y = -rb.Velocity.Y
			}
		default:
			panic("physics: unknown boundary behavior " + bounds.Behavior.String())
		}

		if shift.X > 0 {
			rb.Blocked.Left = true
		} else if shift.X < 0 {
			rb.Blocked.Right = true
		}
		if shift.Y > 0 {
			rb.Blocked.Up = true
		} else if shift.Y < 0 {
			rb.Blocked.Down = true
		}
	})
}

// boundsShift is how far [lo, hi] must move to sit inside [min, max]. A span
// wider than the bounds is aligned to min.
func boundsShift(lo, hi, min, max float64) float64 {
	switch {
	case lo < min:
		return min - lo
	case hi > max:
		return max - hi
	default:
		return 0
	}
}
