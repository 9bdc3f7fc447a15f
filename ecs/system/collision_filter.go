package system

import (
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
)

// maxParentDepth bounds the walk up Parent links so a cycle cannot hang the
// pass.
const maxParentDepth = 32

// rootOf follows Parent links from e to the entity at the top. ok is false
// when any entity on the way is dead.
func rootOf(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	cur := e
	for range maxParentDepth {
		if !ecs.IsAlive(w, cur) {
			return 0, false
		}
		p, ok := ecs.Get(w, cur, component.ParentComponent.Kind())
		if !ok || p.Entity == 0 || ecs.Entity(p.Entity) == cur {
			return cur, true
		}
		cur = ecs.Entity(p.Entity)
	}
	return cur, ecs.IsAlive(w, cur)
}

// CanCollide reports whether the colliders on a and b may interact this tick.
// Both must be alive, enabled and not in mode None; they must not share a
// root entity or an exclusion group; and each mask must accept the other's
// category.
func CanCollide(w *ecs.World, a, b ecs.Entity) bool {
	if w == nil || a == b {
		return false
	}
	ca, ok := ecs.Get(w, a, component.ColliderComponent.Kind())
	if !ok || !ca.Active() {
		return false
	}
	cb, ok := ecs.Get(w, b, component.ColliderComponent.Kind())
	if !ok || !cb.Active() {
		return false
	}

	ra, ok := rootOf(w, a)
	if !ok {
		return false
	}
	rb, ok := rootOf(w, b)
	if !ok || ra == rb {
		return false
	}

	groups := w.Groups()
	if groups.Shared(ra, rb) || groups.Shared(a, b) {
		return false
	}

	return ca.CanCollideWith(cb.GetCollisionCategory()) && cb.CanCollideWith(ca.GetCollisionCategory())
}

// ProcessCallback runs the PreCollisionCheck predicates and filter scripts of
// both colliders for a physical contact between a and b. Any of them
// returning false skips the pair for this tick only. The predicates may
// destroy entities; the pair is skipped if either side did not survive.
func (cs *CollisionSystem) ProcessCallback(w *ecs.World, a, b ecs.Entity) bool {
	return cs.runPredicates(w, a, b, false)
}

func (cs *CollisionSystem) processOverlap(w *ecs.World, a, b ecs.Entity) bool {
	return cs.runPredicates(w, a, b, true)
}

func (cs *CollisionSystem) runPredicates(w *ecs.World, a, b ecs.Entity, overlap bool) bool {
	for _, pair := range [2][2]ecs.Entity{{a, b}, {b, a}} {
		self, other := pair[0], pair[1]
		c, ok := ecs.Get(w, self, component.ColliderComponent.Kind())
		if !ok {
			return false
		}
		pred := c.PreCollisionCheck
		if overlap {
			pred = c.PreOverlapCheck
		}
		if pred != nil && !pred(uint64(self), uint64(other)) {
			return false
		}
		if c.Script != "" && cs != nil && !cs.Scripts.Allow(w, c.Script, self, other, cs.Debug) {
			return false
		}
	}
	return ecs.IsAlive(w, a) && ecs.IsAlive(w, b)
}
