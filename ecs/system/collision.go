package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/common"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/geom"
)

// Stats counts what one or more collision passes did. The caller owns it and
// passes it to Step; a nil *Stats is allowed.
type Stats struct {
	Ticks         int
	Candidates    int
	Overlaps      int
	Intersections int
	Sweeps        int
	SweepHits     int
	Separations   int
	Rejected      int
	Callbacks     int
}

func (s *Stats) Reset() {
	if s == nil {
		return
	}
	*s = Stats{}
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	if s == nil {
		return
	}
	s.Ticks += other.Ticks
	s.Candidates += other.Candidates
	s.Overlaps += other.Overlaps
	s.Intersections += other.Intersections
	s.Sweeps += other.Sweeps
	s.SweepHits += other.SweepHits
	s.Separations += other.Separations
	s.Rejected += other.Rejected
	s.Callbacks += other.Callbacks
}

// CollisionSystem is the per-tick collision pass. It sweeps continuous
// colliders, pushes overlapping bodies apart and fires contact callbacks.
// Positions and velocities must already be integrated for the tick, except
// for continuous colliders, which the pass moves itself.
type CollisionSystem struct {
	// Gravity picks the axis resolved first for box pairs.
	Gravity cp.Vector
	// ForceX resolves the horizontal axis first regardless of gravity.
	ForceX bool
	// Debug logs degenerate contacts and script failures.
	Debug bool
	// Scripts evaluates collider filter scripts. Nil disables them.
	Scripts *CollisionScripts
}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{
		Gravity: cp.Vector{X: 0, Y: common.Gravity},
		Scripts: NewCollisionScripts(nil),
	}
}

type pairKey struct {
	lo, hi ecs.Entity
}

func makePairKey(a, b ecs.Entity) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Step runs one collision pass over every collider in ascending entity order.
func (cs *CollisionSystem) Step(w *ecs.World, dt float64, stats *Stats) {
	if cs == nil || w == nil {
		return
	}
	if stats == nil {
		stats = &Stats{}
	}
	stats.Ticks++

	colliders := colliderEntities(w)
	visited := make(map[pairKey]struct{})

	for _, e := range colliders {
		c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if !ok || !c.Active() {
			continue
		}
		if !ecs.Has(w, e, component.TransformComponent.Kind()) {
			continue
		}

		candidates := cs.candidates(w, e, colliders)
		stats.Candidates += len(candidates)

		switch c.Mode {
		case component.CollisionModeOverlap:
			cs.detectOverlaps(w, e, candidates, visited, stats)
		case component.CollisionModeContinuous:
			cs.sweep(w, e, candidates, dt, visited, stats)
			cs.resolveContacts(w, e, candidates, visited, stats)
		case component.CollisionModeDiscrete:
			cs.resolveContacts(w, e, candidates, visited, stats)
		default:
			panic("collision: unknown collision mode " + c.Mode.String())
		}
	}

	for _, e := range colliders {
		c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if !ok {
			continue
		}
		stats.Callbacks += c.InvokeCollisionCallbacks(uint64(e))
	}
}

// colliderEntities snapshots the entities holding a collider, ascending.
func colliderEntities(w *ecs.World) []ecs.Entity {
	out := make([]ecs.Entity, 0)
	for _, e := range ecs.Entities(w) {
		if ecs.Has(w, e, component.ColliderComponent.Kind()) {
			out = append(out, e)
		}
	}
	return out
}

// candidates lists every other collider e may touch this tick. The result is
// a snapshot of handles; each one is re-validated before it is queried.
func (cs *CollisionSystem) candidates(w *ecs.World, e ecs.Entity, all []ecs.Entity) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(all))
	for _, other := range all {
		if other == e || !CanCollide(w, e, other) {
			continue
		}
		out = append(out, other)
	}
	return out
}

func (cs *CollisionSystem) resolveContacts(w *ecs.World, e ecs.Entity, candidates []ecs.Entity, visited map[pairKey]struct{}, stats *Stats) {
	for _, other := range candidates {
		key := makePairKey(e, other)
		if _, done := visited[key]; done {
			continue
		}
		if !CanCollide(w, e, other) {
			continue
		}
		a, okA := bodyOf(w, e)
		b, okB := bodyOf(w, other)
		if !okA || !okB {
			continue
		}
		if b.collider.Mode == component.CollisionModeOverlap {
			continue
		}

		hit := geom.Intersects(a.shape(), b.shape())
		if !hit.Occurred() {
			continue
		}
		visited[key] = struct{}{}
		stats.Intersections++

		if !cs.ProcessCallback(w, e, other) {
			stats.Rejected++
			continue
		}
		// predicates may have destroyed or changed either side
		a, okA = bodyOf(w, e)
		b, okB = bodyOf(w, other)
		if !okA || !okB {
			continue
		}

		a.collider.AddCollision(uint64(other), hit.Normal)
		b.collider.AddCollision(uint64(e), hit.Normal.Neg())

		if cs.separate(a, b, hit) {
			stats.Separations++
		}
	}
}

func (cs *CollisionSystem) detectOverlaps(w *ecs.World, e ecs.Entity, candidates []ecs.Entity, visited map[pairKey]struct{}, stats *Stats) {
	for _, other := range candidates {
		key := makePairKey(e, other)
		if _, done := visited[key]; done {
			continue
		}
		if !CanCollide(w, e, other) {
			continue
		}
		a, okA := bodyOf(w, e)
		b, okB := bodyOf(w, other)
		if !okA || !okB {
			continue
		}
		if !geom.Overlaps(a.shape(), b.shape()) {
			continue
		}
		visited[key] = struct{}{}
		stats.Overlaps++

		if !cs.processOverlap(w, e, other) {
			stats.Rejected++
			continue
		}
		a, okA = bodyOf(w, e)
		b, okB = bodyOf(w, other)
		if !okA || !okB {
			continue
		}
		a.collider.AddOverlap(uint64(other))
		b.collider.AddOverlap(uint64(e))
	}
}

func (cs *CollisionSystem) debugf(format string, args ...any) {
	if cs == nil || !cs.Debug {
		return
	}
	log.Printf("collision: "+format, args...)
}
