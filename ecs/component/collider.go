package component

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Contact is one entry of a collider's per-tick contact set. Normal points
// away from the other entity. (ecs.Entity is uint64)
type Contact struct {
	Entity uint64
	Normal cp.Vector
}

type contactSet []Contact

func (s contactSet) has(e uint64) bool {
	for _, c := range s {
		if c.Entity == e {
			return true
		}
	}
	return false
}

func (s *contactSet) add(c Contact) {
	if s.has(c.Entity) {
		return
	}
	*s = append(*s, c)
}

// CollisionCallback receives the collider's own entity and the other entity.
type CollisionCallback func(self, other uint64)

// CollisionPredicate returning false skips a contact for the current tick.
type CollisionPredicate func(self, other uint64) bool

type Collider struct {
	CollisionFilter

	Shape    ColliderShape
	Mode     CollisionMode
	Response CollisionResponse
	Enabled  bool
	// Script names a filter script under prefabs/scripts. It is consulted
	// together with the Pre*Check predicates.
	Script string

	PreCollisionCheck CollisionPredicate
	PreOverlapCheck   CollisionPredicate

	OnCollisionStart CollisionCallback
	OnCollision      CollisionCallback
	OnCollisionStop  CollisionCallback

	OnOverlapStart CollisionCallback
	OnOverlap      CollisionCallback
	OnOverlapStop  CollisionCallback

	collisions     contactSet
	prevCollisions contactSet
	overlaps       contactSet
	prevOverlaps   contactSet
}

// NewCollider returns an enabled discrete collider. It panics on a degenerate
// shape.
func NewCollider(shape ColliderShape) *Collider {
	shape.MustValidate()
	return &Collider{
		Shape:   shape,
		Mode:    CollisionModeDiscrete,
		Enabled: true,
	}
}

func (c *Collider) SetCollisionMode(m CollisionMode) {
	if !m.Valid() {
		panic(fmt.Sprintf("collider: invalid collision mode %d", uint8(m)))
	}
	c.Mode = m
}

func (c *Collider) SetCollisionResponse(r CollisionResponse) {
	if !r.Valid() {
		panic(fmt.Sprintf("collider: invalid collision response %d", uint8(r)))
	}
	c.Response = r
}

func (c *Collider) Enable()  { c.Enabled = true }
func (c *Collider) Disable() { c.Enabled = false }

// Active reports whether the collider takes part in the collision pass.
func (c *Collider) Active() bool {
	return c != nil && c.Enabled && c.Mode != CollisionModeNone
}

// AddCollision records a physical contact for the tick in progress.
func (c *Collider) AddCollision(other uint64, normal cp.Vector) {
	c.collisions.add(Contact{Entity: other, Normal: normal})
}

// AddOverlap records a detection-only contact for the tick in progress.
func (c *Collider) AddOverlap(other uint64) {
	c.overlaps.add(Contact{Entity: other})
}

// IsCollidingWith reports whether other was in contact during the last
// completed tick.
func (c *Collider) IsCollidingWith(other uint64) bool {
	return c.prevCollisions.has(other)
}

func (c *Collider) IsOverlappingWith(other uint64) bool {
	return c.prevOverlaps.has(other)
}

// Collisions returns the contacts of the last completed tick.
func (c *Collider) Collisions() []Contact {
	return append([]Contact(nil), c.prevCollisions...)
}

func (c *Collider) Overlaps() []Contact {
	return append([]Contact(nil), c.prevOverlaps...)
}

// InvokeCollisionCallbacks diffs this tick's contacts against the previous
// tick's, moves this tick's sets into the previous slot and fires start, stay
// and stop callbacks. It returns the number of callbacks fired. Callbacks may
// destroy entities or change this collider.
func (c *Collider) InvokeCollisionCallbacks(self uint64) int {
	startC, stayC, stopC := diffContacts(c.collisions, c.prevCollisions)
	startO, stayO, stopO := diffContacts(c.overlaps, c.prevOverlaps)

	c.prevCollisions, c.collisions = c.collisions, c.prevCollisions[:0]
	c.prevOverlaps, c.overlaps = c.overlaps, c.prevOverlaps[:0]

	fired := 0
	fired += fire(c.OnCollisionStart, self, startC)
	fired += fire(c.OnCollision, self, stayC)
	fired += fire(c.OnCollisionStop, self, stopC)
	fired += fire(c.OnOverlapStart, self, startO)
	fired += fire(c.OnOverlap, self, stayO)
	fired += fire(c.OnOverlapStop, self, stopO)
	return fired
}

func diffContacts(cur, prev contactSet) (start, stay, stop []uint64) {
	for _, ct := range cur {
		if prev.has(ct.Entity) {
			stay = append(stay, ct.Entity)
		} else {
			start = append(start, ct.Entity)
		}
	}
	for _, ct := range prev {
		if !cur.has(ct.Entity) {
			stop = append(stop, ct.Entity)
		}
	}
	return start, stay, stop
}

func fire(cb CollisionCallback, self uint64, others []uint64) int {
	if cb == nil {
		return 0
	}
	for _, other := range others {
		cb(self, other)
	}
	return len(others)
}

var ColliderComponent = NewComponent[Collider]()
