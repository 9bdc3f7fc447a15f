package component

// Parent links a collider entity to the entity it belongs to. Colliders that
// resolve to the same root never collide. (ecs.Entity is uint64)
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()
