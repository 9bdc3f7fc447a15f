package ecs

import "github.com/milk9111/collide/ecs/component"

// World owns entities, their components and the exclusion group table.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	groups   GroupTable
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// Groups returns the world's exclusion group table.
func (w *World) Groups() *GroupTable {
	if w == nil {
		return nil
	}
	return &w.groups
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	s, ok := w.stores[id]
	if !ok && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
