package component

import (
	"slices"
)

// Category tags what a collider is.
type Category int64

// CollisionFilter declares a collider's category and the set of categories it
// accepts. An empty mask accepts every category.
type CollisionFilter struct {
	Category Category
	mask     []Category
}

func (f *CollisionFilter) SetCollisionCategory(c Category) {
	f.Category = c
}

func (f *CollisionFilter) GetCollisionCategory() Category {
	return f.Category
}

// SetCollidesWith replaces the mask. Calling it with no categories resets the
// mask to accept everything.
func (f *CollisionFilter) SetCollidesWith(cats ...Category) {
	f.mask = f.mask[:0]
	f.AddCollidesWith(cats...)
}

func (f *CollisionFilter) AddCollidesWith(cats ...Category) {
	for _, c := range cats {
		i, found := slices.BinarySearch(f.mask, c)
		if !found {
			f.mask = slices.Insert(f.mask, i, c)
		}
	}
}

// RemoveCollidesWith drops categories from the mask. Removing the last one
// leaves an empty mask, which accepts everything.
func (f *CollisionFilter) RemoveCollidesWith(cats ...Category) {
	for _, c := range cats {
		if i, found := slices.BinarySearch(f.mask, c); found {
			f.mask = slices.Delete(f.mask, i, i+1)
		}
	}
}

// CollidesWith returns a sorted copy of the mask.
func (f *CollisionFilter) CollidesWith() []Category {
	return slices.Clone(f.mask)
}

// CanCollideWith reports whether the mask accepts category c.
func (f *CollisionFilter) CanCollideWith(c Category) bool {
	if len(f.mask) == 0 {
		return true
	}
	_, found := slices.BinarySearch(f.mask, c)
	return found
}
