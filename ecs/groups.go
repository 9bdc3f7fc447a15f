package ecs

import "sort"

// GroupTable maps exclusion group names to member entities. Colliders whose
// root entities share any group never collide with each other.
type GroupTable struct {
	members  map[string]map[Entity]struct{}
	byEntity map[Entity]map[string]struct{}
}

// Add puts e into the named group.
func (g *GroupTable) Add(name string, e Entity) {
	if g == nil || name == "" || !e.Valid() {
		return
	}
	if g.members == nil {
		g.members = make(map[string]map[Entity]struct{})
		g.byEntity = make(map[Entity]map[string]struct{})
	}
	if g.members[name] == nil {
		g.members[name] = make(map[Entity]struct{})
	}
	if g.byEntity[e] == nil {
		g.byEntity[e] = make(map[string]struct{})
	}
	g.members[name][e] = struct{}{}
	g.byEntity[e][name] = struct{}{}
}

// Remove takes e out of the named group.
func (g *GroupTable) Remove(name string, e Entity) {
	if g == nil || g.members == nil {
		return
	}
	if m := g.members[name]; m != nil {
		delete(m, e)
		if len(m) == 0 {
			delete(g.members, name)
		}
	}
	if m := g.byEntity[e]; m != nil {
		delete(m, name)
		if len(m) == 0 {
			delete(g.byEntity, e)
		}
	}
}

// Members returns the entities in a group in ascending order.
func (g *GroupTable) Members(name string) []Entity {
	if g == nil {
		return nil
	}
	out := make([]Entity, 0, len(g.members[name]))
	for e := range g.members[name] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GroupsOf returns the sorted group names e belongs to.
func (g *GroupTable) GroupsOf(e Entity) []string {
	if g == nil {
		return nil
	}
	out := make([]string, 0, len(g.byEntity[e]))
	for name := range g.byEntity[e] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Shared reports whether a and b are members of at least one common group.
func (g *GroupTable) Shared(a, b Entity) bool {
	if g == nil || g.byEntity == nil {
		return false
	}
	ga, gb := g.byEntity[a], g.byEntity[b]
	if len(ga) > len(gb) {
		ga, gb = gb, ga
	}
	for name := range ga {
		if _, ok := gb[name]; ok {
			return true
		}
	}
	return false
}

func (g *GroupTable) removeMember(e Entity) {
	for _, name := range g.GroupsOf(e) {
		g.Remove(name, e)
	}
}
