package ecs

import (
	"math/bits"

	"github.com/milk9111/stargather/ecs/component"
)

// Group is an indexed arena of entities with an active bitmask. Disabling a
// member clears its bit and tags it with component.Disabled so physics and
// rendering skip it; the entity itself stays alive for later re-enabling.
type Group struct {
	members []Entity
	index   map[Entity]int
	active  []uint64
}

func NewGroup() *Group {
	return &Group{index: make(map[Entity]int)}
}

// Add appends e to the group as an active member and returns its index.
func (g *Group) Add(e Entity) int {
	if i, ok := g.index[e]; ok {
		return i
	}
	i := len(g.members)
	g.members = append(g.members, e)
	g.index[e] = i
	if i/64 >= len(g.active) {
		g.active = append(g.active, 0)
	}
	g.active[i/64] |= 1 << (uint(i) % 64)
	return i
}

// Len returns the number of members, active or not.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.members)
}

// At returns the member at index i.
func (g *Group) At(i int) Entity {
	return g.members[i]
}

// Last returns the most recently added member.
func (g *Group) Last() (Entity, bool) {
	if g == nil || len(g.members) == 0 {
		return 0, false
	}
	return g.members[len(g.members)-1], true
}

// Contains reports whether e is a member.
func (g *Group) Contains(e Entity) bool {
	if g == nil {
		return false
	}
	_, ok := g.index[e]
	return ok
}

// IsActive reports whether e is a member whose active bit is set.
func (g *Group) IsActive(e Entity) bool {
	if g == nil {
		return false
	}
	i, ok := g.index[e]
	if !ok {
		return false
	}
	return g.active[i/64]&(1<<(uint(i)%64)) != 0
}

// CountActive returns the number of active members.
func (g *Group) CountActive() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, word := range g.active {
		n += bits.OnesCount64(word)
	}
	return n
}

// Disable clears the active bit of e and marks it disabled in w.
func (g *Group) Disable(w *World, e Entity) bool {
	i, ok := g.index[e]
	if !ok || !g.IsActive(e) {
		return false
	}
	g.active[i/64] &^= 1 << (uint(i) % 64)
	_ = Add(w, e, component.DisabledComponent.Kind(), &component.Disabled{})
	return true
}

// Enable sets the active bit of e and removes its disabled marker.
func (g *Group) Enable(w *World, e Entity) bool {
	i, ok := g.index[e]
	if !ok {
		return false
	}
	g.active[i/64] |= 1 << (uint(i) % 64)
	Remove(w, e, component.DisabledComponent.Kind())
	return true
}

// Each visits every member in insertion order.
func (g *Group) Each(fn func(i int, e Entity)) {
	if g == nil || fn == nil {
		return
	}
	for i, e := range g.members {
		fn(i, e)
	}
}
