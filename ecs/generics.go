package ecs

import "github.com/milk9111/stargather/ecs/component"

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *SparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	raw, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		s := newSparseSet[T]()
		w.stores[kind.ID()] = s
		return s
	}
	s, _ := raw.(*SparseSet[T])
	return s
}

// Add attaches or replaces the component of the given kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	if value == nil {
		return component.ErrNilComponent
	}
	s := storeFor(w, kind, true)
	if s == nil {
		return component.ErrInvalidComponentKind
	}
	s.set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := storeFor(w, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := storeFor(w, kind, false)
	return s != nil && IsAlive(w, e) && s.has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	s := storeFor(w, kind, false)
	if s == nil || !IsAlive(w, e) {
		return nil, false
	}
	return s.get(e)
}

// First returns the first live entity holding a component of kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0, false
	}
	for _, e := range s.entities() {
		if IsAlive(w, e) {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits every entity with a component of kind. The callback may add
// or remove components and entities; iteration runs over a snapshot.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeFor(w, kind, false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range snapshot(s.entities()) {
		v, ok := s.get(e)
		if !ok || !IsAlive(w, e) {
			continue
		}
		fn(e, v)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := storeFor(w, ka, false), storeFor(w, kb, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for _, e := range snapshot(sa.entities()) {
		a, okA := sa.get(e)
		b, okB := sb.get(e)
		if !okA || !okB || !IsAlive(w, e) {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeFor(w, ka, false), storeFor(w, kb, false), storeFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil || fn == nil {
		return
	}
	for _, e := range snapshot(sa.entities()) {
		a, okA := sa.get(e)
		b, okB := sb.get(e)
		c, okC := sc.get(e)
		if !okA || !okB || !okC || !IsAlive(w, e) {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa, sb, sc, sd := storeFor(w, ka, false), storeFor(w, kb, false), storeFor(w, kc, false), storeFor(w, kd, false)
	if sa == nil || sb == nil || sc == nil || sd == nil || fn == nil {
		return
	}
	for _, e := range snapshot(sa.entities()) {
		a, okA := sa.get(e)
		b, okB := sb.get(e)
		c, okC := sc.get(e)
		d, okD := sd.get(e)
		if !okA || !okB || !okC || !okD || !IsAlive(w, e) {
			continue
		}
		fn(e, a, b, c, d)
	}
}

func snapshot(ents []Entity) []Entity {
	return append([]Entity(nil), ents...)
}
