package ecs

// componentStore is the type-erased view of a SparseSet the world needs for
// entity teardown and multi-kind queries.
type componentStore interface {
	has(e Entity) bool
	remove(e Entity) bool
	entities() []Entity
}

// SparseSet is a cache-friendly storage for components keyed by entity slot.
type SparseSet[T any] struct {
	dense  []Entity
	values []*T
	sparse []int
}

func newSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{}
}

func (s *SparseSet[T]) index(e Entity) (int, bool) {
	id := int(e.id())
	if id <= 0 || id > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *SparseSet[T]) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *SparseSet[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *SparseSet[T]) set(e Entity, v *T) {
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		return
	}
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	// A stale generation may still occupy the slot.
	if old := s.sparse[id-1]; old >= 0 && old < len(s.dense) && s.dense[old].id() == e.id() {
		s.removeAt(old)
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *SparseSet[T]) remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	s.removeAt(idx)
	return true
}

func (s *SparseSet[T]) removeAt(idx int) {
	last := len(s.dense) - 1
	removed := s.dense[idx]
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[removed.id()-1] = -1
}

func (s *SparseSet[T]) entities() []Entity {
	return s.dense
}

// Len returns the number of stored components.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}
