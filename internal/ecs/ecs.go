// Package ecs provides a minimal entity registry with typed component
// storages and joins over them.
//
// Storages keep components in insertion order, so iteration and joins are
// deterministic: entities are visited in the order their component was
// first inserted into the driving storage.
package ecs

import "iter"

// Entity identifies a row across component storages. The zero value is
// never handed out.
type Entity uint32

// Registry hands out entity IDs.
type Registry struct {
	next Entity
}

// Create returns a new, unused entity.
func (r *Registry) Create() Entity {
	r.next++
	return r.next
}

// Count returns how many entities have been created.
func (r *Registry) Count() int {
	return int(r.next)
}

// Storage holds at most one T per entity in dense slices.
type Storage[T any] struct {
	entities []Entity
	values   []T
	index    map[Entity]int
}

// NewStorage returns an empty storage.
func NewStorage[T any]() *Storage[T] {
	return &Storage[T]{index: make(map[Entity]int)}
}

// Insert sets e's component, replacing any previous value in place.
func (s *Storage[T]) Insert(e Entity, v T) {
	if i, ok := s.index[e]; ok {
		s.values[i] = v
		return
	}
	s.index[e] = len(s.values)
	s.entities = append(s.entities, e)
	s.values = append(s.values, v)
}

// Get returns a pointer to e's component. The pointer is valid until the
// next Insert or Remove on this storage.
func (s *Storage[T]) Get(e Entity) (*T, bool) {
	i, ok := s.index[e]
	if !ok {
		return nil, false
	}
	return &s.values[i], true
}

// Has reports whether e has a component in s.
func (s *Storage[T]) Has(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Remove deletes e's component, keeping the order of the rest.
func (s *Storage[T]) Remove(e Entity) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	delete(s.index, e)
	s.entities = append(s.entities[:i], s.entities[i+1:]...)
	s.values = append(s.values[:i], s.values[i+1:]...)
	for j := i; j < len(s.entities); j++ {
		s.index[s.entities[j]] = j
	}
	return true
}

// Len returns the number of stored components.
func (s *Storage[T]) Len() int {
	return len(s.values)
}

// All yields every entity with a pointer to its component.
func (s *Storage[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for i, e := range s.entities {
			if !yield(e, &s.values[i]) {
				return
			}
		}
	}
}

// Row2 is one result of Join2.
type Row2[A, B any] struct {
	A *A
	B *B
}

// Row3 is one result of Join3.
type Row3[A, B, C any] struct {
	A *A
	B *B
	C *C
}

// Join2 yields entities present in both storages, in a's order. Entities
// missing from b are skipped.
func Join2[A, B any](a *Storage[A], b *Storage[B]) iter.Seq2[Entity, Row2[A, B]] {
	return func(yield func(Entity, Row2[A, B]) bool) {
		for e, va := range a.All() {
			vb, ok := b.Get(e)
			if !ok {
				continue
			}
			if !yield(e, Row2[A, B]{A: va, B: vb}) {
				return
			}
		}
	}
}

// Join3 yields entities present in all three storages, in a's order.
func Join3[A, B, C any](a *Storage[A], b *Storage[B], c *Storage[C]) iter.Seq2[Entity, Row3[A, B, C]] {
	return func(yield func(Entity, Row3[A, B, C]) bool) {
		for e, va := range a.All() {
			vb, ok := b.Get(e)
			if !ok {
				continue
			}
			vc, ok := c.Get(e)
			if !ok {
				continue
			}
			if !yield(e, Row3[A, B, C]{A: va, B: vb, C: vc}) {
				return
			}
		}
	}
}
