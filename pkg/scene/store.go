package scene

import (
	"sort"
)

// Store is the authoritative shape collection, keyed by id. Shapes are
// stored by value; every mutation goes through Add, Remove, Update or
// Apply, which keeps at-most-one-writer-per-frame semantics without
// relying on shared references.
//
// Store is not safe for concurrent use. The engine drives it from a single
// event loop, matching the cooperative concurrency model of the system.
type Store struct {
	order    []ShapeID
	byID     map[ShapeID]Shape
	onChange func(Shape)
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[ShapeID]Shape)}
}

// SetChangeSink registers the collaborator notified once per mutated shape.
// A nil sink is allowed; mutations still apply locally so interactive
// feedback is never blocked by the collaborator.
func (s *Store) SetChangeSink(sink func(Shape)) {
	s.onChange = sink
}

// Len returns the number of shapes in the store.
func (s *Store) Len() int {
	return len(s.byID)
}

// Contains reports whether the store holds a shape with the given id.
func (s *Store) Contains(id ShapeID) bool {
	_, ok := s.byID[id]
	return ok
}

// Get returns the shape with the given id.
func (s *Store) Get(id ShapeID) (Shape, bool) {
	shape, ok := s.byID[id]
	return shape, ok
}

// Add inserts a shape. Adding an id that is already present is a no-op
// returning false; use Update or Apply to change an existing shape.
func (s *Store) Add(shape Shape) bool {
	if _, exists := s.byID[shape.ID]; exists {
		return false
	}
	s.byID[shape.ID] = shape
	s.order = append(s.order, shape.ID)
	return true
}

// Remove deletes the shape with the given id, reporting whether it existed.
func (s *Store) Remove(id ShapeID) bool {
	if _, exists := s.byID[id]; !exists {
		return false
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Update replaces the shape with the given id by the value computed from
// its current value, then notifies the change sink. The mutator must keep
// the id unchanged.
func (s *Store) Update(id ShapeID, mutate func(Shape) Shape) bool {
	current, ok := s.byID[id]
	if !ok {
		return false
	}
	next := mutate(current)
	next.ID = id
	s.byID[id] = next
	if s.onChange != nil {
		s.onChange(next)
	}
	return true
}

// Apply merges an externally produced shape value back into the store by
// id, inserting it if absent. This is the inverse direction of the change
// sink: collaborators hand edited shapes back through here.
func (s *Store) Apply(shape Shape) {
	if _, exists := s.byID[shape.ID]; !exists {
		s.Add(shape)
		return
	}
	s.byID[shape.ID] = shape
	if s.onChange != nil {
		s.onChange(shape)
	}
}

// Shapes returns the shapes in insertion order.
func (s *Store) Shapes() []Shape {
	result := make([]Shape, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id])
	}
	return result
}

// Painted returns the shapes in paint order: ascending layer, with
// insertion order breaking ties. The last element is the visually topmost
// shape.
func (s *Store) Painted() []Shape {
	result := s.Shapes()
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Layer < result[j].Layer
	})
	return result
}
