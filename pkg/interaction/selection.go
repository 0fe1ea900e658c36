package interaction

import (
	"sort"

	"github.com/go-drift/easel/pkg/scene"
)

// Selection is a set of shape ids. Membership is always keyed by id;
// structural or reference equality of shapes plays no part.
type Selection struct {
	ids map[scene.ShapeID]struct{}
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[scene.ShapeID]struct{})}
}

// Add inserts an id into the selection.
func (s *Selection) Add(id scene.ShapeID) {
	s.ids[id] = struct{}{}
}

// Remove deletes an id from the selection.
func (s *Selection) Remove(id scene.ShapeID) {
	delete(s.ids, id)
}

// Toggle adds the id if absent and removes it if present. Toggling the
// same id twice restores the original selection.
func (s *Selection) Toggle(id scene.ShapeID) {
	if s.Contains(id) {
		s.Remove(id)
		return
	}
	s.Add(id)
}

// Contains reports whether the id is selected.
func (s *Selection) Contains(id scene.ShapeID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Clear removes every id.
func (s *Selection) Clear() {
	clear(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []scene.ShapeID {
	result := make([]scene.ShapeID, 0, len(s.ids))
	for id := range s.ids {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
