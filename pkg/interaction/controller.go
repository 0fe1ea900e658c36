// Package interaction implements the pointer-driven selection and
// manipulation state machine: hover, single and modifier-click multi
// selection, drag-move, and drag-resize with handle flipping.
package interaction

import (
	"fmt"

	"github.com/go-drift/easel/pkg/graphics"
	"github.com/go-drift/easel/pkg/scene"
)

// MinShapeSize is the floor applied to width and height after resize
// normalization, preventing degenerate invisible shapes.
const MinShapeSize = 1.0

// PointerPhase describes the lifecycle stage of a pointer event.
type PointerPhase int

const (
	PointerPhaseDown PointerPhase = iota
	PointerPhaseMove
	PointerPhaseUp
	PointerPhaseCancel
)

// PointerEvent is one input sample from the abstract pointer stream.
type PointerEvent struct {
	Phase    PointerPhase
	Position graphics.Offset
	// Modifier reports whether the multi-select modifier key is held.
	Modifier bool
}

// Mode is the controller's interaction state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeHovering
	ModeSelected
	ModeMoving
	ModeResizing
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeHovering:
		return "hovering"
	case ModeSelected:
		return "selected"
	case ModeMoving:
		return "moving"
	case ModeResizing:
		return "resizing"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Controller owns selection state and applies pointer-driven mutations to
// the store. At most one manipulation (move or resize) is active at a
// time. All mutations flow through [scene.Store.Update], so the change
// sink sees every mutated shape once per frame during a live drag.
type Controller struct {
	store     *scene.Store
	selection *Selection
	hover     scene.ShapeID
	hasHover  bool
	mode      Mode
	handle    scene.Handle
	last      graphics.Offset
}

// NewController creates a controller operating on the given store.
func NewController(store *scene.Store) *Controller {
	return &Controller{
		store:     store,
		selection: NewSelection(),
	}
}

// Mode returns the current interaction state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Selection returns the live selection set.
func (c *Controller) Selection() *Selection {
	return c.selection
}

// ActiveHandle returns the handle driving the current resize, valid only
// in ModeResizing.
func (c *Controller) ActiveHandle() (scene.Handle, bool) {
	return c.handle, c.mode == ModeResizing
}

// Hovering returns the shape currently under the idle pointer.
func (c *Controller) Hovering() (scene.Shape, bool) {
	if !c.hasHover {
		return scene.Shape{}, false
	}
	return c.store.Get(c.hover)
}

// SelectedShapes resolves the selection against the store, skipping ids
// that no longer exist.
func (c *Controller) SelectedShapes() []scene.Shape {
	var result []scene.Shape
	for _, id := range c.selection.IDs() {
		if shape, ok := c.store.Get(id); ok {
			result = append(result, shape)
		}
	}
	return result
}

// Manipulating reports whether a move or resize drag is in progress, and
// the ids under manipulation. The compositor force-dirties these every
// frame because drags mutate shapes faster than snapshot diffing sees.
func (c *Controller) Manipulating() ([]scene.ShapeID, bool) {
	if c.mode != ModeMoving && c.mode != ModeResizing {
		return nil, false
	}
	return c.selection.IDs(), true
}

// Prune drops selection and hover references to ids that have disappeared
// from the store. Called whenever the shape collection changes so the
// selection never dangles.
func (c *Controller) Prune() {
	for _, id := range c.selection.IDs() {
		if !c.store.Contains(id) {
			c.selection.Remove(id)
		}
	}
	if c.hasHover && !c.store.Contains(c.hover) {
		c.hasHover = false
	}
	if c.selection.Len() == 0 {
		switch c.mode {
		case ModeSelected, ModeMoving, ModeResizing:
			c.mode = ModeIdle
		}
	}
}

// HandlePointer advances the state machine by one pointer event.
func (c *Controller) HandlePointer(event PointerEvent) {
	switch event.Phase {
	case PointerPhaseDown:
		c.pointerDown(event.Position, event.Modifier)
	case PointerPhaseMove:
		c.pointerMove(event.Position)
	case PointerPhaseUp, PointerPhaseCancel:
		// A pointer leaving the surface resolves like a release: the
		// manipulated set simply becomes the selection.
		c.pointerUp()
	}
	c.last = event.Position
}

func (c *Controller) pointerDown(position graphics.Offset, modifier bool) {
	// Handles take priority over shape bodies under the same point.
	if c.selection.Len() > 0 {
		if box, ok := scene.Bounds(c.SelectedShapes()...); ok {
			if handle, ok := scene.HitTestHandle(box, position); ok {
				c.mode = ModeResizing
				c.handle = handle
				return
			}
		}
	}

	hits := scene.HitTest(c.store.Painted(), position)
	if len(hits) == 0 {
		c.selection.Clear()
		c.mode = ModeIdle
		return
	}

	top := hits[0]
	if modifier {
		c.selection.Toggle(top.ID)
		if c.selection.Len() == 0 {
			c.mode = ModeIdle
		} else {
			c.mode = ModeSelected
		}
		return
	}

	if !c.selection.Contains(top.ID) {
		c.selection.Clear()
		c.selection.Add(top.ID)
	}
	c.mode = ModeMoving
}

func (c *Controller) pointerMove(position graphics.Offset) {
	switch c.mode {
	case ModeMoving:
		delta := position.Sub(c.last)
		for _, id := range c.selection.IDs() {
			c.store.Update(id, func(s scene.Shape) scene.Shape {
				return s.Translated(delta.X, delta.Y)
			})
		}
	case ModeResizing:
		c.resize(position.Sub(c.last))
	default:
		c.updateHover(position)
	}
}

func (c *Controller) pointerUp() {
	if c.mode != ModeMoving && c.mode != ModeResizing {
		return
	}
	if c.selection.Len() > 0 {
		c.mode = ModeSelected
	} else {
		c.mode = ModeIdle
	}
}

func (c *Controller) updateHover(position graphics.Offset) {
	hits := scene.HitTest(c.store.Painted(), position)
	if len(hits) == 0 {
		c.hasHover = false
		if c.mode == ModeHovering {
			c.mode = ModeIdle
		}
		return
	}
	c.hover = hits[0].ID
	c.hasHover = true
	if c.mode == ModeIdle {
		c.mode = ModeHovering
	}
}

// resize applies the drag delta to every selected shape according to the
// active handle. If a dimension goes negative the shape is normalized by
// shifting position and flipping the sign, and the active handle is
// reassigned to its mirror on that axis. The two axes flip independently;
// a single frame's delta can flip horizontally, vertically, or both.
func (c *Controller) resize(delta graphics.Offset) {
	handle := c.handle
	flipX, flipY := false, false

	for _, id := range c.selection.IDs() {
		c.store.Update(id, func(s scene.Shape) scene.Shape {
			if handle.Left() {
				s.Width -= delta.X
				s.X += delta.X
			} else {
				s.Width += delta.X
			}
			if handle.Top() {
				s.Height -= delta.Y
				s.Y += delta.Y
			} else {
				s.Height += delta.Y
			}

			if s.Width < 0 {
				s.X += s.Width
				s.Width = -s.Width
				flipX = true
			}
			if s.Height < 0 {
				s.Y += s.Height
				s.Height = -s.Height
				flipY = true
			}
			if s.Width < MinShapeSize {
				s.Width = MinShapeSize
			}
			if s.Height < MinShapeSize {
				s.Height = MinShapeSize
			}
			return s
		})
	}

	if flipX {
		c.handle = c.handle.MirrorX()
	}
	if flipY {
		c.handle = c.handle.MirrorY()
	}
}
