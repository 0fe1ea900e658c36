// Package scene holds the shape model: the tagged Shape union, the
// id-keyed Store the engine mutates, derived bounding boxes and the
// pointer hit-testing rules.
package scene

import (
	"fmt"
	"sync/atomic"

	"github.com/go-drift/easel/pkg/graphics"
)

// ShapeID is a stable, unique identifier assigned at creation. Identity
// comparison is always by id, never by structural equality.
type ShapeID uint64

// shapeIDCounter is a global counter for generating unique shape IDs.
// Using a global ensures IDs are unique across all stores.
var shapeIDCounter atomic.Uint64

// NextID returns a fresh shape id. IDs are never reused.
func NextID() ShapeID {
	return ShapeID(shapeIDCounter.Add(1))
}

// Kind discriminates the shape union.
type Kind int

const (
	KindRectangle Kind = iota
	KindCircle
	KindImage
)

// String returns a human-readable representation of the shape kind.
func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	case KindImage:
		return "image"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is one drawable entity. It is a plain value: mutation happens by
// computing a new value and committing it through [Store.Update], never by
// aliasing a shared pointer.
//
// Width and Height are kept non-negative by the interaction controller; a
// resize that would invert them is normalized there via handle flipping.
// Layer determines paint order, ascending.
type Shape struct {
	ID       ShapeID
	Kind     Kind
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64 // radians, applied visually about the shape center

	// Style, used by rectangles and circles.
	Filled       bool
	BorderWidth  float64
	BorderColor  graphics.Color
	FillColor    graphics.Color
	BorderRadius float64 // rectangles only

	// URL locates the raster content of image shapes.
	URL string

	Layer int
}

// NewRectangle creates a rectangle shape with a fresh id.
func NewRectangle(x, y, width, height float64) Shape {
	return Shape{
		ID:     NextID(),
		Kind:   KindRectangle,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Filled: true,
	}
}

// NewCircle creates a circle shape with a fresh id. The visual ellipse is
// inscribed in the width/height bounding box; the box is not forced square.
func NewCircle(x, y, width, height float64) Shape {
	return Shape{
		ID:     NextID(),
		Kind:   KindCircle,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Filled: true,
	}
}

// NewImage creates an image shape with a fresh id.
func NewImage(x, y, width, height float64, url string) Shape {
	return Shape{
		ID:     NextID(),
		Kind:   KindImage,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		URL:    url,
	}
}

// Frame returns the shape's axis-aligned geometry rectangle.
func (s Shape) Frame() graphics.Rect {
	return graphics.RectFromLTWH(s.X, s.Y, s.Width, s.Height)
}

// Center returns the center of the shape's frame.
func (s Shape) Center() graphics.Offset {
	return s.Frame().Center()
}

// Translated returns a copy of the shape shifted by dx, dy.
func (s Shape) Translated(dx, dy float64) Shape {
	s.X += dx
	s.Y += dy
	return s
}
