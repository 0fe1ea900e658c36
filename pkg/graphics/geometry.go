package graphics

import "math"

// Offset represents a 2D point or vector in surface coordinates.
type Offset struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the component-wise difference of two offsets.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Distance returns the Euclidean distance to another point.
func (o Offset) Distance(other Offset) float64 {
	return math.Hypot(o.X-other.X, o.Y-other.Y)
}

// Size represents width and height dimensions in surface units.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty reports whether the size has no visible area.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{
		X: (r.Left + r.Right) * 0.5,
		Y: (r.Top + r.Bottom) * 0.5,
	}
}

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Right-r.Left <= 0 || r.Bottom-r.Top <= 0
}

// Contains reports whether the point lies inside the rectangle.
// Points on the left/top edges are inside; right/bottom edges are outside.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Union returns the smallest rectangle enclosing both rectangles.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

// Outset returns the rectangle expanded by delta on every side.
func (r Rect) Outset(delta float64) Rect {
	return Rect{
		Left:   r.Left - delta,
		Top:    r.Top - delta,
		Right:  r.Right + delta,
		Bottom: r.Bottom + delta,
	}
}

// Translate returns the rectangle shifted by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// RRect represents a rounded rectangle with a uniform corner radius.
type RRect struct {
	Rect   Rect
	Radius float64
}
