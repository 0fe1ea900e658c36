package graphics

import "fmt"

// PaintStyle describes how shapes are filled or stroked.
type PaintStyle int

const (
	// PaintStyleFill fills the shape interior.
	PaintStyleFill PaintStyle = iota

	// PaintStyleStroke draws only the outline.
	PaintStyleStroke

	// PaintStyleFillAndStroke fills and then strokes the outline.
	PaintStyleFillAndStroke
)

// String returns a human-readable representation of the paint style.
func (s PaintStyle) String() string {
	switch s {
	case PaintStyleFill:
		return "fill"
	case PaintStyleStroke:
		return "stroke"
	case PaintStyleFillAndStroke:
		return "fill_and_stroke"
	default:
		return fmt.Sprintf("PaintStyle(%d)", int(s))
	}
}

// DashPattern defines a stroke dash pattern as alternating on/off lengths.
//
// The pattern repeats along the stroke. For example, Intervals of [10, 5]
// draws 10 units on, 5 units off, repeating.
type DashPattern struct {
	Intervals []float64 // Alternating on/off lengths; must have even count >= 2, all > 0
	Phase     float64   // Starting offset into the pattern
}

// Paint describes how to draw a shape on the canvas.
type Paint struct {
	Color       Color
	Style       PaintStyle // Fill, stroke, or both
	StrokeWidth float64    // Width of stroke in surface units
	Dash        *DashPattern
}

// DefaultPaint returns a basic opaque black fill paint.
func DefaultPaint() Paint {
	return Paint{
		Color:       ColorBlack,
		Style:       PaintStyleFill,
		StrokeWidth: 1,
	}
}

// FillPaint returns a solid fill paint in the given color.
func FillPaint(c Color) Paint {
	return Paint{Color: c, Style: PaintStyleFill}
}

// StrokePaint returns a stroke-only paint in the given color and width.
func StrokePaint(c Color, width float64) Paint {
	return Paint{Color: c, Style: PaintStyleStroke, StrokeWidth: width}
}
