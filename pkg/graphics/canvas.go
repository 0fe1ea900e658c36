package graphics

import "image"

// FilterQuality controls image sampling quality during scaling.
type FilterQuality int

const (
	FilterQualityNone FilterQuality = iota // Nearest neighbor (pixelated)
	FilterQualityLow                       // Bilinear
	FilterQualityHigh                      // Bicubic (Catmull-Rom)
)

// Canvas records or renders drawing commands.
//
// Canvas is the abstract immediate-mode surface the engine draws onto. A
// frame can be rendered to a concrete surface ([RasterCanvas]) or captured
// into a replayable [DisplayList] via [PictureRecorder]; both see the exact
// same command stream.
type Canvas interface {
	// Save pushes the current transform state.
	Save()

	// Restore pops the most recent transform state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// Rotate rotates the coordinate system by radians.
	Rotate(radians float64)

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)

	// DrawRRect draws a rounded rectangle with the provided paint.
	DrawRRect(rrect RRect, paint Paint)

	// DrawEllipse draws an axis-aligned ellipse with the provided paint.
	DrawEllipse(center Offset, radiusX, radiusY float64, paint Paint)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center Offset, radius float64, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)

	// DrawImageRect draws an image from srcRect to dstRect with sampling
	// quality. A zero srcRect selects the entire image.
	DrawImageRect(img image.Image, srcRect, dstRect Rect, quality FilterQuality)

	// Size returns the size of the canvas in surface units.
	Size() Size
}
