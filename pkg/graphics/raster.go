package graphics

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// RasterCanvas is a software Canvas implementation backed by an in-memory
// RGBA pixel buffer. It is the reference surface used by the demo front
// ends and by pixel-level tests; any toolkit can blit its Image.
type RasterCanvas struct {
	dc   *gg.Context
	size Size
}

// NewRasterCanvas creates a software canvas with the given pixel dimensions.
func NewRasterCanvas(width, height int) *RasterCanvas {
	return &RasterCanvas{
		dc:   gg.NewContext(width, height),
		size: Size{Width: float64(width), Height: float64(height)},
	}
}

// Image returns the pixel buffer the canvas renders into.
func (c *RasterCanvas) Image() image.Image {
	return c.dc.Image()
}

// RGBA returns the underlying RGBA buffer, or nil if the backing store has
// an unexpected format.
func (c *RasterCanvas) RGBA() *image.RGBA {
	rgba, _ := c.dc.Image().(*image.RGBA)
	return rgba
}

func (c *RasterCanvas) Save() {
	c.dc.Push()
}

func (c *RasterCanvas) Restore() {
	c.dc.Pop()
}

func (c *RasterCanvas) Translate(dx, dy float64) {
	c.dc.Translate(dx, dy)
}

func (c *RasterCanvas) Rotate(radians float64) {
	c.dc.Rotate(radians)
}

func (c *RasterCanvas) Clear(color Color) {
	c.dc.SetColor(color.NRGBA())
	c.dc.Clear()
}

func (c *RasterCanvas) DrawRect(rect Rect, paint Paint) {
	if rect.IsEmpty() {
		return
	}
	c.dc.DrawRectangle(rect.Left, rect.Top, rect.Width(), rect.Height())
	c.paintPath(paint)
}

func (c *RasterCanvas) DrawRRect(rrect RRect, paint Paint) {
	rect := rrect.Rect
	if rect.IsEmpty() {
		return
	}
	if rrect.Radius <= 0 {
		c.DrawRect(rect, paint)
		return
	}
	c.dc.DrawRoundedRectangle(rect.Left, rect.Top, rect.Width(), rect.Height(), rrect.Radius)
	c.paintPath(paint)
}

func (c *RasterCanvas) DrawEllipse(center Offset, radiusX, radiusY float64, paint Paint) {
	if radiusX <= 0 || radiusY <= 0 {
		return
	}
	c.dc.DrawEllipse(center.X, center.Y, radiusX, radiusY)
	c.paintPath(paint)
}

func (c *RasterCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	if radius <= 0 {
		return
	}
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.paintPath(paint)
}

func (c *RasterCanvas) DrawLine(start, end Offset, paint Paint) {
	c.dc.DrawLine(start.X, start.Y, end.X, end.Y)
	c.strokePath(paint)
}

// DrawImageRect blits the source region of img into dstRect. The image is
// resampled to the destination size first, then drawn through the current
// transform, so rotated blits work the same as rotated path fills.
func (c *RasterCanvas) DrawImageRect(img image.Image, srcRect, dstRect Rect, quality FilterQuality) {
	if img == nil || dstRect.IsEmpty() {
		return
	}
	bounds := img.Bounds()
	if srcRect.IsEmpty() {
		srcRect = RectFromLTWH(0, 0, float64(bounds.Dx()), float64(bounds.Dy()))
	}
	src := image.Rect(
		bounds.Min.X+int(math.Floor(srcRect.Left)),
		bounds.Min.Y+int(math.Floor(srcRect.Top)),
		bounds.Min.X+int(math.Ceil(srcRect.Right)),
		bounds.Min.Y+int(math.Ceil(srcRect.Bottom)),
	).Intersect(bounds)
	if src.Empty() {
		return
	}

	dstW := int(math.Round(dstRect.Width()))
	dstH := int(math.Round(dstRect.Height()))
	if dstW <= 0 || dstH <= 0 {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	scalerFor(quality).Scale(scaled, scaled.Bounds(), img, src, xdraw.Src, nil)

	c.dc.Push()
	c.dc.Translate(dstRect.Left, dstRect.Top)
	c.dc.DrawImage(scaled, 0, 0)
	c.dc.Pop()
}

func (c *RasterCanvas) Size() Size {
	return c.size
}

func scalerFor(quality FilterQuality) xdraw.Scaler {
	switch quality {
	case FilterQualityNone:
		return xdraw.NearestNeighbor
	case FilterQualityHigh:
		return xdraw.CatmullRom
	default:
		return xdraw.ApproxBiLinear
	}
}

// paintPath fills and/or strokes the current path and leaves it cleared.
func (c *RasterCanvas) paintPath(paint Paint) {
	switch paint.Style {
	case PaintStyleFill:
		c.dc.SetColor(paint.Color.NRGBA())
		c.dc.Fill()
	case PaintStyleStroke:
		c.strokePath(paint)
	case PaintStyleFillAndStroke:
		c.dc.SetColor(paint.Color.NRGBA())
		c.dc.FillPreserve()
		c.strokePath(paint)
	default:
		c.dc.ClearPath()
	}
}

func (c *RasterCanvas) strokePath(paint Paint) {
	if paint.StrokeWidth <= 0 {
		c.dc.ClearPath()
		return
	}
	c.dc.SetColor(paint.Color.NRGBA())
	c.dc.SetLineWidth(paint.StrokeWidth)
	if paint.Dash != nil && len(paint.Dash.Intervals) >= 2 {
		c.dc.SetDash(paint.Dash.Intervals...)
	}
	c.dc.Stroke()
	c.dc.SetDash()
}
