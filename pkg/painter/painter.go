// Package painter turns shapes into canvas draw commands. It owns no
// state: for identical inputs it issues an identical command stream, which
// the compositor's dirty-layer protocol depends on.
package painter

import (
	"image"
	"math"

	"github.com/go-drift/easel/pkg/graphics"
	"github.com/go-drift/easel/pkg/scene"
)

// FrameProvider supplies the current decoded bitmap for an image shape.
// Returning nil means the content is not available yet; the shape is
// simply skipped this frame and picked up on a later redraw.
type FrameProvider interface {
	FrameFor(shape scene.Shape) image.Image
}

// Painter draws individual shapes and selection overlays onto a canvas.
type Painter struct {
	// Frames resolves image shape content. May be nil, in which case
	// image shapes are never drawn.
	Frames FrameProvider
}

// Draw issues the fill/stroke/blit commands for one shape. It never
// panics for a well-formed shape; a nil canvas, a zero-sized frame or a
// not-yet-decoded image is a no-op.
func (p *Painter) Draw(canvas graphics.Canvas, shape scene.Shape) {
	if canvas == nil || shape.Width <= 0 || shape.Height <= 0 {
		return
	}

	rotated := shape.Rotation != 0
	if rotated {
		center := shape.Center()
		canvas.Save()
		canvas.Translate(center.X, center.Y)
		canvas.Rotate(shape.Rotation)
		canvas.Translate(-center.X, -center.Y)
	}

	switch shape.Kind {
	case scene.KindRectangle:
		p.drawRectangle(canvas, shape)
	case scene.KindCircle:
		p.drawCircle(canvas, shape)
	case scene.KindImage:
		p.drawImage(canvas, shape)
	}

	if rotated {
		canvas.Restore()
	}
}

func (p *Painter) drawRectangle(canvas graphics.Canvas, shape scene.Shape) {
	// Clamp defensively; geometry normalization is the controller's job.
	radius := math.Min(shape.BorderRadius, math.Min(shape.Width/2, shape.Height/2))
	if radius < 0 {
		radius = 0
	}
	rrect := graphics.RRect{Rect: shape.Frame(), Radius: radius}
	if shape.Filled {
		canvas.DrawRRect(rrect, graphics.FillPaint(shape.FillColor))
	}
	if shape.BorderWidth > 0 {
		canvas.DrawRRect(rrect, graphics.StrokePaint(shape.BorderColor, shape.BorderWidth))
	}
}

func (p *Painter) drawCircle(canvas graphics.Canvas, shape scene.Shape) {
	center := shape.Center()
	radiusX := shape.Width / 2
	radiusY := shape.Height / 2
	if shape.Filled {
		canvas.DrawEllipse(center, radiusX, radiusY, graphics.FillPaint(shape.FillColor))
	}
	if shape.BorderWidth > 0 {
		canvas.DrawEllipse(center, radiusX, radiusY, graphics.StrokePaint(shape.BorderColor, shape.BorderWidth))
	}
}

func (p *Painter) drawImage(canvas graphics.Canvas, shape scene.Shape) {
	if p.Frames == nil {
		return
	}
	frame := p.Frames.FrameFor(shape)
	if frame == nil {
		return
	}
	canvas.DrawImageRect(frame, graphics.Rect{}, shape.Frame(), graphics.FilterQualityLow)
}
