package painter

import (
	"github.com/go-drift/easel/pkg/graphics"
	"github.com/go-drift/easel/pkg/scene"
)

const (
	outlineRadius      = 2.0
	outlineStrokeWidth = 1.0
	handleStrokeWidth  = 1.5
)

// outlineDash is the dash pattern of the selection rectangle.
var outlineDash = graphics.DashPattern{Intervals: []float64{6, 4}}

// DrawOutline strokes a dashed rounded rectangle around the padded union
// bounding box of the given shapes. With handles enabled it also draws the
// four corner handle circles (white fill, black stroke), one per corner of
// the box, each independently addressable for resize hit testing.
func DrawOutline(canvas graphics.Canvas, shapes []scene.Shape, color graphics.Color, withHandles bool) {
	if canvas == nil {
		return
	}
	box, ok := scene.Bounds(shapes...)
	if !ok {
		return
	}

	dash := outlineDash
	canvas.DrawRRect(graphics.RRect{Rect: box, Radius: outlineRadius}, graphics.Paint{
		Color:       color,
		Style:       graphics.PaintStyleStroke,
		StrokeWidth: outlineStrokeWidth,
		Dash:        &dash,
	})

	if !withHandles {
		return
	}
	for _, handle := range []scene.Handle{
		scene.HandleTopLeft, scene.HandleTopRight,
		scene.HandleBottomLeft, scene.HandleBottomRight,
	} {
		corner := handle.Corner(box)
		canvas.DrawCircle(corner, scene.HandleRadius, graphics.FillPaint(graphics.ColorWhite))
		canvas.DrawCircle(corner, scene.HandleRadius, graphics.StrokePaint(graphics.ColorBlack, handleStrokeWidth))
	}
}
