package scene

import "github.com/go-drift/easel/pkg/graphics"

// OutlinePadding is the fixed margin added around shape geometry when
// computing selection bounding boxes.
const OutlinePadding = 3.0

// Bounds returns the union bounding box of the given shapes, expanded by
// OutlinePadding on every side. Circles contribute their full width/height
// box, not the visual ellipse, so resize handles operate on the bounding
// rectangle for every kind. Returns false when no shapes are given.
func Bounds(shapes ...Shape) (graphics.Rect, bool) {
	if len(shapes) == 0 {
		return graphics.Rect{}, false
	}
	box := shapes[0].Frame()
	for _, shape := range shapes[1:] {
		box = box.Union(shape.Frame())
	}
	return box.Outset(OutlinePadding), true
}
