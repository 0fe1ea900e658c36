package scene

import (
	"math"

	"github.com/go-drift/easel/pkg/graphics"
)

// HandleRadius is the radius of the corner handle circles, used both for
// drawing and for handle hit testing.
const HandleRadius = 5.0

// HitTest returns the shapes under the point ordered from visually topmost
// to bottommost, so callers can take index 0 as "the hit shape". The input
// must be in paint order (ascending layer), as returned by [Store.Painted].
//
// Rectangles and images use axis-aligned containment; the Rotation field
// is deliberately ignored, so the hit region of a rotated shape stays
// axis-aligned even though it renders rotated. Circles use the true
// distance from the center against min(width, height)/2.
func HitTest(painted []Shape, point graphics.Offset) []Shape {
	var hits []Shape
	for i := len(painted) - 1; i >= 0; i-- {
		if hitShape(painted[i], point) {
			hits = append(hits, painted[i])
		}
	}
	return hits
}

func hitShape(shape Shape, point graphics.Offset) bool {
	switch shape.Kind {
	case KindCircle:
		radius := math.Min(shape.Width, shape.Height) / 2
		return point.Distance(shape.Center()) <= radius
	default:
		return shape.Frame().Contains(point)
	}
}

// HitTestHandle tests the point against the four corner handle circles of
// a selection bounding box in TL, TR, BL, BR priority order.
func HitTestHandle(box graphics.Rect, point graphics.Offset) (Handle, bool) {
	for _, handle := range handleOrder {
		if point.Distance(handle.Corner(box)) <= HandleRadius {
			return handle, true
		}
	}
	return 0, false
}
