package scene

import (
	"fmt"

	"github.com/go-drift/easel/pkg/graphics"
)

// Handle identifies one of the four corner affordances used to resize a
// selection's bounding box.
type Handle int

const (
	HandleTopLeft Handle = iota
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
)

// handleOrder is the fixed priority used for handle hit testing.
var handleOrder = [4]Handle{HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight}

// String returns a human-readable representation of the handle.
func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top_left"
	case HandleTopRight:
		return "top_right"
	case HandleBottomLeft:
		return "bottom_left"
	case HandleBottomRight:
		return "bottom_right"
	default:
		return fmt.Sprintf("Handle(%d)", int(h))
	}
}

// Corner returns the handle's anchor point on the given bounding box.
func (h Handle) Corner(box graphics.Rect) graphics.Offset {
	switch h {
	case HandleTopLeft:
		return graphics.Offset{X: box.Left, Y: box.Top}
	case HandleTopRight:
		return graphics.Offset{X: box.Right, Y: box.Top}
	case HandleBottomLeft:
		return graphics.Offset{X: box.Left, Y: box.Bottom}
	default:
		return graphics.Offset{X: box.Right, Y: box.Bottom}
	}
}

// MirrorX returns the handle on the opposite horizontal side. A resize
// drag that inverts a shape's width reassigns the active handle this way.
func (h Handle) MirrorX() Handle {
	switch h {
	case HandleTopLeft:
		return HandleTopRight
	case HandleTopRight:
		return HandleTopLeft
	case HandleBottomLeft:
		return HandleBottomRight
	default:
		return HandleBottomLeft
	}
}

// MirrorY returns the handle on the opposite vertical side.
func (h Handle) MirrorY() Handle {
	switch h {
	case HandleTopLeft:
		return HandleBottomLeft
	case HandleBottomLeft:
		return HandleTopLeft
	case HandleTopRight:
		return HandleBottomRight
	default:
		return HandleTopRight
	}
}

// Left reports whether the handle sits on the left edge of the box.
func (h Handle) Left() bool {
	return h == HandleTopLeft || h == HandleBottomLeft
}

// Top reports whether the handle sits on the top edge of the box.
func (h Handle) Top() bool {
	return h == HandleTopLeft || h == HandleTopRight
}
