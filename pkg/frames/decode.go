package frames

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"time"

	// Static image formats decodable through image.Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// defaultFrameDelay substitutes for GIF frames that declare no delay,
// matching common browser behavior.
const defaultFrameDelay = 100 * time.Millisecond

type decoded struct {
	static *image.RGBA
	frames []*image.RGBA
	delays []time.Duration
}

// decodeContent turns raw bytes into either a single static bitmap or a
// coalesced animation frame sequence.
func decodeContent(data []byte) (decoded, error) {
	if isGIF(data) {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return decoded{}, fmt.Errorf("decode gif: %w", err)
		}
		if len(g.Image) > 1 {
			frames, delays := coalesce(g)
			return decoded{frames: frames, delays: delays}, nil
		}
		// Single-frame GIFs are treated as static images.
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return decoded{}, fmt.Errorf("decode image: %w", err)
	}
	return decoded{static: toRGBA(img)}, nil
}

func isGIF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a"))
}

// coalesce flattens a GIF's partial frames into full-canvas bitmaps,
// honoring per-frame disposal, so playback is a plain index increment with
// no per-frame compositing or redecoding.
func coalesce(g *gif.GIF) ([]*image.RGBA, []time.Duration) {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() && len(g.Image) > 0 {
		bounds = g.Image[0].Bounds()
	}

	canvas := image.NewRGBA(bounds)
	frames := make([]*image.RGBA, 0, len(g.Image))
	delays := make([]time.Duration, 0, len(g.Image))

	for i, frame := range g.Image {
		var restore *image.RGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			restore = cloneRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		frames = append(frames, cloneRGBA(canvas))
		delays = append(delays, frameDelay(g, i))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = restore
		}
	}
	return frames, delays
}

func frameDelay(g *gif.GIF, i int) time.Duration {
	if i >= len(g.Delay) || g.Delay[i] <= 0 {
		return defaultFrameDelay
	}
	return time.Duration(g.Delay[i]) * 10 * time.Millisecond
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)
	return rgba
}
