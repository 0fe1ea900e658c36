package frames

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-drift/easel/pkg/scene"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// gifBytes encodes a two-frame animation with 10ms per-frame delays.
func gifBytes(t *testing.T) []byte {
	t.Helper()
	palette := color.Palette{color.Black, color.White}
	first := image.NewPaletted(image.Rect(0, 0, 4, 4), palette)
	second := image.NewPaletted(image.Rect(0, 0, 4, 4), palette)
	for i := range second.Pix {
		second.Pix[i] = 1
	}
	var buf bytes.Buffer
	err := gif.EncodeAll(&buf, &gif.GIF{
		Image: []*image.Paletted{first, second},
		Delay: []int{1, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func fixedLoader(data []byte) Loader {
	return func(context.Context, string) ([]byte, error) {
		return data, nil
	}
}

func waitInvalidate(t *testing.T, ch <-chan scene.ShapeID) scene.ShapeID {
	t.Helper()
	select {
	case id := <-ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for invalidate")
		return 0
	}
}

func TestFrameForDecodesAsynchronously(t *testing.T) {
	invalidated := make(chan scene.ShapeID, 16)
	cache := NewCache(fixedLoader(pngBytes(t)), func(id scene.ShapeID) {
		invalidated <- id
	})
	defer cache.Close()

	shape := scene.NewImage(0, 0, 10, 10, "static.png")
	if frame := cache.FrameFor(shape); frame != nil {
		t.Fatal("first call must return nil while the decode is in flight")
	}

	if got := waitInvalidate(t, invalidated); got != shape.ID {
		t.Fatalf("invalidated id = %v, want %v", got, shape.ID)
	}
	if frame := cache.FrameFor(shape); frame == nil {
		t.Fatal("decoded frame not returned after invalidation")
	}
}

func TestFrameForIgnoresNonImageShapes(t *testing.T) {
	cache := NewCache(fixedLoader(pngBytes(t)), nil)
	defer cache.Close()

	if cache.FrameFor(scene.NewRectangle(0, 0, 10, 10)) != nil {
		t.Fatal("rectangle must not resolve to a frame")
	}
	empty := scene.NewImage(0, 0, 10, 10, "")
	if cache.FrameFor(empty) != nil {
		t.Fatal("empty URL must not resolve to a frame")
	}
}

func TestAnimatedGIFAdvancesFrames(t *testing.T) {
	invalidated := make(chan scene.ShapeID, 16)
	cache := NewCache(fixedLoader(gifBytes(t)), func(id scene.ShapeID) {
		invalidated <- id
	})
	defer cache.Close()

	shape := scene.NewImage(0, 0, 10, 10, "anim.gif")
	cache.FrameFor(shape)
	waitInvalidate(t, invalidated) // decode finished

	if frame := cache.FrameFor(shape); frame == nil {
		t.Fatal("animated entry returned no frame")
	}
	if index, ok := cache.CurrentFrame(shape.ID); !ok || index != 0 {
		t.Fatalf("CurrentFrame = %d/%v, want 0/true", index, ok)
	}

	// Drawing the frame armed the advance timer; the next invalidation
	// is the playback tick.
	waitInvalidate(t, invalidated)
	if index, _ := cache.CurrentFrame(shape.ID); index != 1 {
		t.Fatalf("CurrentFrame = %d, want 1 after one tick", index)
	}

	// The sequence wraps around.
	cache.FrameFor(shape)
	waitInvalidate(t, invalidated)
	if index, _ := cache.CurrentFrame(shape.ID); index != 0 {
		t.Fatalf("CurrentFrame = %d, want wrap back to 0", index)
	}
}

func TestReleaseCancelsPlayback(t *testing.T) {
	invalidated := make(chan scene.ShapeID, 16)
	cache := NewCache(fixedLoader(gifBytes(t)), func(id scene.ShapeID) {
		invalidated <- id
	})
	defer cache.Close()

	shape := scene.NewImage(0, 0, 10, 10, "anim.gif")
	cache.FrameFor(shape)
	waitInvalidate(t, invalidated)
	cache.FrameFor(shape)

	cache.Release(shape.ID)
	if _, ok := cache.CurrentFrame(shape.ID); ok {
		t.Fatal("released entry still present")
	}

	// Any tick racing the release finds no entry and must not invalidate
	// after this point settles.
	time.Sleep(50 * time.Millisecond)
	drained := len(invalidated)
	time.Sleep(50 * time.Millisecond)
	if len(invalidated) != drained {
		t.Fatal("playback kept ticking after Release")
	}
}

func TestDecodeFailureDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	loader := func(context.Context, string) ([]byte, error) {
		calls.Add(1)
		return nil, errors.New("boom")
	}
	cache := NewCache(loader, nil)
	defer cache.Close()

	shape := scene.NewImage(0, 0, 10, 10, "missing.png")
	cache.FrameFor(shape)

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	// Repeated draws of a failed entry never relaunch the decode.
	for range 5 {
		if cache.FrameFor(shape) != nil {
			t.Fatal("failed entry produced a frame")
		}
	}
	time.Sleep(20 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestChangedURLRestartsDecode(t *testing.T) {
	invalidated := make(chan scene.ShapeID, 16)
	cache := NewCache(fixedLoader(pngBytes(t)), func(id scene.ShapeID) {
		invalidated <- id
	})
	defer cache.Close()

	shape := scene.NewImage(0, 0, 10, 10, "a.png")
	cache.FrameFor(shape)
	waitInvalidate(t, invalidated)
	if cache.FrameFor(shape) == nil {
		t.Fatal("first URL did not decode")
	}

	shape.URL = "b.png"
	if cache.FrameFor(shape) != nil {
		t.Fatal("stale frame returned for a swapped URL")
	}
	waitInvalidate(t, invalidated)
	if cache.FrameFor(shape) == nil {
		t.Fatal("second URL did not decode")
	}
}

func TestCloseDiscardsLateResults(t *testing.T) {
	data := pngBytes(t)
	release := make(chan struct{})
	loader := func(context.Context, string) ([]byte, error) {
		<-release
		return data, nil
	}
	var invalidations atomic.Int32
	cache := NewCache(loader, func(scene.ShapeID) {
		invalidations.Add(1)
	})

	shape := scene.NewImage(0, 0, 10, 10, "slow.png")
	cache.FrameFor(shape)
	cache.Close()
	close(release)

	time.Sleep(50 * time.Millisecond)
	if got := invalidations.Load(); got != 0 {
		t.Fatalf("closed cache invalidated %d times, want 0", got)
	}
	if cache.FrameFor(shape) != nil {
		t.Fatal("closed cache returned a frame")
	}
}

func TestDecodeContentCoalescesDisposalBackground(t *testing.T) {
	palette := color.Palette{color.RGBA{R: 255, A: 255}, color.RGBA{G: 255, A: 255}}
	full := image.NewPaletted(image.Rect(0, 0, 4, 4), palette)
	patch := image.NewPaletted(image.Rect(0, 0, 2, 2), palette)
	for i := range patch.Pix {
		patch.Pix[i] = 1
	}
	var buf bytes.Buffer
	err := gif.EncodeAll(&buf, &gif.GIF{
		Image:    []*image.Paletted{full, patch},
		Delay:    []int{0, 0},
		Disposal: []byte{gif.DisposalBackground, gif.DisposalBackground},
		Config: image.Config{
			Width:  4,
			Height: 4,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	result, err := decodeContent(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(result.frames))
	}
	// Zero declared delay falls back to the default tick.
	if result.delays[0] != defaultFrameDelay {
		t.Fatalf("delay = %v, want default %v", result.delays[0], defaultFrameDelay)
	}
	// Frame 1 composed onto a cleared canvas: the area outside the patch
	// is transparent, not frame 0's pixels.
	_, _, _, a := result.frames[1].At(3, 3).RGBA()
	if a != 0 {
		t.Fatal("background disposal leaked previous frame pixels")
	}
}

func TestDecodeContentSingleFrameGIFIsStatic(t *testing.T) {
	palette := color.Palette{color.Black, color.White}
	frame := image.NewPaletted(image.Rect(0, 0, 4, 4), palette)
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, &gif.GIF{Image: []*image.Paletted{frame}, Delay: []int{0}}); err != nil {
		t.Fatal(err)
	}

	result, err := decodeContent(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if result.static == nil || len(result.frames) != 0 {
		t.Fatal("single-frame GIF must decode as a static image")
	}
}
