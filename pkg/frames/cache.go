// Package frames decodes and caches raster content for image shapes.
//
// Each cache entry is keyed by shape id, never by URL: two shapes with the
// same URL decode independently. This wastes a little memory but keeps
// entry lifecycle trivially tied to shape lifecycle, an accepted
// inefficiency.
//
// Animated GIFs are decoded once into a coalesced frame sequence with
// per-frame delays. Playback is driven by at most one outstanding timer
// per shape id; the timer handle doubles as the cancellation token and is
// stopped before any replacement is scheduled and when the shape is
// released or the cache is closed.
package frames

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/go-drift/easel/pkg/scene"
)

// Cache holds decoded image content per shape id and schedules animation
// frame advancement.
//
// Cache methods are safe for concurrent use; decode results arrive from
// worker goroutines and timer callbacks fire off the event loop, so the
// cache is the one component that must lock.
type Cache struct {
	mu         sync.Mutex
	loader     Loader
	invalidate func(scene.ShapeID)
	logger     *slog.Logger
	entries    map[scene.ShapeID]*entry
	closed     bool
}

type entry struct {
	url        string
	decoding   bool
	failed     bool
	static     *image.RGBA
	frames     []*image.RGBA
	delays     []time.Duration
	frameIndex int
	timer      *time.Timer
}

// NewCache creates a cache. loader fetches raw bytes for a URL (nil uses
// DefaultLoader). invalidate is called, possibly from a timer or decode
// goroutine, whenever a shape's content changed and its layer must be
// redrawn; nil is allowed.
func NewCache(loader Loader, invalidate func(scene.ShapeID)) *Cache {
	if loader == nil {
		loader = DefaultLoader
	}
	if invalidate == nil {
		invalidate = func(scene.ShapeID) {}
	}
	return &Cache{
		loader:     loader,
		invalidate: invalidate,
		logger:     slog.New(nopHandler{}),
		entries:    make(map[scene.ShapeID]*entry),
	}
}

// SetLogger configures diagnostic logging. Pass nil to silence (default).
func (c *Cache) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(nopHandler{})
	}
	c.mu.Lock()
	c.logger = logger
	c.mu.Unlock()
}

// FrameFor returns the current bitmap for an image shape, or nil when no
// content is available yet. The first call for an unseen shape id (or for
// a changed URL) starts a single asynchronous decode; the caller draws
// nothing this frame and the invalidate callback triggers a redraw once
// content arrives. For animated shapes the return value is the current
// frame, and a pending advance is scheduled if none is outstanding.
func (c *Cache) FrameFor(shape scene.Shape) image.Image {
	if shape.Kind != scene.KindImage || shape.URL == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}

	e := c.entries[shape.ID]
	if e == nil || e.url != shape.URL {
		if e != nil && e.timer != nil {
			e.timer.Stop()
		}
		e = &entry{url: shape.URL, decoding: true}
		c.entries[shape.ID] = e
		go c.decode(shape.ID, shape.URL)
		return nil
	}
	if e.decoding || e.failed {
		return nil
	}
	if e.static != nil {
		return e.static
	}
	if len(e.frames) > 0 {
		c.scheduleLocked(shape.ID, e)
		return e.frames[e.frameIndex]
	}
	return nil
}

// CurrentFrame returns the animation frame index for a shape id, and
// whether the shape has an animated entry.
func (c *Cache) CurrentFrame(id scene.ShapeID) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[id]
	if e == nil || len(e.frames) == 0 {
		return 0, false
	}
	return e.frameIndex, true
}

// Release drops the entry for a shape id and cancels any pending frame
// advance. Called when the shape disappears from the store.
func (c *Cache) Release(id scene.ShapeID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[id]
	if e == nil {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	delete(c.entries, id)
}

// Close cancels all pending timers and drops every entry. In-flight
// decodes are abandoned; their results are discarded on arrival.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for _, e := range c.entries {
		if e.timer != nil {
			e.timer.Stop()
			e.timer = nil
		}
	}
	c.entries = nil
}

// scheduleLocked arms the single advance timer for an animated entry.
// Callers hold c.mu. An already-armed timer is left alone so timers never
// accumulate across redraws.
func (c *Cache) scheduleLocked(id scene.ShapeID, e *entry) {
	if e.timer != nil || len(e.frames) < 2 {
		return
	}
	delay := e.delays[e.frameIndex]
	e.timer = time.AfterFunc(delay, func() {
		c.advance(id)
	})
}

// advance moves an animated entry to its next frame, reschedules, and
// requests a redraw of the affected shape's layer.
func (c *Cache) advance(id scene.ShapeID) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	e := c.entries[id]
	if e == nil || len(e.frames) == 0 {
		c.mu.Unlock()
		return
	}
	e.timer = nil
	e.frameIndex = (e.frameIndex + 1) % len(e.frames)
	c.scheduleLocked(id, e)
	invalidate := c.invalidate
	c.mu.Unlock()

	invalidate(id)
}

// decode runs on its own goroutine: at most one is in flight per shape id
// because entries are only created (with decoding=true) under the lock.
func (c *Cache) decode(id scene.ShapeID, url string) {
	data, err := c.loader(context.Background(), url)

	var result decoded
	if err == nil {
		result, err = decodeContent(data)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	e := c.entries[id]
	if e == nil || e.url != url {
		// Shape removed or URL swapped while decoding; drop the result.
		c.mu.Unlock()
		return
	}
	e.decoding = false
	if err != nil {
		e.failed = true
		logger := c.logger
		c.mu.Unlock()
		logger.Warn("image decode failed", "shape", uint64(id), "url", url, "error", err)
		return
	}
	e.static = result.static
	e.frames = result.frames
	e.delays = result.delays
	e.frameIndex = 0
	invalidate := c.invalidate
	c.mu.Unlock()

	invalidate(id)
}

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
