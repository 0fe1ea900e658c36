// Package engine wires the drawing-surface engine together: the shape
// store, frame cache, painter, compositor, interaction controller and
// performance monitor, behind a single Engine facade.
//
// The engine is event-driven and cooperative: pointer events and frame
// renders are expected from one goroutine (the front end's loop). Decode
// completions and animation timers arrive from background goroutines but
// only set invalidation flags that the next RenderFrame drains.
package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-drift/easel/pkg/compositor"
	"github.com/go-drift/easel/pkg/frames"
	"github.com/go-drift/easel/pkg/graphics"
	"github.com/go-drift/easel/pkg/interaction"
	"github.com/go-drift/easel/pkg/painter"
	"github.com/go-drift/easel/pkg/perf"
	"github.com/go-drift/easel/pkg/scene"
)

// Default overlay colors.
var (
	defaultSelectionColor = graphics.RGB(0x1E, 0x88, 0xE5)
	defaultHoverColor     = graphics.ColorGray
)

// Options configures a new Engine. The zero value is usable: file/http
// image loading, a fresh monitor, transparent background.
type Options struct {
	// Loader fetches image bytes; nil uses frames.DefaultLoader.
	Loader frames.Loader

	// OnShapeChange is the external collaborator sink, invoked once per
	// mutated shape per frame during live manipulation and once per
	// programmatic edit. May be nil; local mutation never depends on it.
	OnShapeChange func(scene.Shape)

	// Monitor receives frame samples; nil constructs a default monitor
	// (call Engine.Monitor().Start() to begin recording).
	Monitor *perf.Monitor

	// Background fills the canvas before layers are composed.
	Background graphics.Color

	// SelectionColor and HoverColor tint the outline overlays; zero
	// values select the defaults.
	SelectionColor graphics.Color
	HoverColor     graphics.Color
}

// Engine is the composition root of the drawing-surface engine.
type Engine struct {
	store      *scene.Store
	cache      *frames.Cache
	painter    *painter.Painter
	compositor *compositor.Compositor
	controller *interaction.Controller
	monitor    *perf.Monitor

	background     graphics.Color
	selectionColor graphics.Color
	hoverColor     graphics.Color

	frameRequested atomic.Bool

	mu             sync.Mutex
	contentChanged map[scene.ShapeID]struct{}
}

// New creates an engine.
func New(opts Options) *Engine {
	e := &Engine{
		store:          scene.NewStore(),
		monitor:        opts.Monitor,
		background:     opts.Background,
		selectionColor: opts.SelectionColor,
		hoverColor:     opts.HoverColor,
		contentChanged: make(map[scene.ShapeID]struct{}),
	}
	if e.monitor == nil {
		e.monitor = perf.NewMonitor(0)
	}
	if e.selectionColor == graphics.ColorTransparent {
		e.selectionColor = defaultSelectionColor
	}
	if e.hoverColor == graphics.ColorTransparent {
		e.hoverColor = defaultHoverColor
	}

	sink := opts.OnShapeChange
	e.store.SetChangeSink(func(shape scene.Shape) {
		e.frameRequested.Store(true)
		if sink != nil {
			sink(shape)
		}
	})

	e.cache = frames.NewCache(opts.Loader, e.markContentChanged)
	e.painter = &painter.Painter{Frames: e.cache}
	e.compositor = compositor.New(e.cache.Release)
	e.controller = interaction.NewController(e.store)
	return e
}

// SetLogger configures diagnostic logging for the engine and its
// subsystems. By default the engine produces no log output; pass nil to
// restore silence.
func (e *Engine) SetLogger(logger *slog.Logger) {
	e.cache.SetLogger(logger)
}

// Store returns the authoritative shape collection.
func (e *Engine) Store() *scene.Store {
	return e.store
}

// Controller returns the interaction state machine.
func (e *Engine) Controller() *interaction.Controller {
	return e.controller
}

// Monitor returns the performance monitor recording this engine's frames.
func (e *Engine) Monitor() *perf.Monitor {
	return e.monitor
}

// AddShape inserts a shape into the store.
func (e *Engine) AddShape(shape scene.Shape) bool {
	added := e.store.Add(shape)
	if added {
		e.frameRequested.Store(true)
	}
	return added
}

// RemoveShape deletes a shape. Its layer, cached image content and any
// pending animation timer are released on the next RenderFrame.
func (e *Engine) RemoveShape(id scene.ShapeID) bool {
	removed := e.store.Remove(id)
	if removed {
		e.frameRequested.Store(true)
	}
	return removed
}

// HandlePointer feeds one pointer event through the interaction
// controller.
func (e *Engine) HandlePointer(event interaction.PointerEvent) {
	e.controller.HandlePointer(event)
	e.frameRequested.Store(true)
}

// FrameRequested reports whether engine state changed since the last
// RenderFrame. Front ends that render on demand poll this; front ends
// that render every tick may ignore it, since unchanged frames compose
// entirely from cached layers.
func (e *Engine) FrameRequested() bool {
	return e.frameRequested.Load()
}

// markContentChanged records that a shape's cached image content moved on
// (decode completed or an animation advanced). Called from background
// goroutines; drained by RenderFrame on the event loop.
func (e *Engine) markContentChanged(id scene.ShapeID) {
	e.mu.Lock()
	e.contentChanged[id] = struct{}{}
	e.mu.Unlock()
	e.frameRequested.Store(true)
}

// RenderFrame composes one frame onto the canvas and records a
// performance sample. Rendering twice with unchanged state replays the
// identical cached command stream and repaints no layers.
func (e *Engine) RenderFrame(canvas graphics.Canvas) compositor.Stats {
	// Clear the request before reading state: a background invalidation
	// arriving mid-render re-arms it for the next frame instead of being
	// lost.
	e.frameRequested.Store(false)

	e.compositor.Reconcile(e.store)
	e.controller.Prune()

	e.mu.Lock()
	for id := range e.contentChanged {
		e.compositor.Invalidate(id)
	}
	clear(e.contentChanged)
	e.mu.Unlock()

	// Shapes under live manipulation mutate faster than snapshot
	// diffing sees; force them dirty every frame.
	if ids, ok := e.controller.Manipulating(); ok {
		e.compositor.Invalidate(ids...)
	}

	stats := e.compositor.Compose(canvas, e.painter, e.background, e.overlays()...)
	e.monitor.Record(stats.Duration, stats.ObjectCount)
	return stats
}

// overlays builds the always-repainted decorations: the selection outline
// with handles, and a plain outline around a hovered, unselected shape.
func (e *Engine) overlays() []compositor.Overlay {
	var result []compositor.Overlay
	if selected := e.controller.SelectedShapes(); len(selected) > 0 {
		result = append(result, compositor.Overlay{
			Shapes:      selected,
			Color:       e.selectionColor,
			WithHandles: true,
		})
	}
	if hovered, ok := e.controller.Hovering(); ok && !e.controller.Selection().Contains(hovered.ID) {
		result = append(result, compositor.Overlay{
			Shapes: []scene.Shape{hovered},
			Color:  e.hoverColor,
		})
	}
	return result
}

// Close tears the engine down: pending animation timers are cancelled and
// the monitor stops recording.
func (e *Engine) Close() {
	e.cache.Close()
	e.monitor.Stop()
}
