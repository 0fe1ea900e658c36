// Package compositor schedules incremental redraws. It keeps one layer
// record per shape (a snapshot plus a dirty flag and the shape's recorded
// display list) and repaints only layers whose content changed, so frame
// cost tracks the number of changing shapes rather than the total count.
package compositor

import (
	"time"

	"github.com/go-drift/easel/pkg/graphics"
	"github.com/go-drift/easel/pkg/painter"
	"github.com/go-drift/easel/pkg/scene"
)

// layer is the per-shape record: the last reconciled snapshot, the cached
// recorded draw commands, and whether the commands must be re-recorded.
type layer struct {
	snapshot scene.Shape
	display  *graphics.DisplayList
	dirty    bool
}

// Stats describes one composed frame.
type Stats struct {
	// Duration is the wall time spent recording and replaying.
	Duration time.Duration
	// ObjectCount is the number of shapes composed.
	ObjectCount int
	// Repainted is the number of layers re-recorded this frame.
	Repainted int
}

// Compositor reconciles shape layers against the store and composes
// frames from cached display lists.
//
// Not safe for concurrent use; driven from the engine's event loop.
type Compositor struct {
	layers  map[scene.ShapeID]*layer
	order   []scene.ShapeID
	release func(scene.ShapeID)
}

// New creates a compositor. release, if non-nil, is invoked for every
// shape id whose layer is dropped during reconciliation, letting the
// frame cache free decoded content and cancel timers.
func New(release func(scene.ShapeID)) *Compositor {
	return &Compositor{
		layers:  make(map[scene.ShapeID]*layer),
		release: release,
	}
}

// Reconcile diffs the store against the held layer records by shape id:
// unseen ids get a fresh dirty layer, existing ids are marked dirty iff
// their content differs field-by-field from the stored snapshot, and
// layers for removed ids are dropped with their resources released.
func (c *Compositor) Reconcile(store *scene.Store) {
	painted := store.Painted()

	seen := make(map[scene.ShapeID]struct{}, len(painted))
	c.order = c.order[:0]
	for _, shape := range painted {
		seen[shape.ID] = struct{}{}
		c.order = append(c.order, shape.ID)

		rec, ok := c.layers[shape.ID]
		if !ok {
			c.layers[shape.ID] = &layer{snapshot: shape, dirty: true}
			continue
		}
		if rec.snapshot != shape {
			rec.snapshot = shape
			rec.dirty = true
		}
	}

	for id := range c.layers {
		if _, ok := seen[id]; ok {
			continue
		}
		delete(c.layers, id)
		if c.release != nil {
			c.release(id)
		}
	}
}

// Invalidate force-marks a shape's layer dirty regardless of snapshot
// equality. Used for shapes under live manipulation (their fields mutate
// every frame) and for image shapes whose cached content changed without
// any field changing.
func (c *Compositor) Invalidate(ids ...scene.ShapeID) {
	for _, id := range ids {
		if rec, ok := c.layers[id]; ok {
			rec.dirty = true
		}
	}
}

// PendingDirty returns the number of layers currently marked dirty.
func (c *Compositor) PendingDirty() int {
	count := 0
	for _, rec := range c.layers {
		if rec.dirty {
			count++
		}
	}
	return count
}

// Overlay describes the always-repainted selection/hover decoration for
// one composed frame.
type Overlay struct {
	Shapes      []scene.Shape
	Color       graphics.Color
	WithHandles bool
}

// Compose paints one frame: dirty layers are re-recorded through the
// painter into fresh display lists, every layer is replayed in paint
// order, and overlays are drawn last. Overlays are recorded fresh each
// frame because their geometry follows pointer and selection state, not
// shape content.
func (c *Compositor) Compose(canvas graphics.Canvas, p *painter.Painter, background graphics.Color, overlays ...Overlay) Stats {
	start := time.Now()
	repainted := 0

	canvas.Clear(background)

	var recorder graphics.PictureRecorder
	for _, id := range c.order {
		rec, ok := c.layers[id]
		if !ok {
			continue
		}
		if rec.dirty || rec.display == nil {
			target := recorder.BeginRecording(canvas.Size())
			p.Draw(target, rec.snapshot)
			rec.display = recorder.EndRecording()
			rec.dirty = false
			repainted++
		}
		rec.display.Paint(canvas)
	}

	for _, overlay := range overlays {
		if len(overlay.Shapes) > 0 {
			painter.DrawOutline(canvas, overlay.Shapes, overlay.Color, overlay.WithHandles)
		}
	}

	return Stats{
		Duration:    time.Since(start),
		ObjectCount: len(c.order),
		Repainted:   repainted,
	}
}
