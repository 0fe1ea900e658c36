package compositor

import (
	"image"
	"testing"

	"github.com/go-drift/easel/pkg/graphics"
	"github.com/go-drift/easel/pkg/painter"
	"github.com/go-drift/easel/pkg/scene"
)

// countCanvas tallies draw calls without rasterizing anything.
type countCanvas struct {
	clears  int
	draws   int
	circles int
	rrects  int
}

func (c *countCanvas) Save()                      {}
func (c *countCanvas) Restore()                   {}
func (c *countCanvas) Translate(dx, dy float64)   {}
func (c *countCanvas) Rotate(radians float64)     {}
func (c *countCanvas) Clear(color graphics.Color) { c.clears++ }
func (c *countCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.draws++
}
func (c *countCanvas) DrawRRect(rrect graphics.RRect, paint graphics.Paint) {
	c.draws++
	c.rrects++
}
func (c *countCanvas) DrawEllipse(center graphics.Offset, rx, ry float64, paint graphics.Paint) {
	c.draws++
}
func (c *countCanvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	c.draws++
	c.circles++
}
func (c *countCanvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	c.draws++
}
func (c *countCanvas) DrawImageRect(img image.Image, src, dst graphics.Rect, quality graphics.FilterQuality) {
	c.draws++
}
func (c *countCanvas) Size() graphics.Size { return graphics.Size{Width: 300, Height: 300} }

func TestReconcileMarksNewShapesDirty(t *testing.T) {
	store := scene.NewStore()
	store.Add(scene.NewRectangle(0, 0, 10, 10))
	store.Add(scene.NewCircle(20, 0, 10, 10))

	c := New(nil)
	c.Reconcile(store)
	if got := c.PendingDirty(); got != 2 {
		t.Fatalf("PendingDirty = %d, want 2", got)
	}
}

func TestSecondFrameRepaintsNothing(t *testing.T) {
	store := scene.NewStore()
	store.Add(scene.NewRectangle(0, 0, 10, 10))
	store.Add(scene.NewRectangle(20, 0, 10, 10))

	c := New(nil)
	p := &painter.Painter{}

	c.Reconcile(store)
	stats := c.Compose(&countCanvas{}, p, graphics.ColorWhite)
	if stats.Repainted != 2 {
		t.Fatalf("first frame Repainted = %d, want 2", stats.Repainted)
	}

	// Nothing changed: the next frame replays cached display lists only.
	c.Reconcile(store)
	stats = c.Compose(&countCanvas{}, p, graphics.ColorWhite)
	if stats.Repainted != 0 {
		t.Fatalf("second frame Repainted = %d, want 0", stats.Repainted)
	}
	if stats.ObjectCount != 2 {
		t.Fatalf("ObjectCount = %d, want 2", stats.ObjectCount)
	}
}

func TestChangedShapeRepaintsOnlyItsLayer(t *testing.T) {
	store := scene.NewStore()
	moving := scene.NewRectangle(0, 0, 10, 10)
	still := scene.NewRectangle(20, 0, 10, 10)
	store.Add(moving)
	store.Add(still)

	c := New(nil)
	p := &painter.Painter{}
	c.Reconcile(store)
	c.Compose(&countCanvas{}, p, graphics.ColorWhite)

	store.Update(moving.ID, func(s scene.Shape) scene.Shape {
		return s.Translated(5, 5)
	})
	c.Reconcile(store)
	stats := c.Compose(&countCanvas{}, p, graphics.ColorWhite)
	if stats.Repainted != 1 {
		t.Fatalf("Repainted = %d, want 1 for the moved shape", stats.Repainted)
	}
}

func TestComposedOutputIsIdenticalAcrossCleanFrames(t *testing.T) {
	store := scene.NewStore()
	store.Add(scene.NewRectangle(0, 0, 10, 10))
	store.Add(scene.NewCircle(20, 0, 10, 10))

	c := New(nil)
	p := &painter.Painter{}
	c.Reconcile(store)

	first := &countCanvas{}
	c.Compose(first, p, graphics.ColorWhite)
	c.Reconcile(store)
	second := &countCanvas{}
	c.Compose(second, p, graphics.ColorWhite)

	if *first != *second {
		t.Fatalf("clean redraw diverged: %+v vs %+v", first, second)
	}
}

func TestRemovedShapeReleasesLayer(t *testing.T) {
	store := scene.NewStore()
	shape := scene.NewRectangle(0, 0, 10, 10)
	store.Add(shape)

	var released []scene.ShapeID
	c := New(func(id scene.ShapeID) { released = append(released, id) })
	c.Reconcile(store)

	store.Remove(shape.ID)
	c.Reconcile(store)
	if len(released) != 1 || released[0] != shape.ID {
		t.Fatalf("released = %v, want the removed id", released)
	}

	stats := c.Compose(&countCanvas{}, &painter.Painter{}, graphics.ColorWhite)
	if stats.ObjectCount != 0 {
		t.Fatalf("ObjectCount = %d, want 0 after removal", stats.ObjectCount)
	}
}

func TestInvalidateForcesRepaint(t *testing.T) {
	store := scene.NewStore()
	shape := scene.NewRectangle(0, 0, 10, 10)
	store.Add(shape)

	c := New(nil)
	p := &painter.Painter{}
	c.Reconcile(store)
	c.Compose(&countCanvas{}, p, graphics.ColorWhite)

	// Content changed out of band (an animated frame advanced), the
	// snapshot fields did not.
	c.Invalidate(shape.ID)
	c.Reconcile(store)
	stats := c.Compose(&countCanvas{}, p, graphics.ColorWhite)
	if stats.Repainted != 1 {
		t.Fatalf("Repainted = %d, want 1 after Invalidate", stats.Repainted)
	}
}

func TestInvalidateUnknownIDIsNoOp(t *testing.T) {
	c := New(nil)
	c.Invalidate(scene.NextID())
	if c.PendingDirty() != 0 {
		t.Fatal("Invalidate of an unknown id must not create a layer")
	}
}

func TestComposeDrawsOverlaysEachFrame(t *testing.T) {
	store := scene.NewStore()
	shape := scene.NewRectangle(10, 10, 40, 40)
	store.Add(shape)

	c := New(nil)
	p := &painter.Painter{}
	c.Reconcile(store)

	canvas := &countCanvas{}
	c.Compose(canvas, p, graphics.ColorWhite, Overlay{
		Shapes:      []scene.Shape{shape},
		Color:       graphics.ColorBlue,
		WithHandles: true,
	})
	if canvas.clears != 1 {
		t.Fatalf("clears = %d, want 1", canvas.clears)
	}
	// Shape fill rrect, dashed outline rrect, 8 handle circle strokes.
	if canvas.rrects != 2 {
		t.Fatalf("rrects = %d, want shape plus outline", canvas.rrects)
	}
	if canvas.circles != 8 {
		t.Fatalf("circles = %d, want 8 handle draws", canvas.circles)
	}
}
