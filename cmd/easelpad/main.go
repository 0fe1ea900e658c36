// Command easelpad is an interactive front end for the drawing engine.
// It is deliberately thin: ebiten supplies a window, a mouse and a frame
// loop, while hit testing, selection, dragging, resizing and incremental
// redraw all happen inside the engine. The engine itself has no
// dependency on ebiten or any other toolkit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/go-drift/easel/pkg/engine"
	"github.com/go-drift/easel/pkg/graphics"
	"github.com/go-drift/easel/pkg/interaction"
	"github.com/go-drift/easel/pkg/scene"
)

const (
	screenWidth  = 960
	screenHeight = 640
)

type app struct {
	eng    *engine.Engine
	canvas *graphics.RasterCanvas
	tex    *ebiten.Image
	last   graphics.Offset
}

func (a *app) Update() error {
	x, y := ebiten.CursorPosition()
	position := graphics.Offset{X: float64(x), Y: float64(y)}
	modifier := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		a.eng.HandlePointer(interaction.PointerEvent{
			Phase:    interaction.PointerPhaseDown,
			Position: position,
			Modifier: modifier,
		})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		a.eng.HandlePointer(interaction.PointerEvent{
			Phase:    interaction.PointerPhaseUp,
			Position: position,
			Modifier: modifier,
		})
	case position != a.last:
		a.eng.HandlePointer(interaction.PointerEvent{
			Phase:    interaction.PointerPhaseMove,
			Position: position,
			Modifier: modifier,
		})
	}
	a.last = position
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	a.eng.RenderFrame(a.canvas)
	if rgba := a.canvas.RGBA(); rgba != nil {
		if a.tex == nil {
			a.tex = ebiten.NewImage(screenWidth, screenHeight)
		}
		a.tex.WritePixels(rgba.Pix)
		screen.DrawImage(a.tex, nil)
	}
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	verbose := flag.Bool("v", false, "enable diagnostic logging")
	flag.Parse()

	eng := engine.New(engine.Options{Background: graphics.ColorWhite})
	defer eng.Close()
	if *verbose {
		eng.SetLogger(slog.Default())
	}

	for _, shape := range starterShapes(flag.Args()) {
		eng.AddShape(shape)
	}

	game := &app{
		eng:    eng,
		canvas: graphics.NewRasterCanvas(screenWidth, screenHeight),
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("easelpad")
	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintf(os.Stderr, "easelpad: %v\n", err)
		os.Exit(1)
	}
}

// starterShapes seeds the scene: a few styled rectangles and circles,
// plus an image shape per URL given on the command line.
func starterShapes(urls []string) []scene.Shape {
	rect := scene.NewRectangle(80, 80, 180, 120)
	rect.FillColor = graphics.RGB(0x1E, 0x88, 0xE5)
	rect.BorderColor = graphics.ColorBlack
	rect.BorderWidth = 2
	rect.BorderRadius = 10

	circle := scene.NewCircle(320, 160, 140, 140)
	circle.FillColor = graphics.RGB(0xE5, 0x39, 0x35)
	circle.BorderColor = graphics.ColorBlack
	circle.BorderWidth = 2
	circle.Layer = 1

	slab := scene.NewRectangle(200, 300, 240, 90)
	slab.FillColor = graphics.RGB(0x00, 0x89, 0x7B)
	slab.Layer = 2

	shapes := []scene.Shape{rect, circle, slab}
	for i, url := range urls {
		img := scene.NewImage(520, 80+float64(i)*180, 160, 160, url)
		img.Layer = 3 + i
		shapes = append(shapes, img)
	}
	return shapes
}
