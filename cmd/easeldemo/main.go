// Command easeldemo runs the drawing engine headless: it populates a
// random scene from easel.yaml, replays a scripted pointer session over
// it, dumps rendered frames as PNGs and exports the performance samples
// as CSV.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-drift/easel/pkg/engine"
	"github.com/go-drift/easel/pkg/graphics"
	"github.com/go-drift/easel/pkg/interaction"
	"github.com/go-drift/easel/pkg/scene"
)

func main() {
	configPath := flag.String("config", "easel.yaml", "path to the demo configuration")
	outDir := flag.String("out", "out", "directory for rendered PNG frames")
	csvPath := flag.String("csv", "perf.csv", "path for the performance CSV export")
	verbose := flag.Bool("v", false, "enable diagnostic logging")
	flag.Parse()

	if err := run(*configPath, *outDir, *csvPath, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "easeldemo: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, outDir, csvPath string, verbose bool) error {
	cfg, err := LoadOptional(configPath)
	if err != nil {
		return err
	}

	eng := engine.New(engine.Options{Background: graphics.ColorWhite})
	defer eng.Close()
	if verbose {
		eng.SetLogger(slog.Default())
	}

	eng.Monitor().EnableHeapSampling(true)
	eng.Monitor().Start()

	for _, shape := range generate(cfg.Demo) {
		eng.AddShape(shape)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	canvas := graphics.NewRasterCanvas(cfg.Width, cfg.Height)
	session := scriptSession(eng.Store())

	for i := 0; i < cfg.Frames; i++ {
		if i < len(session) {
			eng.HandlePointer(session[i])
		}
		stats := eng.RenderFrame(canvas)
		if verbose {
			slog.Info("frame", "index", i, "repainted", stats.Repainted, "objects", stats.ObjectCount)
		}
		if err := writePNG(canvas, filepath.Join(outDir, fmt.Sprintf("frame_%03d.png", i))); err != nil {
			return err
		}
	}

	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()
	if err := eng.Monitor().WriteCSV(file); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

// scriptSession builds a pointer script that selects the first shape,
// drags it, then resizes it by its bottom-right handle, so headless runs
// exercise the full interaction path.
func scriptSession(store *scene.Store) []interaction.PointerEvent {
	shapes := store.Painted()
	if len(shapes) == 0 {
		return nil
	}
	target := shapes[len(shapes)-1] // topmost
	center := target.Center()

	events := []interaction.PointerEvent{
		{Phase: interaction.PointerPhaseMove, Position: center},
		{Phase: interaction.PointerPhaseDown, Position: center},
	}
	// Drag-move in small steps.
	position := center
	for i := 0; i < 10; i++ {
		position = position.Add(graphics.Offset{X: 3, Y: 2})
		events = append(events, interaction.PointerEvent{Phase: interaction.PointerPhaseMove, Position: position})
	}
	events = append(events, interaction.PointerEvent{Phase: interaction.PointerPhaseUp, Position: position})

	// Resize by the bottom-right handle of the moved shape.
	moved := target.Translated(30, 20)
	box, ok := scene.Bounds(moved)
	if !ok {
		return events
	}
	corner := scene.HandleBottomRight.Corner(box)
	events = append(events, interaction.PointerEvent{Phase: interaction.PointerPhaseDown, Position: corner})
	position = corner
	for i := 0; i < 10; i++ {
		position = position.Add(graphics.Offset{X: 2, Y: 2})
		events = append(events, interaction.PointerEvent{Phase: interaction.PointerPhaseMove, Position: position})
	}
	events = append(events, interaction.PointerEvent{Phase: interaction.PointerPhaseUp, Position: position})

	return events
}

func writePNG(canvas *graphics.RasterCanvas, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, canvas.Image()); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}
