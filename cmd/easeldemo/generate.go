package main

import (
	"math/rand/v2"

	"github.com/go-drift/easel/pkg/graphics"
	"github.com/go-drift/easel/pkg/scene"
)

// palette cycles through the fill colors of generated shapes.
var palette = []graphics.Color{
	graphics.RGB(0xE5, 0x39, 0x35),
	graphics.RGB(0x8E, 0x24, 0xAA),
	graphics.RGB(0x1E, 0x88, 0xE5),
	graphics.RGB(0x00, 0x89, 0x7B),
	graphics.RGB(0xFD, 0xD8, 0x35),
	graphics.RGB(0xF4, 0x51, 0x1E),
}

// generate builds a random shape population from the demo configuration.
func generate(cfg DemoConfig) []scene.Shape {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))

	shapes := make([]scene.Shape, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		x := sample(rng, cfg.PositionRange)
		y := sample(rng, cfg.PositionRange)
		w := jittered(rng, cfg.DimensionRange, cfg.Jitter)
		h := jittered(rng, cfg.DimensionRange, cfg.Jitter)

		var shape scene.Shape
		switch {
		case len(cfg.ImageURLs) > 0 && i%5 == 4:
			shape = scene.NewImage(x, y, w, h, cfg.ImageURLs[i%len(cfg.ImageURLs)])
		case i%2 == 0:
			shape = scene.NewRectangle(x, y, w, h)
			shape.BorderRadius = rng.Float64() * 12
		default:
			shape = scene.NewCircle(x, y, w, h)
		}

		shape.FillColor = palette[i%len(palette)]
		shape.BorderColor = graphics.ColorBlack
		shape.BorderWidth = sample(rng, cfg.BorderWidthRange)
		shape.Layer = i
		shapes = append(shapes, shape)
	}
	return shapes
}

func sample(rng *rand.Rand, r Range) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// jittered samples the range and perturbs the result by up to ±jitter
// as a fraction of the sampled value.
func jittered(rng *rand.Rand, r Range, jitter float64) float64 {
	value := sample(rng, r)
	if jitter <= 0 {
		return value
	}
	return value * (1 + jitter*(rng.Float64()*2-1))
}
