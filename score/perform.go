package score

import (
	"context"
	"math"

	"github.com/simukka/touchsynth/input"
)

// Engine renders audio on demand. *dsp.Context satisfies it.
type Engine interface {
	SampleRate() float64
	Render(out []float32)
}

// Perform plays cmds through router, rendering eng up to each command's
// time before issuing it, then renders tail more seconds so releases and
// echoes ring out. Rendering stops early if ctx is cancelled; the audio
// rendered so far is returned with ctx's error.
func Perform(ctx context.Context, eng Engine, router *input.Router, cmds []Command, tail float64) ([]float32, error) {
	sr := eng.SampleRate()
	var out []float32

	renderTo := func(t float64) {
		target := int(math.Round(t * sr))
		if n := target - len(out); n > 0 {
			chunk := make([]float32, n)
			eng.Render(chunk)
			out = append(out, chunk...)
		}
	}

	var end float64
	for _, c := range cmds {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		renderTo(c.Time)
		switch c.Kind {
		case Press:
			router.Press(c.ID, c.X, c.Y)
		case Move:
			router.Move(c.ID, c.X, c.Y)
		case Release:
			router.Release(c.ID)
		}
		end = c.Time
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	renderTo(end + tail)
	return out, nil
}
