package dsp

import (
	"math"

	"github.com/simukka/touchsynth/synth"
)

// Oscillator is a naive (non band-limited) periodic source. It is silent
// before its start time and from its stop time on.
type Oscillator struct {
	node
	waveform  synth.Waveform
	frequency *Param
	phase     float64

	started bool
	ended   bool
	startAt float64
	stopAt  float64
	onEnded func()
}

func (o *Oscillator) SetWaveform(w synth.Waveform) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	if w.Valid() {
		o.waveform = w
	}
}

func (o *Oscillator) Frequency() synth.Param { return o.frequency }

// Start schedules the oscillator. Only the first call has an effect.
func (o *Oscillator) Start(t float64) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	if o.started || o.ctx.closed {
		return
	}
	o.started = true
	o.startAt = t
	o.ctx.running[o] = struct{}{}
}

// Stop schedules the end of output. Calls before Start or after the
// oscillator has ended are ignored.
func (o *Oscillator) Stop(t float64) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	if !o.started || o.ended {
		return
	}
	if t < o.startAt {
		t = o.startAt
	}
	o.stopAt = t
}

func (o *Oscillator) OnEnded(fn func()) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	o.onEnded = fn
}

func (o *Oscillator) process(_ int64, t float64) float64 {
	if !o.started || o.ended || t < o.startAt || t >= o.stopAt {
		return 0
	}
	v := shape(o.waveform, o.phase)
	o.phase += o.frequency.at(t) / o.ctx.sampleRate
	o.phase -= math.Floor(o.phase)
	return v
}

// shape evaluates one period of w at phase p in [0, 1). Every shape starts
// at zero except the square, matching the browser's periodic waves.
func shape(w synth.Waveform, p float64) float64 {
	switch w {
	case synth.Square:
		if p < 0.5 {
			return 1
		}
		return -1
	case synth.Sawtooth:
		q := p + 0.5
		return 2*(q-math.Floor(q)) - 1
	case synth.Triangle:
		q := p + 0.25
		return 1 - 4*math.Abs(q-math.Floor(q)-0.5)
	default:
		return math.Sin(2 * math.Pi * p)
	}
}
