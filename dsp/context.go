// Package dsp is a sample-accurate software implementation of the synth
// audio graph. It renders offline on demand or feeds a device through
// Player.
package dsp

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/simukka/touchsynth/synth"
)

const DefaultSampleRate = 48000

// Context is a pull-based audio graph. Time only advances while Render is
// called, one sample frame at a time.
//
// gate serializes rendering against Batch so a batch of graph changes is
// never observed half-applied. mu guards the graph itself. Ended
// callbacks run after both are released, on the rendering goroutine.
type Context struct {
	gate sync.Mutex
	mu   sync.Mutex

	sampleRate float64
	frame      int64
	dest       *Destination

	running map[*Oscillator]struct{}
	delays  []*Delay
	closed  bool
}

var _ synth.Context = (*Context)(nil)
var _ synth.Batcher = (*Context)(nil)

// NewContext returns a context running at sampleRate frames per second.
func NewContext(sampleRate int) *Context {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	c := &Context{
		sampleRate: float64(sampleRate),
		running:    make(map[*Oscillator]struct{}),
	}
	c.dest = &Destination{}
	c.dest.init(c, c.dest)
	return c
}

func (c *Context) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now()
}

func (c *Context) now() float64 {
	return float64(c.frame) / c.sampleRate
}

func (c *Context) SampleRate() float64 { return c.sampleRate }

// Resume is a no-op; the clock runs whenever Render is called.
func (c *Context) Resume() {}

func (c *Context) Destination() synth.Node { return c.dest }

func (c *Context) NewOscillator() (synth.Oscillator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("dsp: new oscillator: %w", synth.ErrContextClosed)
	}
	nyquist := c.sampleRate / 2
	o := &Oscillator{
		waveform:  synth.Sine,
		frequency: newParam(c, 440, -nyquist, nyquist),
		stopAt:    math.Inf(1),
	}
	o.init(c, o)
	return o, nil
}

func (c *Context) NewGain() (synth.Gain, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("dsp: new gain: %w", synth.ErrContextClosed)
	}
	g := &Gain{gain: newParam(c, 1, math.Inf(-1), math.Inf(1))}
	g.init(c, g)
	return g, nil
}

// NewDelay allocates a delay line holding up to maxDelay seconds.
func (c *Context) NewDelay(maxDelay float64) (synth.Delay, error) {
	if !(maxDelay > 0) || maxDelay >= 180 {
		return nil, fmt.Errorf("dsp: new delay %v: %w", maxDelay, synth.ErrInvalidDelay)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("dsp: new delay: %w", synth.ErrContextClosed)
	}
	d := &Delay{
		delayTime: newParam(c, 0, 0, maxDelay),
		buf:       make([]float64, int(math.Ceil(maxDelay*c.sampleRate))+2),
	}
	d.init(c, d)
	c.delays = append(c.delays, d)
	return d, nil
}

// Batch runs fn with rendering held off.
func (c *Context) Batch(fn func()) {
	c.gate.Lock()
	defer c.gate.Unlock()
	fn()
}

// Render fills out with the next len(out) mono frames and advances the
// clock. Oscillators whose stop time has passed fire their ended
// callbacks before Render returns.
func (c *Context) Render(out []float32) {
	c.gate.Lock()
	c.mu.Lock()
	for i := range out {
		out[i] = float32(c.tick())
	}
	ended := c.collectEnded()
	c.mu.Unlock()
	c.gate.Unlock()

	for _, fn := range ended {
		fn()
	}
}

// Advance renders seconds of audio and returns it.
func (c *Context) Advance(seconds float64) []float32 {
	if !(seconds > 0) {
		return nil
	}
	out := make([]float32, int(math.Round(seconds*c.sampleRate)))
	c.Render(out)
	return out
}

// Close stops every oscillator without firing ended callbacks. Node
// factories fail afterwards.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for o := range c.running {
		o.ended = true
	}
	c.running = make(map[*Oscillator]struct{})
}

// tick computes one frame. Delay lines are written after the destination
// has been pulled so loops through a delay read last frame's state.
func (c *Context) tick() float64 {
	t := c.now()
	v := c.dest.output(c.frame, t)
	for _, d := range c.delays {
		d.write(c.frame, t)
	}
	c.frame++
	return v
}

func (c *Context) collectEnded() []func() {
	now := c.now()
	var done []*Oscillator
	for o := range c.running {
		if o.stopAt <= now {
			done = append(done, o)
		}
	}
	sort.Slice(done, func(i, j int) bool { return done[i].stopAt < done[j].stopAt })

	var fns []func()
	for _, o := range done {
		delete(c.running, o)
		o.ended = true
		if o.onEnded != nil {
			fns = append(fns, o.onEnded)
		}
	}
	return fns
}
