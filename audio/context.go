// Package audio implements the synth audio graph on top of the browser's
// Web Audio API.
package audio

import (
	"errors"
	"fmt"

	"github.com/gopherjs/gopherjs/js"
	"github.com/simukka/touchsynth/synth"
)

// ErrUnsupported is returned when the browser has no AudioContext.
var ErrUnsupported = errors.New("web audio not supported")

// Context wraps a Web Audio AudioContext. The browser renders on its own
// thread; every call here runs on the JS event loop, so no locking is
// needed and graph changes are applied atomically per task.
type Context struct {
	ctx  *js.Object
	dest *node
}

var _ synth.Context = (*Context)(nil)

// NewContext creates an AudioContext, falling back to the prefixed
// constructor on older WebKit.
func NewContext() (c *Context, err error) {
	ctor := js.Global.Get("AudioContext")
	if ctor == nil || ctor == js.Undefined {
		ctor = js.Global.Get("webkitAudioContext")
	}
	if ctor == nil || ctor == js.Undefined {
		return nil, ErrUnsupported
	}

	err = catch(func() {
		c = &Context{ctx: ctor.New()}
		c.dest = &node{obj: c.ctx.Get("destination")}
	})
	if err != nil {
		return nil, fmt.Errorf("create audio context: %w", err)
	}
	return c, nil
}

// Object exposes the underlying AudioContext.
func (c *Context) Object() *js.Object { return c.ctx }

func (c *Context) CurrentTime() float64 {
	return c.ctx.Get("currentTime").Float()
}

func (c *Context) SampleRate() float64 {
	return c.ctx.Get("sampleRate").Float()
}

// State returns "suspended", "running" or "closed".
func (c *Context) State() string {
	return c.ctx.Get("state").String()
}

// Resume starts the context if the browser suspended it before the first
// user gesture.
func (c *Context) Resume() {
	if c.State() == "suspended" {
		c.ctx.Call("resume")
	}
}

func (c *Context) Destination() synth.Node { return c.dest }

func (c *Context) NewOscillator() (synth.Oscillator, error) {
	var o *Oscillator
	err := c.create(func() {
		obj := c.ctx.Call("createOscillator")
		o = &Oscillator{node: node{obj: obj}, frequency: &param{obj.Get("frequency")}}
	})
	if err != nil {
		return nil, fmt.Errorf("create oscillator: %w", err)
	}
	return o, nil
}

func (c *Context) NewGain() (synth.Gain, error) {
	var g *Gain
	err := c.create(func() {
		obj := c.ctx.Call("createGain")
		g = &Gain{node: node{obj: obj}, gain: &param{obj.Get("gain")}}
	})
	if err != nil {
		return nil, fmt.Errorf("create gain: %w", err)
	}
	return g, nil
}

func (c *Context) NewDelay(maxDelay float64) (synth.Delay, error) {
	if !(maxDelay > 0) || maxDelay >= 180 {
		return nil, fmt.Errorf("create delay %v: %w", maxDelay, synth.ErrInvalidDelay)
	}
	var d *Delay
	err := c.create(func() {
		obj := c.ctx.Call("createDelay", maxDelay)
		d = &Delay{node: node{obj: obj}, delayTime: &param{obj.Get("delayTime")}}
	})
	if err != nil {
		return nil, fmt.Errorf("create delay: %w", err)
	}
	return d, nil
}

// Close releases the audio hardware. Node factories fail afterwards.
func (c *Context) Close() {
	if c.State() != "closed" {
		c.ctx.Call("close")
	}
}

func (c *Context) create(fn func()) error {
	if c.State() == "closed" {
		return synth.ErrContextClosed
	}
	return catch(fn)
}

// catch runs fn and converts a thrown JS exception into an error.
func catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if jsErr, ok := r.(*js.Error); ok {
			err = jsErr
			return
		}
		panic(r)
	}()
	fn()
	return nil
}
