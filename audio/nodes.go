package audio

import (
	"fmt"

	"github.com/gopherjs/gopherjs/js"
	"github.com/simukka/touchsynth/synth"
)

// param wraps an AudioParam.
type param struct {
	obj *js.Object
}

// Value returns the browser's view of the current value, which includes
// any automation in progress.
func (p *param) Value() float64 {
	return p.obj.Get("value").Float()
}

// SetValueAtTime and the other automation calls drop JS exceptions, such
// as the one thrown for a non-finite value, like Start and Stop.
func (p *param) SetValueAtTime(value, t float64) {
	_ = catch(func() { p.obj.Call("setValueAtTime", value, t) })
}

func (p *param) LinearRampToValueAtTime(value, t float64) {
	_ = catch(func() { p.obj.Call("linearRampToValueAtTime", value, t) })
}

func (p *param) CancelScheduledValues(t float64) {
	_ = catch(func() { p.obj.Call("cancelScheduledValues", t) })
}

// node wraps an AudioNode.
type node struct {
	obj *js.Object
}

type jsNode interface {
	object() *js.Object
}

func (n *node) object() *js.Object { return n.obj }

func (n *node) Connect(dst synth.Node) error {
	to, ok := dst.(jsNode)
	if !ok {
		return fmt.Errorf("connect to %T: %w", dst, synth.ErrInvalidNode)
	}
	if err := catch(func() { n.obj.Call("connect", to.object()) }); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}

func (n *node) Disconnect() {
	// Disconnecting a node with no connections throws on some engines.
	_ = catch(func() { n.obj.Call("disconnect") })
}

type Oscillator struct {
	node
	frequency *param
	onEnded   func()
}

func (o *Oscillator) SetWaveform(w synth.Waveform) {
	if w.Valid() {
		o.obj.Set("type", string(w))
	}
}

func (o *Oscillator) Frequency() synth.Param { return o.frequency }

func (o *Oscillator) Start(t float64) {
	_ = catch(func() { o.obj.Call("start", t) })
}

func (o *Oscillator) Stop(t float64) {
	_ = catch(func() { o.obj.Call("stop", t) })
}

// OnEnded installs fn as the node's onended handler. The browser invokes
// it on the event loop after the stop time.
func (o *Oscillator) OnEnded(fn func()) {
	o.onEnded = fn
	o.obj.Set("onended", func() {
		if o.onEnded != nil {
			// Handlers must not block the event loop.
			go o.onEnded()
		}
	})
}

type Gain struct {
	node
	gain *param
}

func (g *Gain) Gain() synth.Param { return g.gain }

type Delay struct {
	node
	delayTime *param
}

func (d *Delay) DelayTime() synth.Param { return d.delayTime }
