package dsp

import (
	"fmt"

	"github.com/simukka/touchsynth/synth"
)

type processor interface {
	process(frame int64, t float64) float64
}

// node carries the connections shared by every graph vertex and caches
// its output for the current frame.
type node struct {
	ctx     *Context
	proc    processor
	inputs  []*node
	outputs []*node

	frame int64
	value float64
}

func (n *node) init(ctx *Context, proc processor) {
	n.ctx = ctx
	n.proc = proc
	n.frame = -1
}

func (n *node) base() *node { return n }

type graphNode interface {
	base() *node
}

// Connect adds n's output to dst's inputs. Repeated connections are
// ignored.
func (n *node) Connect(dst synth.Node) error {
	g, ok := dst.(graphNode)
	if !ok || g.base().ctx != n.ctx {
		return fmt.Errorf("dsp: connect to %T: %w", dst, synth.ErrInvalidNode)
	}
	to := g.base()

	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	for _, out := range n.outputs {
		if out == to {
			return nil
		}
	}
	n.outputs = append(n.outputs, to)
	to.inputs = append(to.inputs, n)
	return nil
}

func (n *node) Disconnect() {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	for _, out := range n.outputs {
		out.inputs = without(out.inputs, n)
	}
	n.outputs = nil
}

func without(nodes []*node, n *node) []*node {
	for i, in := range nodes {
		if in == n {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}

// output returns the node's value for frame, computing it at most once.
func (n *node) output(frame int64, t float64) float64 {
	if n.frame == frame {
		return n.value
	}
	n.frame = frame
	n.value = n.proc.process(frame, t)
	return n.value
}

func (n *node) sum(frame int64, t float64) float64 {
	var s float64
	for _, in := range n.inputs {
		s += in.output(frame, t)
	}
	return s
}

// Destination mixes everything connected to it and hard clips to [-1, 1].
type Destination struct {
	node
}

func (d *Destination) process(frame int64, t float64) float64 {
	v := d.sum(frame, t)
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Gain multiplies its summed inputs by an automatable factor.
type Gain struct {
	node
	gain *Param
}

func (g *Gain) Gain() synth.Param { return g.gain }

func (g *Gain) process(frame int64, t float64) float64 {
	in := g.sum(frame, t)
	if in == 0 {
		return 0
	}
	return in * g.gain.at(t)
}

// Delay is a fractional delay line. Its output only depends on samples
// already written, so it may sit inside a feedback loop. The effective
// delay is never shorter than one frame.
type Delay struct {
	node
	delayTime *Param
	buf       []float64
	w         int
}

func (d *Delay) DelayTime() synth.Param { return d.delayTime }

func (d *Delay) process(_ int64, t float64) float64 {
	frames := d.delayTime.at(t) * d.ctx.sampleRate
	if frames < 1 {
		frames = 1
	}
	if limit := float64(len(d.buf) - 1); frames > limit {
		frames = limit
	}
	pos := float64(d.w) - frames
	for pos < 0 {
		pos += float64(len(d.buf))
	}
	i := int(pos)
	frac := pos - float64(i)
	a := d.buf[i%len(d.buf)]
	b := d.buf[(i+1)%len(d.buf)]
	return a + (b-a)*frac
}

// write stores this frame's input. Called once per frame after the
// destination has been pulled.
func (d *Delay) write(frame int64, t float64) {
	d.buf[d.w] = d.sum(frame, t)
	d.w = (d.w + 1) % len(d.buf)
}
