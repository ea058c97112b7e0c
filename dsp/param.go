package dsp

import (
	"math"
	"sort"
)

type automation struct {
	time  float64
	value float64
	ramp  bool
}

// Param is an automation timeline. Values hold between set events and
// interpolate linearly into ramp events, measured from the event before.
type Param struct {
	ctx      *Context
	base     float64
	events   []automation
	min, max float64
}

func newParam(ctx *Context, value, min, max float64) *Param {
	return &Param{ctx: ctx, base: value, min: min, max: max}
}

// Value returns the value at the context's current time.
func (p *Param) Value() float64 {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	return p.at(p.ctx.now())
}

func (p *Param) SetValueAtTime(value, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.insert(automation{time: t, value: value})
}

// LinearRampToValueAtTime ramps from the previous event. With nothing
// scheduled the ramp starts at the current time from the current value.
func (p *Param) LinearRampToValueAtTime(value, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	if len(p.events) == 0 {
		now := p.ctx.now()
		p.insert(automation{time: now, value: p.at(now)})
	}
	p.insert(automation{time: t, value: value, ramp: true})
}

// CancelScheduledValues drops every event at or after t. The value
// reached before t is kept as the base.
func (p *Param) CancelScheduledValues(t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time >= t })
	p.events = p.events[:i]
}

func (p *Param) insert(a automation) {
	if math.IsNaN(a.value) || math.IsNaN(a.time) || math.IsInf(a.time, 0) {
		return
	}
	if a.time < 0 {
		a.time = 0
	}
	// Events at equal times keep insertion order.
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time > a.time })
	p.events = append(p.events, automation{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = a
	p.prune(p.ctx.now())
}

// prune folds events that can no longer affect values at or after now.
func (p *Param) prune(now float64) {
	n := 0
	for n+1 < len(p.events) && p.events[n+1].time <= now {
		n++
	}
	if n == 0 {
		return
	}
	p.base = p.events[n-1].value
	p.events = append(p.events[:0], p.events[n:]...)
}

// at evaluates the timeline at t. The caller holds ctx.mu.
func (p *Param) at(t float64) float64 {
	v := p.base
	prevTime, prevValue := 0.0, p.base
	for _, a := range p.events {
		if a.time <= t {
			v = a.value
			prevTime, prevValue = a.time, a.value
			continue
		}
		if a.ramp {
			v = prevValue + (a.value-prevValue)*(t-prevTime)/(a.time-prevTime)
		}
		break
	}
	return p.clamp(v)
}

func (p *Param) clamp(v float64) float64 {
	if v < p.min {
		return p.min
	}
	if v > p.max {
		return p.max
	}
	return v
}
