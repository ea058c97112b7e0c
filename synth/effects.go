package synth

import (
	"fmt"
	"sync"
)

// EffectBus is the shared output stage every voice connects to. It routes
// either straight to the destination (dry) or through a delay line whose
// output is fed back into itself through a feedback gain. Exactly one of
// the two paths is connected at any time.
type EffectBus struct {
	mu  sync.Mutex
	ctx Context
	log Logger

	input    Gain
	delay    Delay
	feedback Gain

	enabled   bool
	delayTime float64
	amount    float64
}

// NewEffectBus builds the bus nodes and connects the dry path.
func NewEffectBus(ctx Context, log Logger) (*EffectBus, error) {
	if log == nil {
		log = NopLogger
	}
	input, err := ctx.NewGain()
	if err != nil {
		return nil, fmt.Errorf("effect bus input: %w", err)
	}
	delay, err := ctx.NewDelay(MaxDelayTime)
	if err != nil {
		return nil, fmt.Errorf("effect bus delay: %w", err)
	}
	feedback, err := ctx.NewGain()
	if err != nil {
		return nil, fmt.Errorf("effect bus feedback: %w", err)
	}

	defaults := DefaultSettings()
	b := &EffectBus{
		ctx:       ctx,
		log:       log,
		input:     input,
		delay:     delay,
		feedback:  feedback,
		delayTime: defaults.DelayTime,
		amount:    defaults.Feedback,
	}

	now := ctx.CurrentTime()
	input.Gain().SetValueAtTime(1, now)
	delay.DelayTime().SetValueAtTime(b.delayTime, now)
	feedback.Gain().SetValueAtTime(b.amount, now)

	if err := input.Connect(ctx.Destination()); err != nil {
		return nil, fmt.Errorf("effect bus dry path: %w", err)
	}
	return b, nil
}

// Input is the node voices connect to.
func (b *EffectBus) Input() Node {
	return b.input
}

// SetEnabled switches between the dry and the delay path. The switch is
// made inside a single batch so the renderer never sees both or neither.
func (b *EffectBus) SetEnabled(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if on == b.enabled {
		return
	}
	b.enabled = on
	batch(b.ctx, func() { b.route(on) })

	if on {
		b.log.Debug("Delay effect enabled")
	} else {
		b.log.Debug("Delay effect disabled")
	}
}

func (b *EffectBus) route(on bool) {
	b.input.Disconnect()
	if !on {
		b.delay.Disconnect()
		b.feedback.Disconnect()
		b.connect(b.input, b.ctx.Destination(), "dry")
		return
	}
	b.connect(b.input, b.delay, "delay input")
	b.connect(b.delay, b.ctx.Destination(), "delay output")
	b.connect(b.delay, b.feedback, "feedback send")
	b.connect(b.feedback, b.delay, "feedback return")
}

func (b *EffectBus) connect(src, dst Node, what string) {
	if err := src.Connect(dst); err != nil {
		b.log.Error("effect bus connect failed", "path", what, "err", err)
	}
}

// SetDelayTime sets the delay in seconds, clamped to [0, MaxDelayTime],
// and returns the applied value.
func (b *EffectBus) SetDelayTime(seconds float64) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.delayTime = clamp(seconds, 0, MaxDelayTime)
	b.delay.DelayTime().SetValueAtTime(b.delayTime, b.ctx.CurrentTime())
	return b.delayTime
}

// SetFeedback sets the loop gain, clamped to [0, 1], and returns the
// applied value.
func (b *EffectBus) SetFeedback(gain float64) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.amount = clamp(gain, 0, 1)
	b.feedback.Gain().SetValueAtTime(b.amount, b.ctx.CurrentTime())
	return b.amount
}

// Apply pushes the delay fields of s to the bus.
func (b *EffectBus) Apply(s Settings) {
	b.SetDelayTime(s.DelayTime)
	b.SetFeedback(s.Feedback)
	b.SetEnabled(s.DelayEnabled)
}

func (b *EffectBus) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

func (b *EffectBus) DelayTime() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.delayTime
}

func (b *EffectBus) Feedback() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.amount
}

// Close disconnects every bus node.
func (b *EffectBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch(b.ctx, func() {
		b.input.Disconnect()
		b.delay.Disconnect()
		b.feedback.Disconnect()
	})
}
