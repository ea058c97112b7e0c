package synth_test

import (
	"testing"

	"github.com/simukka/touchsynth/dsp"
	"github.com/simukka/touchsynth/synth"
)

// newBusFixture plays a 20 ms keyboard blip through an effect bus.
func newBusFixture(t *testing.T) (*dsp.Context, *synth.EffectBus, *synth.Scheduler, *recordLogger) {
	t.Helper()
	ctx := dsp.NewContext(testRate)
	log := &recordLogger{}
	bus, err := synth.NewEffectBus(ctx, log)
	if err != nil {
		t.Fatalf("NewEffectBus: %v", err)
	}
	s := synth.NewScheduler(ctx, bus, log)
	settings := synth.DefaultSettings()
	settings.Attack = 0
	settings.Release = 0
	settings.DelayTime = 0.1
	settings.Feedback = 0.5
	s.Apply(settings)
	return ctx, bus, s, log
}

func blip(ctx *dsp.Context, s *synth.Scheduler) []float32 {
	s.Begin(synth.KeyboardID, 0, 0)
	out := ctx.Advance(0.02)
	s.End(synth.KeyboardID)
	return append(out, ctx.Advance(0.48)...)
}

func TestEffectBus_DryPathByDefault(t *testing.T) {
	ctx, bus, s, _ := newBusFixture(t)
	if bus.Enabled() {
		t.Fatal("Expected the delay to start disabled")
	}
	out := blip(ctx, s)
	if p := dsp.Peak(out[:160]); p < 0.4 {
		t.Errorf("Expected the blip on the dry path, got peak %f", p)
	}
	if p := dsp.Peak(out[200:]); p != 0 {
		t.Errorf("Expected no echo on the dry path, got peak %f", p)
	}
}

func TestEffectBus_DelayPathEchoes(t *testing.T) {
	ctx, bus, s, log := newBusFixture(t)
	bus.SetEnabled(true)

	out := blip(ctx, s)
	if p := dsp.Peak(out[:790]); p != 0 {
		t.Errorf("Expected the dry signal to be removed, got peak %f", p)
	}
	first := dsp.Peak(out[800:960])
	second := dsp.Peak(out[1600:1760])
	if first < 0.4 {
		t.Errorf("Expected the first echo after 100 ms, got peak %f", first)
	}
	if !almostEqual(second, first*0.5, 0.01) {
		t.Errorf("Expected the second echo at half the first (%f), got %f", first*0.5, second)
	}
	if !log.has("debug", "Delay effect enabled") {
		t.Error("Expected a debug entry for enabling the delay")
	}
}

func TestEffectBus_DisableRestoresDryPath(t *testing.T) {
	ctx, bus, s, log := newBusFixture(t)
	bus.SetEnabled(true)
	bus.SetEnabled(false)

	out := blip(ctx, s)
	if p := dsp.Peak(out[:160]); p < 0.4 {
		t.Errorf("Expected the dry blip, got peak %f", p)
	}
	if p := dsp.Peak(out[200:]); p != 0 {
		t.Errorf("Expected the loop to be disconnected, got peak %f", p)
	}
	if !log.has("debug", "Delay effect disabled") {
		t.Error("Expected a debug entry for disabling the delay")
	}
}

func TestEffectBus_RepeatedToggleIsNoop(t *testing.T) {
	_, bus, _, log := newBusFixture(t)
	bus.SetEnabled(true)
	bus.SetEnabled(true)

	if n := log.count("debug"); n != 1 {
		t.Errorf("Expected one debug entry, got %d", n)
	}
}

func TestEffectBus_ClampsParameters(t *testing.T) {
	tests := []struct {
		name     string
		set      func(b *synth.EffectBus) float64
		expected float64
	}{
		{"Delay above max", func(b *synth.EffectBus) float64 { return b.SetDelayTime(12) }, synth.MaxDelayTime},
		{"Delay negative", func(b *synth.EffectBus) float64 { return b.SetDelayTime(-1) }, 0},
		{"Delay in range", func(b *synth.EffectBus) float64 { return b.SetDelayTime(0.75) }, 0.75},
		{"Feedback above one", func(b *synth.EffectBus) float64 { return b.SetFeedback(1.5) }, 1},
		{"Feedback negative", func(b *synth.EffectBus) float64 { return b.SetFeedback(-0.1) }, 0},
		{"Feedback in range", func(b *synth.EffectBus) float64 { return b.SetFeedback(0.3) }, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bus, _, _ := newBusFixture(t)
			if got := tt.set(bus); got != tt.expected {
				t.Errorf("Applied %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestEffectBus_LiveDelayChange(t *testing.T) {
	ctx, bus, s, _ := newBusFixture(t)
	bus.SetEnabled(true)
	bus.SetFeedback(0)
	bus.SetDelayTime(0.2)

	out := blip(ctx, s)
	if p := dsp.Peak(out[:1590]); p != 0 {
		t.Errorf("Expected nothing before 200 ms, got peak %f", p)
	}
	if p := dsp.Peak(out[1600:1760]); p < 0.4 {
		t.Errorf("Expected the echo at 200 ms, got peak %f", p)
	}
}

func TestEffectBus_SchedulerAppliesSettings(t *testing.T) {
	_, bus, s, _ := newBusFixture(t)
	settings := s.Settings()
	settings.DelayEnabled = true
	settings.DelayTime = 9
	settings.Feedback = 0.25
	s.Apply(settings)

	if !bus.Enabled() || bus.DelayTime() != synth.MaxDelayTime || bus.Feedback() != 0.25 {
		t.Errorf("Expected enabled, %v s, 0.25 feedback; got %v, %v, %v",
			synth.MaxDelayTime, bus.Enabled(), bus.DelayTime(), bus.Feedback())
	}
}
