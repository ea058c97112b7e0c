package synth

import (
	"fmt"
	"strconv"
)

// VoiceID identifies the input stream that owns a voice.
type VoiceID string

// KeyboardID is the id of the single keyboard-triggered voice.
const KeyboardID VoiceID = "keyboard"

// PointerID returns the id for a pointer or touch contact.
func PointerID(n int) VoiceID {
	return VoiceID("pointer-" + strconv.Itoa(n))
}

const (
	// DeclickTime is the ramp used for amplitude updates and evictions.
	DeclickTime = 0.05

	KeyboardFrequency = 440.0
	KeyboardAmplitude = 0.5
)

// VoiceState is the lifecycle stage of a voice.
type VoiceState int

const (
	Active VoiceState = iota
	Releasing
)

func (s VoiceState) String() string {
	switch s {
	case Active:
		return "active"
	case Releasing:
		return "releasing"
	default:
		return "unknown"
	}
}

// VoiceInfo is a copy of a voice's data handed to observers.
type VoiceInfo struct {
	ID        VoiceID
	State     VoiceState
	Waveform  Waveform
	StartTime float64
	Attack    float64
	Release   float64
	Frequency float64
	Amplitude float64
}

// voice is one oscillator feeding one envelope gain. Every field is
// guarded by the owning Scheduler's mutex.
type voice struct {
	id        VoiceID
	state     VoiceState
	waveform  Waveform
	startTime float64
	attack    float64
	release   float64
	frequency float64
	amplitude float64

	osc  Oscillator
	gain Gain

	ended bool
}

// newVoice builds and starts the oscillator -> gain -> out chain. Nothing
// is started when an error is returned.
func newVoice(ctx Context, out Node, id VoiceID, s Settings, freq, amp float64) (*voice, error) {
	osc, err := ctx.NewOscillator()
	if err != nil {
		return nil, fmt.Errorf("create oscillator: %w", err)
	}
	gain, err := ctx.NewGain()
	if err != nil {
		return nil, fmt.Errorf("create gain: %w", err)
	}
	if err := osc.Connect(gain); err != nil {
		return nil, fmt.Errorf("connect oscillator: %w", err)
	}
	if err := gain.Connect(out); err != nil {
		osc.Disconnect()
		return nil, fmt.Errorf("connect gain: %w", err)
	}

	now := ctx.CurrentTime()
	osc.SetWaveform(s.Waveform)
	osc.Frequency().SetValueAtTime(freq, now)

	g := gain.Gain()
	g.SetValueAtTime(0, now)
	g.LinearRampToValueAtTime(amp, now+s.Attack)

	osc.Start(now)

	return &voice{
		id:        id,
		state:     Active,
		waveform:  s.Waveform,
		startTime: now,
		attack:    s.Attack,
		release:   s.Release,
		frequency: freq,
		amplitude: amp,
		osc:       osc,
		gain:      gain,
	}, nil
}

// update retunes the oscillator at now. The amplitude is only changed once
// the attack ramp has finished; it reports whether it was.
func (v *voice) update(now, freq, amp float64) bool {
	v.frequency = freq
	v.osc.Frequency().SetValueAtTime(freq, now)

	if now-v.startTime <= v.attack {
		return false
	}
	v.amplitude = amp
	v.rampFromCurrent(now, amp, DeclickTime)
	return true
}

// releaseAt starts the release ramp from the instantaneous gain and
// schedules the oscillator stop at its end.
func (v *voice) releaseAt(now float64) {
	v.state = Releasing
	v.rampFromCurrent(now, 0, v.release)
	v.osc.Stop(now + v.release)
}

// fadeOut silences the voice over DeclickTime regardless of its state.
func (v *voice) fadeOut(now float64) {
	v.state = Releasing
	v.rampFromCurrent(now, 0, DeclickTime)
	v.osc.Stop(now + DeclickTime)
}

// rampFromCurrent replaces the gain schedule with a linear ramp from the
// value heard right now.
func (v *voice) rampFromCurrent(now, target, duration float64) {
	g := v.gain.Gain()
	current := g.Value()
	g.CancelScheduledValues(now)
	g.SetValueAtTime(current, now)
	g.LinearRampToValueAtTime(target, now+duration)
}

// kill stops output immediately.
func (v *voice) kill(now float64) {
	v.gain.Gain().CancelScheduledValues(now)
	v.gain.Gain().SetValueAtTime(0, now)
	v.osc.Stop(now)
}

func (v *voice) teardown() {
	v.osc.Disconnect()
	v.gain.Disconnect()
}

func (v *voice) info() VoiceInfo {
	return VoiceInfo{
		ID:        v.id,
		State:     v.state,
		Waveform:  v.waveform,
		StartTime: v.startTime,
		Attack:    v.attack,
		Release:   v.release,
		Frequency: v.frequency,
		Amplitude: v.amplitude,
	}
}
