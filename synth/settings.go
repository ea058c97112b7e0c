package synth

import (
	"errors"
	"fmt"
	"math"
)

const (
	MinPolyphony     = 1
	MaxPolyphony     = 8
	DefaultPolyphony = 2

	// MaxDelayTime is the capacity of the effect bus delay line in seconds.
	MaxDelayTime = 5.0

	// MaxEnvelopeTime bounds attack and release.
	MaxEnvelopeTime = 10.0
)

// Settings holds every user-adjustable parameter. Attack, Release,
// Waveform and the frequency range only affect voices created after they
// change. The delay parameters apply to the effect bus immediately.
type Settings struct {
	Waveform     Waveform `json:"waveform"`
	Attack       float64  `json:"attack"`
	Release      float64  `json:"release"`
	MaxPolyphony int      `json:"maxPolyphony"`
	MinFrequency float64  `json:"minFrequency"`
	MaxFrequency float64  `json:"maxFrequency"`
	DelayEnabled bool     `json:"delayEnabled"`
	DelayTime    float64  `json:"delayTime"`
	Feedback     float64  `json:"feedback"`
}

// DefaultSettings returns the settings a fresh instrument starts with.
func DefaultSettings() Settings {
	return Settings{
		Waveform:     Sine,
		Attack:       0.1,
		Release:      0.5,
		MaxPolyphony: DefaultPolyphony,
		MinFrequency: DefaultMinFrequency,
		MaxFrequency: DefaultMaxFrequency,
		DelayEnabled: false,
		DelayTime:    0.3,
		Feedback:     0.4,
	}
}

// Validate reports every field Normalize would change.
func (s Settings) Validate() error {
	var errs []error
	if !s.Waveform.Valid() {
		errs = append(errs, fmt.Errorf("unknown waveform %q", s.Waveform))
	}
	if !inRange(s.Attack, 0, MaxEnvelopeTime) {
		errs = append(errs, fmt.Errorf("attack %v outside [0, %v]", s.Attack, MaxEnvelopeTime))
	}
	if !inRange(s.Release, 0, MaxEnvelopeTime) {
		errs = append(errs, fmt.Errorf("release %v outside [0, %v]", s.Release, MaxEnvelopeTime))
	}
	if s.MaxPolyphony < MinPolyphony || s.MaxPolyphony > MaxPolyphony {
		errs = append(errs, fmt.Errorf("polyphony %d outside [%d, %d]", s.MaxPolyphony, MinPolyphony, MaxPolyphony))
	}
	if !ValidFrequencyRange(s.MinFrequency, s.MaxFrequency) {
		errs = append(errs, fmt.Errorf("invalid frequency range %v-%v", s.MinFrequency, s.MaxFrequency))
	}
	if !inRange(s.DelayTime, 0, MaxDelayTime) {
		errs = append(errs, fmt.Errorf("delay time %v outside [0, %v]", s.DelayTime, MaxDelayTime))
	}
	if !inRange(s.Feedback, 0, 1) {
		errs = append(errs, fmt.Errorf("feedback %v outside [0, 1]", s.Feedback))
	}
	return errors.Join(errs...)
}

// Normalize returns a copy with every field forced into range. Numeric
// values are clamped; an invalid frequency range is reset to the defaults
// and an unknown waveform becomes Sine.
func (s Settings) Normalize() Settings {
	if !s.Waveform.Valid() {
		s.Waveform = Sine
	}
	s.Attack = clamp(s.Attack, 0, MaxEnvelopeTime)
	s.Release = clamp(s.Release, 0, MaxEnvelopeTime)
	s.MaxPolyphony = ClampPolyphony(s.MaxPolyphony)
	if !ValidFrequencyRange(s.MinFrequency, s.MaxFrequency) {
		s.MinFrequency = DefaultMinFrequency
		s.MaxFrequency = DefaultMaxFrequency
	}
	s.DelayTime = clamp(s.DelayTime, 0, MaxDelayTime)
	s.Feedback = clamp(s.Feedback, 0, 1)
	return s
}

// ClampPolyphony forces n into [MinPolyphony, MaxPolyphony].
func ClampPolyphony(n int) int {
	if n < MinPolyphony {
		return MinPolyphony
	}
	if n > MaxPolyphony {
		return MaxPolyphony
	}
	return n
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// clamp forces v into [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
