package synth

import "math"

const (
	// BaseVolume is the linear gain at the loudest (rightmost) position.
	BaseVolume = 0.1

	// MinVolumeDB is the attenuation at the leftmost position.
	MinVolumeDB = -40.0

	DefaultMinFrequency = 27.5
	DefaultMaxFrequency = 7040.0
)

// Bounds is the size of the active input area. Positions passed to the
// mapper are relative to its top-left corner.
type Bounds struct {
	Width  float64
	Height float64
}

// Mapper converts positions in the active area to pitch and loudness.
// Pitch is log-spaced from MaxFrequency at the top to MinFrequency at the
// bottom. Loudness is linear in decibels from MinVolumeDB on the left to
// 0 dB (BaseVolume) on the right.
type Mapper struct {
	MinFrequency float64
	MaxFrequency float64
}

// NewMapper returns a mapper for the given range, falling back to the
// default range when min and max do not satisfy 0 < min < max.
func NewMapper(minFreq, maxFreq float64) Mapper {
	if !ValidFrequencyRange(minFreq, maxFreq) {
		return Mapper{MinFrequency: DefaultMinFrequency, MaxFrequency: DefaultMaxFrequency}
	}
	return Mapper{MinFrequency: minFreq, MaxFrequency: maxFreq}
}

// ValidFrequencyRange reports whether 0 < min < max with both finite.
func ValidFrequencyRange(minFreq, maxFreq float64) bool {
	if math.IsNaN(minFreq) || math.IsNaN(maxFreq) || math.IsInf(maxFreq, 0) {
		return false
	}
	return minFreq > 0 && minFreq < maxFreq
}

// Map returns the frequency and linear amplitude for (x, y) inside b.
func (m Mapper) Map(x, y float64, b Bounds) (frequency, amplitude float64) {
	return m.Frequency(y, b.Height), Amplitude(x, b.Width)
}

// Frequency maps a vertical position to Hz. y = 0 yields MaxFrequency and
// y = height yields MinFrequency.
func (m Mapper) Frequency(y, height float64) float64 {
	logMin := math.Log10(m.MinFrequency)
	logMax := math.Log10(m.MaxFrequency)
	return math.Pow(10, logMax-ratio(y, height)*(logMax-logMin))
}

// Amplitude maps a horizontal position to a linear gain in
// [BaseVolume*0.01, BaseVolume].
func Amplitude(x, width float64) float64 {
	db := MinVolumeDB + ratio(x, width)*-MinVolumeDB
	return BaseVolume * math.Pow(10, db/20)
}

// GainToDB converts a linear gain to decibels.
func GainToDB(g float64) float64 {
	return 20 * math.Log10(g)
}

// ratio returns v/extent clamped to [0, 1]. A non-positive extent yields 0.
func ratio(v, extent float64) float64 {
	if !(extent > 0) || math.IsNaN(v) {
		return 0
	}
	r := v / extent
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
