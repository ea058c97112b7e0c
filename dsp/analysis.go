package dsp

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/ktye/fft"
)

// MaxAnalysisSize bounds the FFT window used by PeakFrequency.
const MaxAnalysisSize = 1 << 16

var errTooShort = errors.New("dsp: too few samples to analyse")

// PeakFrequency returns the frequency of the strongest spectral component
// in samples. It analyses the largest power-of-two window (up to
// MaxAnalysisSize) taken from the middle of the buffer, Hann windowed,
// and refines the peak bin by parabolic interpolation.
func PeakFrequency(samples []float32, sampleRate float64) (float64, error) {
	size := 1
	for size*2 <= len(samples) && size*2 <= MaxAnalysisSize {
		size *= 2
	}
	if size < 64 {
		return 0, errTooShort
	}
	f, err := fft.New(size)
	if err != nil {
		return 0, fmt.Errorf("dsp: fft: %w", err)
	}

	offset := (len(samples) - size) / 2
	buf := make([]complex128, size)
	for i := range buf {
		w := (1 - math.Cos(2*math.Pi*float64(i)/float64(size))) / 2
		buf[i] = complex(float64(samples[offset+i])*w, 0)
	}
	buf = f.Transform(buf)

	mag := make([]float64, size/2)
	peak := 1
	for i := 1; i < len(mag); i++ {
		mag[i] = cmplx.Abs(buf[i])
		if mag[i] > mag[peak] {
			peak = i
		}
	}
	if mag[peak] == 0 {
		return 0, nil
	}

	bin := float64(peak)
	if peak > 1 && peak < len(mag)-1 {
		a, b, c := mag[peak-1], mag[peak], mag[peak+1]
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}
	return bin * sampleRate / float64(size), nil
}

// RMS returns the root mean square level of samples.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Peak returns the largest absolute sample value.
func Peak(samples []float32) float64 {
	var p float64
	for _, s := range samples {
		if a := math.Abs(float64(s)); a > p {
			p = a
		}
	}
	return p
}
