package dsp

import (
	"math"
	"testing"
)

func sineSamples(freq, sampleRate float64, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / sampleRate))
	}
	return out
}

func TestPeakFrequency_FindsSine(t *testing.T) {
	tests := []struct {
		name string
		freq float64
	}{
		{"Low A", 55},
		{"Concert A", 440},
		{"Off-bin", 1234.5},
		{"High", 7040},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PeakFrequency(sineSamples(tt.freq, 48000, 48000), 48000)
			if err != nil {
				t.Fatal(err)
			}
			if !almostEqual(got, tt.freq, 0.5) {
				t.Errorf("PeakFrequency = %.3f, expected %.3f", got, tt.freq)
			}
		})
	}
}

func TestPeakFrequency_TooShort(t *testing.T) {
	if _, err := PeakFrequency(make([]float32, 10), 48000); err == nil {
		t.Error("Expected an error for a 10-sample buffer")
	}
}

func TestPeakFrequency_SilenceIsZero(t *testing.T) {
	got, err := PeakFrequency(make([]float32, 4096), 48000)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("Expected 0 Hz for silence, got %f", got)
	}
}

func TestLevels(t *testing.T) {
	s := []float32{1, -1, 1, -1}
	if !almostEqual(RMS(s), 1, floatTolerance) {
		t.Errorf("RMS = %f, expected 1", RMS(s))
	}
	if Peak([]float32{0.1, -0.6, 0.3}) != float64(float32(0.6)) {
		t.Errorf("Peak = %f, expected 0.6", Peak([]float32{0.1, -0.6, 0.3}))
	}
	if RMS(nil) != 0 {
		t.Error("Expected RMS of an empty buffer to be 0")
	}
}
