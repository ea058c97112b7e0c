package dsp

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes mono samples as 16-bit PCM.
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		buf.Data[i] = int(math.Round(float64(clip(s)) * 32767))
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("dsp: encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("dsp: finish wav: %w", err)
	}
	return nil
}

// SaveWAV writes samples to path, replacing any existing file.
func SaveWAV(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dsp: create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteWAV(f, samples, sampleRate); err != nil {
		return err
	}
	return f.Close()
}

func clip(s float32) float32 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
