package dsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/simukka/touchsynth/synth"
)

func TestSaveWAV_WritesDecodablePCM(t *testing.T) {
	ctx := NewContext(8000)
	mustTone(t, ctx, ctx.Destination(), synth.Square, 100)
	samples := ctx.Advance(0.5)

	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := SaveWAV(path, samples, 8000); err != nil {
		t.Fatalf("SaveWAV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("Expected a valid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer: %v", err)
	}
	if dec.SampleRate != 8000 {
		t.Errorf("Expected sample rate 8000, got %d", dec.SampleRate)
	}
	if dec.NumChans != 1 {
		t.Errorf("Expected mono, got %d channels", dec.NumChans)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("Expected %d samples, got %d", len(samples), len(buf.Data))
	}
	if buf.Data[0] != 32767 {
		t.Errorf("Expected first square sample at full scale, got %d", buf.Data[0])
	}
}

func TestWriteWAV_ClipsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := SaveWAV(path, []float32{2, -2, 0.5}, 8000); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	expected := []int{32767, -32767, 16384}
	for i, want := range expected {
		if buf.Data[i] != want {
			t.Errorf("Sample %d = %d, expected %d", i, buf.Data[i], want)
		}
	}
}
