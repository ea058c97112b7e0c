package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simukka/touchsynth/synth"
)

func TestLoadFrom_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Synth != synth.DefaultSettings() {
		t.Errorf("Expected default synth settings, got %+v", cfg.Synth)
	}
}

func TestSaveTo_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Synth.Waveform = synth.Sawtooth
	cfg.Synth.MaxPolyphony = 5
	cfg.Synth.DelayEnabled = true
	cfg.Window.ShowInfo = false

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Synth != cfg.Synth || got.Window != cfg.Window || got.Audio != cfg.Audio {
		t.Errorf("Expected %+v, got %+v", cfg, got)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"synth": {"maxPolyphony": 4}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Synth.MaxPolyphony != 4 {
		t.Errorf("Expected polyphony 4, got %d", cfg.Synth.MaxPolyphony)
	}
	if cfg.Synth.Waveform != synth.Sine || cfg.Audio.SampleRate != 48000 {
		t.Errorf("Expected defaults for missing fields, got %+v", cfg)
	}
}

func TestLoadFrom_NormalizesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"synth": {"maxPolyphony": 40, "minFrequency": 900, "maxFrequency": 100, "feedback": 3}, "audio": {"sampleRate": -1}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Synth.MaxPolyphony != synth.MaxPolyphony {
		t.Errorf("Expected polyphony clamped to %d, got %d", synth.MaxPolyphony, cfg.Synth.MaxPolyphony)
	}
	if cfg.Synth.MinFrequency != synth.DefaultMinFrequency || cfg.Synth.MaxFrequency != synth.DefaultMaxFrequency {
		t.Errorf("Expected the default range, got %v-%v", cfg.Synth.MinFrequency, cfg.Synth.MaxFrequency)
	}
	if cfg.Synth.Feedback != 1 {
		t.Errorf("Expected feedback clamped to 1, got %v", cfg.Synth.Feedback)
	}
	if cfg.Audio.SampleRate != 48000 {
		t.Errorf("Expected the default sample rate, got %d", cfg.Audio.SampleRate)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("Expected a parse error")
	}
}
