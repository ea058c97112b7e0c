package app

import (
	"testing"

	"github.com/simukka/touchsynth/synth"
)

func TestLoadStored_EmptyStore(t *testing.T) {
	st := MemoryStore{}
	s := LoadStored(st)

	if s.ShowInfo {
		t.Error("Expected info display off by default")
	}
	if s.Polyphony != 2 {
		t.Errorf("Expected polyphony 2, got %d", s.Polyphony)
	}
	if s.MinFrequency != 27.5 || s.MaxFrequency != 7040 {
		t.Errorf("Expected 27.5-7040, got %v-%v", s.MinFrequency, s.MaxFrequency)
	}
	if st[KeyMinFrequency] != "27.5" || st[KeyMaxFrequency] != "7040" {
		t.Errorf("Expected default range written back, got %v", st)
	}
}

func TestLoadStored_Polyphony(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"in range", "5", 5},
		{"too low", "0", 1},
		{"negative", "-3", 1},
		{"too high", "12", 8},
		{"garbage", "many", 2},
		{"padded", " 4 ", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := LoadStored(MemoryStore{KeyPolyphony: tt.value})
			if s.Polyphony != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, s.Polyphony)
			}
		})
	}
}

func TestLoadStored_ShowInfo(t *testing.T) {
	if !LoadStored(MemoryStore{KeyShowInfo: "true"}).ShowInfo {
		t.Error("Expected \"true\" to enable the info display")
	}
	if LoadStored(MemoryStore{KeyShowInfo: "yes"}).ShowInfo {
		t.Error("Expected only \"true\" to enable the info display")
	}
}

func TestLoadStored_FrequencyRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		wantMin  float64
		wantMax  float64
		reset    bool
	}{
		{"valid", "100", "2000", 100, 2000, false},
		{"inverted", "2000", "100", 27.5, 7040, true},
		{"equal", "440", "440", 27.5, 7040, true},
		{"zero min", "0", "2000", 27.5, 7040, true},
		{"not a number", "low", "2000", 27.5, 7040, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := MemoryStore{KeyMinFrequency: tt.min, KeyMaxFrequency: tt.max}
			s := LoadStored(st)
			if s.MinFrequency != tt.wantMin || s.MaxFrequency != tt.wantMax {
				t.Errorf("Expected %v-%v, got %v-%v", tt.wantMin, tt.wantMax, s.MinFrequency, s.MaxFrequency)
			}
			if tt.reset && (st[KeyMinFrequency] != "27.5" || st[KeyMaxFrequency] != "7040") {
				t.Errorf("Expected reset range written back, got %v", st)
			}
			if !tt.reset && st[KeyMinFrequency] != tt.min {
				t.Errorf("Expected stored value untouched, got %q", st[KeyMinFrequency])
			}
		})
	}
}

func TestStored_SaveThenLoad(t *testing.T) {
	st := MemoryStore{}
	want := Stored{ShowInfo: true, Polyphony: 6, MinFrequency: 55, MaxFrequency: 1760}
	want.Save(st)

	if got := LoadStored(st); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestStored_ApplyTo(t *testing.T) {
	s := Stored{Polyphony: 3, MinFrequency: 110, MaxFrequency: 880}
	got := s.ApplyTo(synth.DefaultSettings())

	if got.MaxPolyphony != 3 || got.MinFrequency != 110 || got.MaxFrequency != 880 {
		t.Errorf("Expected stored values applied, got %+v", got)
	}
	if got.Attack != synth.DefaultSettings().Attack {
		t.Errorf("Expected other fields untouched, got %+v", got)
	}
}
