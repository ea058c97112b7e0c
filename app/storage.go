package app

import (
	"strconv"
	"strings"

	"github.com/simukka/touchsynth/synth"
)

// Keys written by the settings page.
const (
	KeyShowInfo     = "showInfo"
	KeyPolyphony    = "polyphony"
	KeyMinFrequency = "minFrequency"
	KeyMaxFrequency = "maxFrequency"
)

// Store is the subset of the Web Storage API the app uses.
type Store interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string)
}

// MemoryStore is a Store kept in memory. It stands in for localStorage
// when the browser refuses access to it.
type MemoryStore map[string]string

func (m MemoryStore) GetItem(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MemoryStore) SetItem(key, value string) {
	m[key] = value
}

// Stored holds the preferences persisted between page loads.
type Stored struct {
	ShowInfo     bool
	Polyphony    int
	MinFrequency float64
	MaxFrequency float64
}

// LoadStored reads the preferences from st. The polyphony is clamped to
// [1, 8] and defaults to 2. An invalid frequency range is replaced by the
// default range, which is written back.
func LoadStored(st Store) Stored {
	s := Stored{Polyphony: synth.DefaultPolyphony}

	if v, ok := st.GetItem(KeyShowInfo); ok {
		s.ShowInfo = v == "true"
	}
	if v, ok := st.GetItem(KeyPolyphony); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			s.Polyphony = n
		}
	}
	s.Polyphony = synth.ClampPolyphony(s.Polyphony)

	lo, okLo := storedFloat(st, KeyMinFrequency)
	hi, okHi := storedFloat(st, KeyMaxFrequency)
	if okLo && okHi && synth.ValidFrequencyRange(lo, hi) {
		s.MinFrequency, s.MaxFrequency = lo, hi
	} else {
		s.MinFrequency, s.MaxFrequency = synth.DefaultMinFrequency, synth.DefaultMaxFrequency
		st.SetItem(KeyMinFrequency, formatFloat(s.MinFrequency))
		st.SetItem(KeyMaxFrequency, formatFloat(s.MaxFrequency))
	}
	return s
}

// Save writes every preference to st.
func (s Stored) Save(st Store) {
	st.SetItem(KeyShowInfo, strconv.FormatBool(s.ShowInfo))
	st.SetItem(KeyPolyphony, strconv.Itoa(s.Polyphony))
	st.SetItem(KeyMinFrequency, formatFloat(s.MinFrequency))
	st.SetItem(KeyMaxFrequency, formatFloat(s.MaxFrequency))
}

// ApplyTo copies the stored preferences into a settings value.
func (s Stored) ApplyTo(settings synth.Settings) synth.Settings {
	settings.MaxPolyphony = s.Polyphony
	settings.MinFrequency = s.MinFrequency
	settings.MaxFrequency = s.MaxFrequency
	return settings
}

func storedFloat(st Store, key string) (float64, bool) {
	v, ok := st.GetItem(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
