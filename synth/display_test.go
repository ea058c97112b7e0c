package synth

import "testing"

func TestFormatInfo(t *testing.T) {
	tests := []struct {
		name     string
		freq     float64
		amp      float64
		expected string
	}{
		{"Loudest", 440, 0.1, "Frequency: 440.0 Hz\nVolume: -20.0 dB"},
		{"Quietest", 27.5, 0.001, "Frequency: 27.5 Hz\nVolume: -60.0 dB"},
		{"Keyboard", KeyboardFrequency, KeyboardAmplitude, "Frequency: 440.0 Hz\nVolume: -6.0 dB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatInfo(tt.freq, tt.amp); got != tt.expected {
				t.Errorf("FormatInfo(%v, %v) = %q, expected %q", tt.freq, tt.amp, got, tt.expected)
			}
		})
	}
}

func TestSliderLabels(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Attack", FormatAttack(0.25), "Attack Time: 0.25s"},
		{"Attack whole", FormatAttack(1), "Attack Time: 1s"},
		{"Release", FormatRelease(1.5), "Release Time: 1.5s"},
		{"Delay", FormatDelayTime(0.3), "Delay Time: 0.3s"},
		{"Feedback", FormatFeedback(0.5), "Feedback: 50.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Got %q, expected %q", tt.got, tt.expected)
			}
		})
	}
}

func TestFormatEvent(t *testing.T) {
	ev := Event{
		Kind:  EventCreated,
		Voice: VoiceInfo{ID: PointerID(3), Frequency: 440, Amplitude: 0.1},
		Live:  1,
	}
	expected := "pointer-3: started with Frequency: 440.00 Hz, Volume: 10.00%"
	if got := FormatEvent(ev); got != expected {
		t.Errorf("FormatEvent = %q, expected %q", got, expected)
	}

	ev.Kind = EventEvicted
	ev.Live = 2
	if got := FormatEvent(ev); got != "pointer-3: evicted (2 live)" {
		t.Errorf("FormatEvent = %q", got)
	}
}
