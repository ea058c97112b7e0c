package input

import (
	"reflect"
	"testing"

	"github.com/simukka/touchsynth/synth"
)

// recorder captures voice commands as strings.
type recorder struct {
	calls []string
}

func (r *recorder) Begin(id synth.VoiceID, x, y float64) {
	r.calls = append(r.calls, "begin "+string(id))
}

func (r *recorder) Update(id synth.VoiceID, x, y float64) {
	r.calls = append(r.calls, "update "+string(id))
}

func (r *recorder) End(id synth.VoiceID) {
	r.calls = append(r.calls, "end "+string(id))
}

func TestRouter_PressMoveRelease(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec)
	id := synth.PointerID(1)

	if !r.Press(id, 10, 20) {
		t.Fatal("Expected press to be accepted")
	}
	r.Move(id, 15, 25)
	r.Release(id)

	want := []string{"begin pointer-1", "update pointer-1", "end pointer-1"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}
	if r.Held(id) {
		t.Error("Expected contact to be gone after release")
	}
}

func TestRouter_RepeatPressIgnored(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec)

	r.Press(synth.KeyboardID, 0, 0)
	if r.Press(synth.KeyboardID, 0, 0) {
		t.Error("Expected auto-repeat press to be rejected")
	}
	if len(rec.calls) != 1 {
		t.Errorf("Expected 1 call, got %v", rec.calls)
	}
}

func TestRouter_HoverAndStrayReleaseDropped(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec)

	if r.Move(MouseID, 1, 1) {
		t.Error("Expected hover move to be dropped")
	}
	if r.Release(MouseID) {
		t.Error("Expected release without press to be dropped")
	}
	if len(rec.calls) != 0 {
		t.Errorf("Expected no calls, got %v", rec.calls)
	}
}

func TestRouter_UnchangedMoveNotForwarded(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec)

	r.Press(MouseID, 5, 5)
	r.Move(MouseID, 5, 5)
	if len(rec.calls) != 1 {
		t.Errorf("Expected only the begin call, got %v", rec.calls)
	}
}

func TestRouter_ContactsInPressOrder(t *testing.T) {
	r := NewRouter(&recorder{})
	r.Press(synth.PointerID(3), 1, 1)
	r.Press(synth.PointerID(1), 2, 2)
	r.Press(synth.KeyboardID, 3, 3)
	r.Release(synth.PointerID(1))
	r.Move(synth.PointerID(3), 9, 9)

	got := r.Contacts()
	want := []Contact{
		{ID: synth.PointerID(3), X: 9, Y: 9},
		{ID: synth.KeyboardID, X: 3, Y: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	got[0].X = 100
	if c, _ := r.Contact(synth.PointerID(3)); c.X != 9 {
		t.Error("Expected Contacts to return a copy")
	}
}

func TestRouter_ReleaseAll(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec)
	r.Press(synth.PointerID(1), 0, 0)
	r.Press(synth.PointerID(2), 0, 0)

	r.ReleaseAll()

	if len(r.Contacts()) != 0 {
		t.Error("Expected no contacts")
	}
	want := []string{"begin pointer-1", "begin pointer-2", "end pointer-1", "end pointer-2"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		key    string
		action Action
		n      int
	}{
		{"a", PlayNote, 0},
		{"A", PlayNote, 0},
		{"d", ToggleDelay, 0},
		{"W", NextWaveform, 0},
		{"1", SetPolyphony, 1},
		{"8", SetPolyphony, 8},
		{"9", NoAction, 0},
		{"0", NoAction, 0},
		{"Shift", NoAction, 0},
		{"", NoAction, 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, n := Lookup(tt.key)
			if action != tt.action || n != tt.n {
				t.Errorf("Lookup(%q) = %v, %d, expected %v, %d", tt.key, action, n, tt.action, tt.n)
			}
		})
	}
}

func TestIsNoteKey(t *testing.T) {
	if !IsNoteKey("a") || !IsNoteKey("A") {
		t.Error("Expected a and A to be note keys")
	}
	if IsNoteKey("s") {
		t.Error("Expected s not to be a note key")
	}
}

// table is a recorder that owns the ids in live.
type table struct {
	recorder
	live map[synth.VoiceID]bool
}

func (t *table) Has(id synth.VoiceID) bool { return t.live[id] }

func TestOwned_DropsCommandsForLostVoices(t *testing.T) {
	tab := &table{live: map[synth.VoiceID]bool{"kept": true}}
	r := NewRouter(Owned(tab))

	r.Press("kept", 0, 0)
	r.Press("evicted", 0, 0)
	r.Move("kept", 1, 1)
	r.Move("evicted", 1, 1)
	r.Release("kept")
	r.Release("evicted")

	want := []string{"begin kept", "begin evicted", "update kept", "end kept"}
	if !reflect.DeepEqual(tab.calls, want) {
		t.Errorf("Expected %v, got %v", want, tab.calls)
	}
	if r.Held("evicted") {
		t.Error("Expected the router to forget the released contact")
	}
}
