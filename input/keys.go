package input

import "strings"

// Action is a front-end command bound to a key.
type Action int

const (
	NoAction Action = iota
	PlayNote
	ToggleDelay
	NextWaveform
	SetPolyphony
)

// KeyMap maps key names, as reported by KeyboardEvent.key, to actions.
// Digits are handled by Lookup.
var KeyMap = map[string]Action{
	"a": PlayNote,
	"d": ToggleDelay,
	"w": NextWaveform,
}

// Lookup returns the action bound to key. For SetPolyphony the returned
// number is the requested voice count.
func Lookup(key string) (Action, int) {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '8' {
		return SetPolyphony, int(key[0] - '0')
	}
	if a, ok := KeyMap[strings.ToLower(key)]; ok {
		return a, 0
	}
	return NoAction, 0
}

// IsNoteKey reports whether key plays the fixed-pitch keyboard voice.
func IsNoteKey(key string) bool {
	a, _ := Lookup(key)
	return a == PlayNote
}
