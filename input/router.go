// Package input turns pointer, touch and key streams into voice commands.
// It holds no audio state; the browser and desktop front ends feed it raw
// events and draw markers from its contacts.
package input

import (
	"github.com/simukka/touchsynth/synth"
)

// MouseID is the voice id used for a mouse held down outside of a pointer
// events stream.
const MouseID synth.VoiceID = "mouse"

// PrimaryButton is the button number of a left click or a touch contact.
const PrimaryButton = 0

// Voices receives voice commands in area-local coordinates.
type Voices interface {
	Begin(id synth.VoiceID, x, y float64)
	Update(id synth.VoiceID, x, y float64)
	End(id synth.VoiceID)
}

// Contact is one held input and its last position.
type Contact struct {
	ID   synth.VoiceID
	X, Y float64
}

// Router tracks which inputs are held and forwards only well-formed
// press/move/release sequences. It is not safe for concurrent use; both
// front ends call it from their single input goroutine.
type Router struct {
	voices   Voices
	contacts []Contact
}

// NewRouter returns a router driving voices.
func NewRouter(voices Voices) *Router {
	return &Router{voices: voices}
}

// Press starts a voice for id. A second press without a release is
// ignored, which also swallows key auto-repeat.
func (r *Router) Press(id synth.VoiceID, x, y float64) bool {
	if r.index(id) >= 0 {
		return false
	}
	r.contacts = append(r.contacts, Contact{ID: id, X: x, Y: y})
	r.voices.Begin(id, x, y)
	return true
}

// Move retunes a held input. Moves of inputs that are not held, such as
// hover, are dropped.
func (r *Router) Move(id synth.VoiceID, x, y float64) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	if r.contacts[i].X == x && r.contacts[i].Y == y {
		return true
	}
	r.contacts[i].X, r.contacts[i].Y = x, y
	r.voices.Update(id, x, y)
	return true
}

// Release ends the voice for id if it is held.
func (r *Router) Release(id synth.VoiceID) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
	r.voices.End(id)
	return true
}

// ReleaseAll ends every held input, for example when the window loses
// focus.
func (r *Router) ReleaseAll() {
	for len(r.contacts) > 0 {
		r.Release(r.contacts[0].ID)
	}
}

// Held reports whether id is pressed.
func (r *Router) Held(id synth.VoiceID) bool {
	return r.index(id) >= 0
}

// Contact returns the held contact for id.
func (r *Router) Contact(id synth.VoiceID) (Contact, bool) {
	i := r.index(id)
	if i < 0 {
		return Contact{}, false
	}
	return r.contacts[i], true
}

// Contacts returns a copy of the held inputs in press order.
func (r *Router) Contacts() []Contact {
	out := make([]Contact, len(r.contacts))
	copy(out, r.contacts)
	return out
}

func (r *Router) index(id synth.VoiceID) int {
	for i, c := range r.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Table is a Voices that can report which ids still own a voice.
type Table interface {
	Voices
	Has(id synth.VoiceID) bool
}

// Owned forwards Update and End only for ids that still own a voice. A
// contact whose voice was evicted keeps moving silently until released.
func Owned(t Table) Voices {
	return owned{t}
}

type owned struct {
	Table
}

func (o owned) Update(id synth.VoiceID, x, y float64) {
	if o.Has(id) {
		o.Table.Update(id, x, y)
	}
}

func (o owned) End(id synth.VoiceID) {
	if o.Has(id) {
		o.Table.End(id)
	}
}
