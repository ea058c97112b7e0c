package app

import (
	"strconv"

	"github.com/gopherjs/gopherjs/js"
	"github.com/simukka/touchsynth/input"
	"github.com/simukka/touchsynth/synth"
)

// initPointer handles mouse, pen and touch through pointer events.
func (a *App) initPointer() {
	a.area.Call("addEventListener", "pointerdown", func(e *js.Object) {
		if e.Get("button").Int() != input.PrimaryButton {
			return
		}
		e.Call("preventDefault")
		a.ctx.Resume()
		a.updateBounds()

		n := e.Get("pointerId").Int()
		a.capture(n)
		x, y := a.relative(e)
		id := synth.PointerID(n)
		if a.router.Press(id, x, y) {
			a.view.placeMarker(id, "pointer"+strconv.Itoa(n), x, y)
		}
		a.view.showInfo(true)
		a.refreshInfo(e, x, y)
	})

	a.area.Call("addEventListener", "pointermove", func(e *js.Object) {
		x, y := a.relative(e)
		a.refreshInfo(e, x, y)
		id := synth.PointerID(e.Get("pointerId").Int())
		if a.router.Move(id, x, y) {
			a.view.placeMarker(id, "", x, y)
		}
	})

	up := func(e *js.Object) {
		a.view.showInfo(false)
		id := synth.PointerID(e.Get("pointerId").Int())
		a.router.Release(id)
		a.view.removeMarker(id)
	}
	a.area.Call("addEventListener", "pointerup", up)
	a.area.Call("addEventListener", "pointercancel", up)
}

// capture keeps delivering a pointer's events to the play area after it
// leaves it, so the matching pointerup is never lost.
func (a *App) capture(pointerID int) {
	defer func() { recover() }()
	a.area.Call("setPointerCapture", pointerID)
}

func (a *App) refreshInfo(e *js.Object, x, y float64) {
	if a.view.info == nil {
		return
	}
	rect := a.area.Call("getBoundingClientRect")
	b := synth.Bounds{Width: rect.Get("width").Float(), Height: rect.Get("height").Float()}
	freq, amp := synth.NewMapper(a.settings.MinFrequency, a.settings.MaxFrequency).Map(x, y, b)
	a.view.moveInfo(e.Get("clientX").Float(), e.Get("clientY").Float(), freq, amp)
}

// initKeyboard plays the fixed A4 voice while the note key is held.
func (a *App) initKeyboard() {
	a.doc.Call("addEventListener", "keydown", func(e *js.Object) {
		if !input.IsNoteKey(e.Get("key").String()) {
			return
		}
		a.ctx.Resume()
		x := a.area.Get("clientWidth").Float() / 2
		y := a.area.Get("clientHeight").Float() / 2
		if a.router.Press(synth.KeyboardID, x, y) {
			a.view.placeMarker(synth.KeyboardID, "pointerKeyboard", x, y)
		}
	})

	a.doc.Call("addEventListener", "keyup", func(e *js.Object) {
		if !input.IsNoteKey(e.Get("key").String()) {
			return
		}
		a.router.Release(synth.KeyboardID)
		a.view.removeMarker(synth.KeyboardID)
	})
}
