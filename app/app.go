// Package app is the browser front end: it binds the page's play area and
// controls to a Web Audio backed voice scheduler.
package app

import (
	"errors"
	"strconv"

	"github.com/gopherjs/gopherjs/js"
	"github.com/simukka/touchsynth/audio"
	"github.com/simukka/touchsynth/input"
	"github.com/simukka/touchsynth/synth"
)

// EnableEventLog appends every voice lifecycle event to the debug log.
var EnableEventLog = false

// ErrMissingElement is returned when the page lacks the play area.
var ErrMissingElement = errors.New("synthArea element not found")

// App holds the page state. All methods run on the JS event loop.
type App struct {
	doc   *js.Object
	area  *js.Object
	panel *js.Object

	ctx    *audio.Context
	bus    *synth.EffectBus
	sched  *synth.Scheduler
	router *input.Router
	log    *Console
	view   *view

	store    Store
	stored   Stored
	settings synth.Settings
}

// New builds the audio graph and binds it to the page in doc.
func New(doc *js.Object) (*App, error) {
	area := doc.Call("getElementById", "synthArea")
	if area == nil || area == js.Undefined {
		return nil, ErrMissingElement
	}

	a := &App{
		doc:   doc,
		area:  area,
		log:   &Console{},
		store: openStorage(),
		view:  newView(doc, area, element(doc, "debugLog")),
	}
	a.log.Mirror = a.view.entry

	ctx, err := audio.NewContext()
	if err != nil {
		return nil, err
	}
	a.ctx = ctx

	bus, err := synth.NewEffectBus(ctx, a.log)
	if err != nil {
		return nil, err
	}
	a.bus = bus
	a.sched = synth.NewScheduler(ctx, bus, a.log)
	a.sched.OnEvent(func(ev synth.Event) {
		if EnableEventLog {
			a.view.entry(synth.FormatEvent(ev))
		}
	})
	a.router = input.NewRouter(input.Owned(a.sched))

	a.settings = a.readControls()
	a.updateBounds()
	return a, nil
}

// Start attaches every event handler and applies the stored preferences.
func (a *App) Start() {
	a.initControls()
	a.initPointer()
	a.initKeyboard()
	a.initPanel()

	apply := func() { a.applyStored() }
	a.doc.Call("addEventListener", "DOMContentLoaded", apply)
	js.Global.Call("addEventListener", "pageshow", apply)
	js.Global.Call("addEventListener", "resize", func() { a.updateBounds() })
	js.Global.Call("addEventListener", "blur", func() { a.releaseAll() })
	js.Global.Call("addEventListener", "beforeunload", func() { a.Close() })
	a.applyStored()
}

// Close silences every voice and releases the audio device.
func (a *App) Close() {
	a.sched.Close()
	a.bus.Close()
	a.ctx.Close()
}

// Voices returns the number of live voices.
func (a *App) Voices() int {
	return a.sched.Len()
}

// applyStored reloads the settings page preferences.
func (a *App) applyStored() {
	a.stored = LoadStored(a.store)
	a.view.setInfoEnabled(a.stored.ShowInfo)
	a.settings = a.stored.ApplyTo(a.settings)
	a.sched.Apply(a.settings)
}

func (a *App) apply() {
	a.sched.Apply(a.settings)
	a.settings = a.sched.Settings()
}

func (a *App) updateBounds() {
	rect := a.area.Call("getBoundingClientRect")
	a.sched.SetBounds(rect.Get("width").Float(), rect.Get("height").Float())
}

// relative converts an event's client position to area coordinates.
func (a *App) relative(e *js.Object) (x, y float64) {
	rect := a.area.Call("getBoundingClientRect")
	return e.Get("clientX").Float() - rect.Get("left").Float(),
		e.Get("clientY").Float() - rect.Get("top").Float()
}

func (a *App) releaseAll() {
	for _, c := range a.router.Contacts() {
		a.view.removeMarker(c.ID)
	}
	a.router.ReleaseAll()
	a.view.showInfo(false)
}

// readControls builds settings from the controls' initial values.
func (a *App) readControls() synth.Settings {
	s := synth.DefaultSettings()
	if w := synth.Waveform(a.value("waveform")); w.Valid() {
		s.Waveform = w
	}
	s.Attack = a.number("attackSlider", s.Attack)
	s.Release = a.number("releaseSlider", s.Release)
	s.DelayTime = a.number("delayTime", s.DelayTime)
	s.Feedback = a.number("feedback", s.Feedback)
	if el := element(a.doc, "delayToggle"); el != nil {
		s.DelayEnabled = el.Get("checked").Bool()
	}
	return s.Normalize()
}

// initControls labels the sliders and applies their changes live.
func (a *App) initControls() {
	a.view.label("attackDisplay", synth.FormatAttack(a.settings.Attack))
	a.view.label("releaseDisplay", synth.FormatRelease(a.settings.Release))
	a.view.label("delayDisplayTime", synth.FormatDelayTime(a.settings.DelayTime))
	a.view.label("delayDisplayFeedback", synth.FormatFeedback(a.settings.Feedback))

	a.on("waveform", "change", func(v string) {
		a.settings.Waveform = synth.Waveform(v)
		a.apply()
	})
	a.on("attackSlider", "input", func(v string) {
		a.view.label("attackDisplay", "Attack Time: "+v+"s")
		a.settings.Attack = parseOr(v, a.settings.Attack)
		a.apply()
	})
	a.on("releaseSlider", "input", func(v string) {
		a.view.label("releaseDisplay", "Release Time: "+v+"s")
		a.settings.Release = parseOr(v, a.settings.Release)
		a.apply()
	})
	a.on("delayTime", "input", func(v string) {
		a.view.label("delayDisplayTime", "Delay Time: "+v+"s")
		a.settings.DelayTime = parseOr(v, a.settings.DelayTime)
		a.apply()
	})
	a.on("feedback", "input", func(v string) {
		a.settings.Feedback = parseOr(v, a.settings.Feedback)
		a.view.label("delayDisplayFeedback", synth.FormatFeedback(a.settings.Feedback))
		a.apply()
	})
	if el := element(a.doc, "delayToggle"); el != nil {
		el.Call("addEventListener", "change", func() {
			a.settings.DelayEnabled = el.Get("checked").Bool()
			a.apply()
		})
	}
}

// on calls fn with the element's value whenever event fires on it.
func (a *App) on(id, event string, fn func(value string)) {
	el := element(a.doc, id)
	if el == nil {
		return
	}
	el.Call("addEventListener", event, func() {
		fn(el.Get("value").String())
	})
}

func (a *App) value(id string) string {
	el := element(a.doc, id)
	if el == nil {
		return ""
	}
	return el.Get("value").String()
}

func (a *App) number(id string, fallback float64) float64 {
	return parseOr(a.value(id), fallback)
}

func parseOr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

// element returns the element with id, or nil.
func element(doc *js.Object, id string) *js.Object {
	el := doc.Call("getElementById", id)
	if el == nil || el == js.Undefined {
		return nil
	}
	return el
}

// localStore is a Store backed by window.localStorage.
type localStore struct {
	obj *js.Object
}

func (l localStore) GetItem(key string) (string, bool) {
	v := l.obj.Call("getItem", key)
	if v == nil || v == js.Undefined {
		return "", false
	}
	return v.String(), true
}

func (l localStore) SetItem(key, value string) {
	l.obj.Call("setItem", key, value)
}

// openStorage returns localStorage, or a MemoryStore when the browser
// blocks it.
func openStorage() (st Store) {
	defer func() {
		if recover() != nil {
			st = MemoryStore{}
		}
	}()
	obj := js.Global.Get("localStorage")
	if obj == nil || obj == js.Undefined {
		return MemoryStore{}
	}
	return localStore{obj: obj}
}
