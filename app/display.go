package app

import (
	"strconv"
	"strings"

	"github.com/gopherjs/gopherjs/js"
	"github.com/simukka/touchsynth/synth"
)

// view owns the DOM elements the app creates: the info display, pointer
// markers, slider labels and debug log entries.
type view struct {
	doc      *js.Object
	area     *js.Object
	debugLog *js.Object
	info     *js.Object
	markers  map[synth.VoiceID]*js.Object
	labels   map[string]*js.Object
}

func newView(doc, area, debugLog *js.Object) *view {
	return &view{
		doc:      doc,
		area:     area,
		debugLog: debugLog,
		markers:  make(map[synth.VoiceID]*js.Object),
		labels:   make(map[string]*js.Object),
	}
}

// setInfoEnabled creates or removes the floating info display.
func (v *view) setInfoEnabled(on bool) {
	switch {
	case on && v.info == nil:
		info := v.doc.Call("createElement", "div")
		info.Set("id", "infoDisplay")
		style := info.Get("style")
		style.Set("position", "absolute")
		style.Set("backgroundColor", "rgba(255, 255, 255, 0.8)")
		style.Set("padding", "5px")
		style.Set("borderRadius", "5px")
		style.Set("pointerEvents", "none")
		style.Set("display", "none")
		v.doc.Get("body").Call("appendChild", info)
		v.info = info
	case !on && v.info != nil:
		v.info.Call("remove")
		v.info = nil
	}
}

func (v *view) showInfo(visible bool) {
	if v.info == nil {
		return
	}
	if visible {
		v.info.Get("style").Set("display", "block")
	} else {
		v.info.Get("style").Set("display", "none")
	}
}

// moveInfo places the info display next to the pointer, in client
// coordinates, and refreshes its text.
func (v *view) moveInfo(clientX, clientY, frequency, amplitude float64) {
	if v.info == nil {
		return
	}
	style := v.info.Get("style")
	style.Set("left", px(clientX+15))
	style.Set("top", px(clientY))
	v.info.Set("innerHTML", strings.Replace(synth.FormatInfo(frequency, amplitude), "\n", "<br>", 1))
}

// placeMarker creates the marker for id if needed and moves it to (x, y)
// in area coordinates. The first live marker gets the primary colour.
func (v *view) placeMarker(id synth.VoiceID, elementID string, x, y float64) {
	m, ok := v.markers[id]
	if !ok {
		class := "pointer2"
		if len(v.markers) == 0 {
			class = "pointer1"
		}
		m = v.doc.Call("createElement", "div")
		m.Get("classList").Call("add", "pointer", class)
		m.Set("id", elementID)
		v.area.Call("appendChild", m)
		v.markers[id] = m
	}
	style := m.Get("style")
	style.Set("left", px(x))
	style.Set("top", px(y))
	m.Get("classList").Call("add", "active")
}

func (v *view) removeMarker(id synth.VoiceID) {
	m, ok := v.markers[id]
	if !ok {
		return
	}
	v.area.Call("removeChild", m)
	delete(v.markers, id)
}

// label sets the text of the slider label div named id, appending it to
// the debug log on first use.
func (v *view) label(id, text string) {
	l, ok := v.labels[id]
	if !ok {
		l = v.doc.Call("createElement", "div")
		l.Set("id", id)
		if v.debugLog != nil {
			v.debugLog.Call("appendChild", l)
		}
		v.labels[id] = l
	}
	l.Set("textContent", text)
}

// entry appends a line to the debug log and scrolls it into view.
func (v *view) entry(message string) {
	if v.debugLog == nil {
		return
	}
	e := v.doc.Call("createElement", "div")
	e.Get("classList").Call("add", "debug-entry")
	e.Set("textContent", message)
	v.debugLog.Call("appendChild", e)
	v.debugLog.Set("scrollTop", v.debugLog.Get("scrollHeight"))
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
