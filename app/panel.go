package app

import (
	"bytes"
	_ "embed"
	"strconv"
	"text/template"

	"github.com/gopherjs/gopherjs/js"
	"github.com/simukka/touchsynth/synth"
)

//go:embed panel.gohtml
var panelHTML string

var panelTemplate = template.Must(template.New("settingsPanel").Parse(panelHTML))

// panelData holds everything the settings panel template needs.
type panelData struct {
	Stored
	Polyphonies []int
}

// renderPanel executes the settings panel template for s.
func renderPanel(s Stored) (string, error) {
	data := panelData{Stored: s}
	for n := synth.MinPolyphony; n <= synth.MaxPolyphony; n++ {
		data.Polyphonies = append(data.Polyphonies, n)
	}
	var buf bytes.Buffer
	if err := panelTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// initPanel creates the settings panel and opens it on right-click in the
// play area.
func (a *App) initPanel() {
	panel := a.doc.Call("createElement", "div")
	panel.Set("id", "settings-panel")
	panel.Get("style").Set("cssText", `
		position: fixed;
		top: 50%;
		left: 50%;
		transform: translate(-50%, -50%);
		background: rgba(20, 20, 30, 0.95);
		border: 2px solid #4a9eff;
		border-radius: 8px;
		padding: 16px;
		color: #fff;
		font-family: 'Courier New', monospace;
		font-size: 13px;
		z-index: 10000;
		display: none;
		min-width: 280px;
	`)
	a.doc.Get("body").Call("appendChild", panel)
	a.panel = panel

	a.area.Call("addEventListener", "contextmenu", func(e *js.Object) {
		e.Call("preventDefault")
		a.togglePanel()
	})
}

func (a *App) togglePanel() {
	if a.panel.Get("style").Get("display").String() == "none" {
		a.showPanel()
	} else {
		a.hidePanel()
	}
}

// showPanel renders the panel from the stored preferences and attaches
// its handlers.
func (a *App) showPanel() {
	html, err := renderPanel(a.stored)
	if err != nil {
		a.log.Error("settings panel", "err", err)
		return
	}
	a.panel.Set("innerHTML", html)
	a.panel.Get("style").Set("display", "block")

	onClick := func(id string, fn func()) {
		el := a.doc.Call("getElementById", id)
		if el == nil || el == js.Undefined {
			return
		}
		el.Call("addEventListener", "click", func() { fn() })
	}
	onClick("settings-close", a.hidePanel)
	onClick("settings-save", func() {
		a.savePanel()
		a.hidePanel()
	})
	onClick("settings-reset", func() {
		a.stored = Stored{
			ShowInfo:     a.stored.ShowInfo,
			Polyphony:    synth.DefaultPolyphony,
			MinFrequency: synth.DefaultMinFrequency,
			MaxFrequency: synth.DefaultMaxFrequency,
		}
		a.showPanel()
	})
}

func (a *App) hidePanel() {
	a.panel.Get("style").Set("display", "none")
	a.panel.Set("innerHTML", "")
}

// savePanel reads the form, persists it and re-applies the settings the
// same way a page load does.
func (a *App) savePanel() {
	value := func(id string) string {
		el := a.doc.Call("getElementById", id)
		if el == nil || el == js.Undefined {
			return ""
		}
		return el.Get("value").String()
	}

	next := a.stored
	next.ShowInfo = a.doc.Call("getElementById", "settings-showinfo").Get("checked").Bool()
	if n, err := strconv.Atoi(value("settings-polyphony")); err == nil {
		next.Polyphony = synth.ClampPolyphony(n)
	}
	lo, errLo := strconv.ParseFloat(value("settings-minfreq"), 64)
	hi, errHi := strconv.ParseFloat(value("settings-maxfreq"), 64)
	if errLo == nil && errHi == nil {
		next.MinFrequency, next.MaxFrequency = lo, hi
	}

	next.Save(a.store)
	a.applyStored()
}
