//go:build js
// +build js

package main

import (
	"github.com/gopherjs/gopherjs/js"
	"github.com/simukka/touchsynth/app"
)

func main() {
	doc := js.Global.Get("document")

	a, err := app.New(doc)
	if err != nil {
		js.Global.Get("console").Call("error", "touchsynth: "+err.Error())
		return
	}
	a.Start()

	// Let the page drive the instrument from the console.
	js.Global.Set("TouchSynth", map[string]interface{}{
		"debug": func(on bool) {
			app.EnableDebug = on
		},
		"eventLog": func(on bool) {
			app.EnableEventLog = on
		},
		"voices": func() int {
			return a.Voices()
		},
	})

	select {}
}
