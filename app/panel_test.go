package app

import (
	"strings"
	"testing"
)

func TestRenderPanel(t *testing.T) {
	html, err := renderPanel(Stored{ShowInfo: true, Polyphony: 3, MinFrequency: 55, MaxFrequency: 1760})
	if err != nil {
		t.Fatalf("renderPanel: %v", err)
	}

	for _, want := range []string{
		`id="settings-showinfo" type="checkbox" checked`,
		`<option value="3" selected>3</option>`,
		`<option value="8">8</option>`,
		`value="55"`,
		`value="1760"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected panel to contain %q", want)
		}
	}
	if strings.Count(html, "<option") != 8 {
		t.Errorf("Expected 8 polyphony options, got %d", strings.Count(html, "<option"))
	}
}

func TestRenderPanel_InfoOff(t *testing.T) {
	html, err := renderPanel(Stored{Polyphony: 2, MinFrequency: 27.5, MaxFrequency: 7040})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "checked") {
		t.Error("Expected the info checkbox to be unchecked")
	}
	if !strings.Contains(html, `value="27.5"`) {
		t.Error("Expected the minimum frequency to be rendered")
	}
}
