package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/simukka/touchsynth/dsp"
	"github.com/simukka/touchsynth/synth"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4a9eff"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888")).Width(18)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	evictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6a4a"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4a9eff")).
			Padding(0, 1)
)

// report renders the summary box, preceded by the event log when present.
func report(r *result) string {
	var b strings.Builder
	for _, ev := range r.Events {
		line := fmt.Sprintf("%8.3fs  %s", ev.Time, synth.FormatEvent(ev))
		if ev.Kind == synth.EventEvicted {
			b.WriteString(evictStyle.Render(line))
		} else {
			b.WriteString(dimStyle.Render(line))
		}
		b.WriteByte('\n')
	}

	s := r.Settings
	seconds := 0.0
	if r.SampleRate > 0 {
		seconds = float64(len(r.Samples)) / float64(r.SampleRate)
	}
	delay := "off"
	if s.DelayEnabled {
		delay = strconv.FormatFloat(s.DelayTime, 'f', -1, 64) + "s, " + synth.FormatFeedback(s.Feedback)
	}
	peakHz := "-"
	if r.PeakHz > 0 {
		peakHz = fmt.Sprintf("%.1f Hz", r.PeakHz)
	}

	rows := [][2]string{
		{"output", r.Path},
		{"seed", strconv.FormatUint(uint64(r.Seed), 10)},
		{"length", fmt.Sprintf("%.2fs @ %d Hz", seconds, r.SampleRate)},
		{"waveform", string(s.Waveform)},
		{"envelope", fmt.Sprintf("attack %gs, release %gs", s.Attack, s.Release)},
		{"delay", delay},
		{"polyphony", strconv.Itoa(s.MaxPolyphony)},
		{"voices created", strconv.Itoa(r.Summary.Created)},
		{"voices evicted", strconv.Itoa(r.Summary.Evicted)},
		{"voices ended", strconv.Itoa(r.Summary.Terminated)},
		{"peak polyphony", strconv.Itoa(r.Summary.PeakVoices)},
		{"peak level", fmt.Sprintf("%.3f (rms %.3f)", dsp.Peak(r.Samples), dsp.RMS(r.Samples))},
		{"dominant pitch", peakHz},
	}

	lines := []string{titleStyle.Render("touchsynth render")}
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(row[0]),
			valueStyle.Render(row[1]),
		))
	}
	b.WriteString(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	return b.String()
}
