package synth

import (
	"fmt"
	"strconv"
)

// FormatInfo returns the two-line info display text for a sounding voice.
func FormatInfo(frequency, amplitude float64) string {
	return fmt.Sprintf("Frequency: %.1f Hz\nVolume: %.1f dB", frequency, GainToDB(amplitude))
}

func FormatAttack(seconds float64) string {
	return "Attack Time: " + formatSeconds(seconds) + "s"
}

func FormatRelease(seconds float64) string {
	return "Release Time: " + formatSeconds(seconds) + "s"
}

func FormatDelayTime(seconds float64) string {
	return "Delay Time: " + formatSeconds(seconds) + "s"
}

// FormatFeedback renders a loop gain in [0, 1] as a percentage.
func FormatFeedback(gain float64) string {
	return fmt.Sprintf("Feedback: %.2f%%", gain*100)
}

// FormatEvent returns a one-line log entry for a lifecycle event.
func FormatEvent(ev Event) string {
	v := ev.Voice
	switch ev.Kind {
	case EventCreated:
		return fmt.Sprintf("%s: started with Frequency: %.2f Hz, Volume: %.2f%%", v.ID, v.Frequency, v.Amplitude*100)
	case EventChanged:
		return fmt.Sprintf("%s: updated to Frequency: %.2f Hz, Volume: %.2f%%", v.ID, v.Frequency, v.Amplitude*100)
	case EventReleasing:
		return fmt.Sprintf("%s: releasing over %ss", v.ID, formatSeconds(v.Release))
	case EventEvicted:
		return fmt.Sprintf("%s: evicted (%d live)", v.ID, ev.Live)
	case EventTerminated:
		return fmt.Sprintf("%s: ended (%d live)", v.ID, ev.Live)
	default:
		return fmt.Sprintf("%s: %s", v.ID, ev.Kind)
	}
}

// formatSeconds prints a duration the way a range input reports its value.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
