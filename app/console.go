package app

import (
	"fmt"
	"strings"

	"github.com/gopherjs/gopherjs/js"
	"github.com/simukka/touchsynth/synth"
)

// EnableDebug turns on debug output to the browser console.
var EnableDebug = true

// Console is a synth.Logger writing to the browser console. Messages are
// rendered as "msg key=value ..." so they read the same as the native
// binaries' slog output.
type Console struct {
	// Mirror, when set, also receives every debug message. The app uses it
	// to append entries to the on-page debug log.
	Mirror func(string)
}

var _ synth.Logger = (*Console)(nil)

// Debug logs to console.log if debug mode is enabled.
func (c *Console) Debug(msg string, args ...any) {
	line := formatLine(msg, args)
	if c.Mirror != nil {
		c.Mirror(line)
	}
	if EnableDebug {
		consoleCall("log", line)
	}
}

// Warn logs to console.warn.
func (c *Console) Warn(msg string, args ...any) {
	consoleCall("warn", formatLine(msg, args))
}

// Error logs to console.error.
func (c *Console) Error(msg string, args ...any) {
	consoleCall("error", formatLine(msg, args))
}

func consoleCall(method, line string) {
	console := js.Global.Get("console")
	if console == nil || console == js.Undefined {
		return
	}
	console.Call(method, line)
}

// formatLine joins a message and its key/value pairs. A trailing key with
// no value is printed as is.
func formatLine(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		b.WriteByte(' ')
		if i+1 == len(args) {
			fmt.Fprint(&b, args[i])
			break
		}
		fmt.Fprintf(&b, "%v=%v", args[i], args[i+1])
	}
	return b.String()
}
