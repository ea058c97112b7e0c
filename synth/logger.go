package synth

// Logger receives diagnostics as a message plus alternating key/value
// pairs. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NopLogger discards everything.
var NopLogger Logger = nopLogger{}

type mirrorLogger struct {
	Logger
	fn func(string)
}

func (l mirrorLogger) Debug(msg string, args ...any) {
	l.Logger.Debug(msg, args...)
	l.fn(msg)
}

// Mirror returns a Logger that passes everything to log and also hands
// each Debug message to fn, for front ends that show them on screen.
func Mirror(log Logger, fn func(msg string)) Logger {
	if log == nil {
		log = NopLogger
	}
	return mirrorLogger{Logger: log, fn: fn}
}
