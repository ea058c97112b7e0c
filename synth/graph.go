package synth

// Waveform names an oscillator shape. The values match the Web Audio
// OscillatorNode type strings so the browser backend can pass them through.
type Waveform string

const (
	Sine     Waveform = "sine"
	Square   Waveform = "square"
	Sawtooth Waveform = "sawtooth"
	Triangle Waveform = "triangle"
)

// Waveforms lists every supported shape in display order.
var Waveforms = []Waveform{Sine, Square, Sawtooth, Triangle}

// Valid reports whether w is one of the supported shapes.
func (w Waveform) Valid() bool {
	for _, known := range Waveforms {
		if w == known {
			return true
		}
	}
	return false
}

// Next returns the shape after w, wrapping around.
func (w Waveform) Next() Waveform {
	for i, known := range Waveforms {
		if w == known {
			return Waveforms[(i+1)%len(Waveforms)]
		}
	}
	return Sine
}

// Param is an automatable value on the audio clock. Times are absolute
// seconds on the owning Context's clock.
type Param interface {
	// Value returns the instantaneous value at the current audio time,
	// including the effect of any ramp in progress.
	Value() float64
	SetValueAtTime(value, t float64)
	// LinearRampToValueAtTime ramps from the previous scheduled event to
	// value, arriving at t.
	LinearRampToValueAtTime(value, t float64)
	// CancelScheduledValues discards every scheduled event at or after t.
	CancelScheduledValues(t float64)
}

// Node is a vertex in the audio graph.
type Node interface {
	Connect(dst Node) error
	// Disconnect removes every outgoing connection.
	Disconnect()
}

// Oscillator is a periodic source with a one-shot lifetime.
type Oscillator interface {
	Node
	SetWaveform(w Waveform)
	Frequency() Param
	Start(t float64)
	// Stop schedules the end of output. It may be called again before the
	// oscillator has ended; the last call wins.
	Stop(t float64)
	// OnEnded registers the callback fired once after the stop time has
	// been reached on the audio clock.
	OnEnded(fn func())
}

// Gain scales its summed inputs.
type Gain interface {
	Node
	Gain() Param
}

// Delay outputs its summed inputs after DelayTime seconds.
type Delay interface {
	Node
	DelayTime() Param
}

// Context creates nodes and owns the audio clock.
type Context interface {
	CurrentTime() float64
	SampleRate() float64
	// Resume starts a suspended clock. Browsers suspend audio until a user
	// gesture, so callers invoke it on every gesture.
	Resume()
	Destination() Node
	NewOscillator() (Oscillator, error)
	NewGain() (Gain, error)
	NewDelay(maxDelay float64) (Delay, error)
}

// Batcher is implemented by contexts that render on another goroutine.
// Graph changes made inside fn are observed by the renderer all at once.
type Batcher interface {
	Batch(fn func())
}

// batch runs fn inside ctx's batch when the context supports one.
func batch(ctx Context, fn func()) {
	if b, ok := ctx.(Batcher); ok {
		b.Batch(fn)
		return
	}
	fn()
}
