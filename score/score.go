// Package score generates reproducible touch performances and plays them
// through an input router against an offline engine.
package score

import (
	"sort"

	"github.com/simukka/touchsynth/common"
	"github.com/simukka/touchsynth/synth"
)

// Point is a position in the play area.
type Point struct {
	X, Y float64
}

// Gesture is one contact gliding in a straight line from From to To.
type Gesture struct {
	ID       synth.VoiceID
	Start    float64
	Duration float64
	From, To Point
}

// End returns the release time.
func (g Gesture) End() float64 {
	return g.Start + g.Duration
}

// At returns the contact position at time t, clamped to the gesture.
func (g Gesture) At(t float64) Point {
	if g.Duration <= 0 || t <= g.Start {
		return g.From
	}
	if t >= g.End() {
		return g.To
	}
	f := (t - g.Start) / g.Duration
	return Point{
		X: g.From.X + (g.To.X-g.From.X)*f,
		Y: g.From.Y + (g.To.Y-g.From.Y)*f,
	}
}

// Options control Generate.
type Options struct {
	Seed     uint32
	Contacts int
	Length   float64
	Bounds   synth.Bounds

	MinDuration float64
	MaxDuration float64

	// Keyboard adds one press of the fixed-pitch key.
	Keyboard bool
}

// DefaultOptions returns a short four-contact performance on a 1000x600
// area.
func DefaultOptions() Options {
	return Options{
		Seed:        1,
		Contacts:    4,
		Length:      4,
		Bounds:      synth.Bounds{Width: 1000, Height: 600},
		MinDuration: 0.4,
		MaxDuration: 1.5,
	}
}

// Score is a set of gestures ordered by start time.
type Score struct {
	Gestures []Gesture
}

// Generate builds a score from o. Each contact draws from its own forked
// generator, so adding contacts never changes the earlier ones.
func Generate(o Options) Score {
	if o.MaxDuration < o.MinDuration {
		o.MinDuration, o.MaxDuration = o.MaxDuration, o.MinDuration
	}
	rng := common.NewSeededRNG(o.Seed)
	point := func(r *common.SeededRNG) Point {
		return Point{X: r.Range(0, o.Bounds.Width), Y: r.Range(0, o.Bounds.Height)}
	}

	var s Score
	for i := 0; i < o.Contacts; i++ {
		r := rng.Fork(i)
		s.Gestures = append(s.Gestures, Gesture{
			ID:       synth.PointerID(i + 1),
			Start:    r.Range(0, o.Length),
			Duration: r.Range(o.MinDuration, o.MaxDuration),
			From:     point(r),
			To:       point(r),
		})
	}
	if o.Keyboard {
		r := rng.Fork(o.Contacts)
		centre := Point{X: o.Bounds.Width / 2, Y: o.Bounds.Height / 2}
		s.Gestures = append(s.Gestures, Gesture{
			ID:       synth.KeyboardID,
			Start:    r.Range(0, o.Length),
			Duration: r.Range(o.MinDuration, o.MaxDuration),
			From:     centre,
			To:       centre,
		})
	}
	sort.SliceStable(s.Gestures, func(i, j int) bool {
		return s.Gestures[i].Start < s.Gestures[j].Start
	})
	return s
}

// End returns the time the last gesture is released.
func (s Score) End() float64 {
	var end float64
	for _, g := range s.Gestures {
		if g.End() > end {
			end = g.End()
		}
	}
	return end
}

// CommandKind is the type of a router command.
type CommandKind int

const (
	Press CommandKind = iota
	Move
	Release
)

func (k CommandKind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	default:
		return "unknown"
	}
}

// Command is one input event at a point in time.
type Command struct {
	Time float64
	Kind CommandKind
	ID   synth.VoiceID
	Point
}

// Commands flattens the score into a time-ordered command list, sampling
// each glide every step seconds. Commands at the same time keep score
// order.
func (s Score) Commands(step float64) []Command {
	var out []Command
	for _, g := range s.Gestures {
		out = append(out, Command{Time: g.Start, Kind: Press, ID: g.ID, Point: g.From})
		if step > 0 && g.From != g.To {
			for t := g.Start + step; t < g.End(); t += step {
				out = append(out, Command{Time: t, Kind: Move, ID: g.ID, Point: g.At(t)})
			}
		}
		out = append(out, Command{Time: g.End(), Kind: Release, ID: g.ID, Point: g.To})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
