package score

import (
	"sync"

	"github.com/simukka/touchsynth/synth"
)

// Stats counts lifecycle events. Register Observe with
// Scheduler.OnEvent; it is safe to call from the render goroutine.
type Stats struct {
	mu         sync.Mutex
	created    int
	changed    int
	releasing  int
	evicted    int
	terminated int
	peak       int
}

// Summary is a snapshot of Stats.
type Summary struct {
	Created    int
	Changed    int
	Releasing  int
	Evicted    int
	Terminated int
	PeakVoices int
}

// Observe records ev.
func (s *Stats) Observe(ev synth.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch ev.Kind {
	case synth.EventCreated:
		s.created++
	case synth.EventChanged:
		s.changed++
	case synth.EventReleasing:
		s.releasing++
	case synth.EventEvicted:
		s.evicted++
	case synth.EventTerminated:
		s.terminated++
	}
	if ev.Live > s.peak {
		s.peak = ev.Live
	}
}

// Summary returns the counts so far.
func (s *Stats) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		Created:    s.created,
		Changed:    s.changed,
		Releasing:  s.releasing,
		Evicted:    s.evicted,
		Terminated: s.terminated,
		PeakVoices: s.peak,
	}
}
