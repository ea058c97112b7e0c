package synth

// EventKind names a voice lifecycle transition.
type EventKind int

const (
	EventCreated EventKind = iota
	EventChanged
	EventReleasing
	EventEvicted
	EventTerminated
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventChanged:
		return "changed"
	case EventReleasing:
		return "releasing"
	case EventEvicted:
		return "evicted"
	case EventTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Event describes one lifecycle transition. Voice is a copy taken when the
// transition happened; Live is the number of voices in the table after it.
type Event struct {
	Kind  EventKind
	Time  float64
	Voice VoiceInfo
	Live  int
}

func newEvent(kind EventKind, now float64, v *voice, live int) Event {
	return Event{Kind: kind, Time: now, Voice: v.info(), Live: live}
}

// events collects transitions inside the scheduler lock so they can be
// dispatched after it is released.
type events []Event

func (e *events) add(kind EventKind, now float64, v *voice, live int) {
	*e = append(*e, newEvent(kind, now, v, live))
}
