package synth

import (
	"fmt"
	"sync"
)

// Scheduler owns the live voice table. It maps input streams to voices,
// enforces the polyphony limit by evicting, and tears voices down when
// their oscillator reports it has ended.
//
// All methods are safe for concurrent use. Lifecycle events are delivered
// after the internal lock is released, on the goroutine that caused them.
type Scheduler struct {
	mu       sync.Mutex
	ctx      Context
	out      Node
	bus      *EffectBus
	log      Logger
	settings Settings
	mapper   Mapper
	bounds   Bounds

	voices  map[VoiceID]*voice
	order   []VoiceID
	retired map[*voice]struct{}

	listeners []func(Event)
	closed    bool
}

// NewScheduler returns a scheduler rendering into bus, or straight into
// the context destination when bus is nil.
func NewScheduler(ctx Context, bus *EffectBus, log Logger) *Scheduler {
	if log == nil {
		log = NopLogger
	}
	s := &Scheduler{
		ctx:      ctx,
		out:      ctx.Destination(),
		bus:      bus,
		log:      log,
		settings: DefaultSettings(),
		mapper:   NewMapper(DefaultMinFrequency, DefaultMaxFrequency),
		voices:   make(map[VoiceID]*voice),
		retired:  make(map[*voice]struct{}),
	}
	if bus != nil {
		s.out = bus.Input()
	}
	return s
}

// OnEvent registers fn to receive every lifecycle event.
func (s *Scheduler) OnEvent(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SetBounds sets the size of the active area used to map positions.
func (s *Scheduler) SetBounds(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = Bounds{Width: width, Height: height}
}

// Settings returns the settings currently in effect.
func (s *Scheduler) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Apply normalizes and installs new settings. The effect bus is updated
// immediately; envelope, waveform and range changes affect new voices only.
// When the polyphony limit drops below the live count, the excess is
// evicted before Apply returns.
func (s *Scheduler) Apply(settings Settings) {
	if err := settings.Validate(); err != nil {
		s.log.Warn("settings adjusted", "err", err)
	}
	settings = settings.Normalize()

	s.emit(s.guarded(func() (evs events) {
		s.settings = settings
		s.mapper = NewMapper(settings.MinFrequency, settings.MaxFrequency)
		if s.bus != nil {
			s.bus.Apply(settings)
		}
		if len(s.voices) > settings.MaxPolyphony {
			batch(s.ctx, func() {
				now := s.ctx.CurrentTime()
				for len(s.voices) > settings.MaxPolyphony {
					s.evict(now, &evs)
				}
			})
		}
		return evs
	}, "op", "apply"))
}

// Update retunes the active voice owned by id to (x, y). Releasing voices
// are left alone; an unknown id is logged.
func (s *Scheduler) Update(id VoiceID, x, y float64) {
	s.emit(s.guarded(func() events { return s.update(id, x, y) }, "id", id))
}

// Begin starts a voice for id at (x, y). When the table is full a voice is
// evicted first. A failure to build the voice is logged and leaves the
// table untouched.
func (s *Scheduler) Begin(id VoiceID, x, y float64) {
	s.emit(s.guarded(func() events { return s.begin(id, x, y) }, "id", id))
}

// End releases the voice owned by id. The voice stays in the table until
// its release has finished.
func (s *Scheduler) End(id VoiceID) {
	s.emit(s.guarded(func() events { return s.end(id) }, "id", id))
}

// guarded runs fn under the scheduler lock. A panic from the audio backend
// is logged with args and the lock is still released.
func (s *Scheduler) guarded(fn func() events, args ...any) (evs events) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			args = append(args, "err", fmt.Errorf("audio backend panic: %v", r))
			s.log.Error("audio backend failure", args...)
			evs = nil
		}
	}()
	return fn()
}

// Has reports whether id owns a voice, active or releasing.
func (s *Scheduler) Has(id VoiceID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.voices[id]
	return ok
}

// Len returns the number of voices in the table.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.voices)
}

// Snapshot returns copies of the voices in creation order.
func (s *Scheduler) Snapshot() []VoiceInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]VoiceInfo, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.voices[id].info())
	}
	return out
}

// Close silences and disconnects every voice. Later calls to Begin are
// ignored.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	batch(s.ctx, func() {
		now := s.ctx.CurrentTime()
		for _, id := range s.order {
			s.destroy(s.voices[id], now)
		}
		for v := range s.retired {
			s.destroy(v, now)
		}
	})
	s.voices = make(map[VoiceID]*voice)
	s.order = nil
	s.retired = make(map[*voice]struct{})
}

func (s *Scheduler) destroy(v *voice, now float64) {
	v.ended = true
	v.kill(now)
	v.teardown()
}

func (s *Scheduler) target(id VoiceID, x, y float64) (float64, float64) {
	if id == KeyboardID {
		return KeyboardFrequency, KeyboardAmplitude
	}
	return s.mapper.Map(x, y, s.bounds)
}

func (s *Scheduler) begin(id VoiceID, x, y float64) (evs events) {
	if s.closed {
		s.log.Warn("begin after close", "id", id)
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("voice creation failed", "id", id, "err", fmt.Errorf("audio backend panic: %v", r))
		}
	}()

	s.ctx.Resume()
	freq, amp := s.target(id, x, y)
	batch(s.ctx, func() {
		v, err := newVoice(s.ctx, s.out, id, s.settings, freq, amp)
		if err != nil {
			s.log.Error("voice creation failed", "id", id, "err", err)
			return
		}
		v.osc.OnEnded(func() { s.ended(v) })

		now := v.startTime
		if old, ok := s.voices[id]; ok {
			s.retire(old, now, &evs)
		}
		for len(s.voices) >= s.settings.MaxPolyphony {
			s.evict(now, &evs)
		}
		s.voices[id] = v
		s.order = append(s.order, id)
		evs.add(EventCreated, now, v, len(s.voices))
	})
	return evs
}

func (s *Scheduler) update(id VoiceID, x, y float64) events {
	v, ok := s.voices[id]
	if !ok {
		s.log.Warn("update for unknown voice", "id", id)
		return nil
	}
	if v.state != Active {
		return nil
	}
	freq, amp := s.target(id, x, y)
	now := s.ctx.CurrentTime()
	v.update(now, freq, amp)
	return events{newEvent(EventChanged, now, v, len(s.voices))}
}

func (s *Scheduler) end(id VoiceID) events {
	v, ok := s.voices[id]
	if !ok {
		s.log.Warn("release for unknown voice", "id", id)
		return nil
	}
	if v.state == Releasing {
		s.log.Warn("voice already releasing", "id", id)
		return nil
	}
	now := s.ctx.CurrentTime()
	v.releaseAt(now)
	return events{newEvent(EventReleasing, now, v, len(s.voices))}
}

// evict retires the first releasing voice in creation order, or the
// oldest voice when none is releasing.
func (s *Scheduler) evict(now float64, evs *events) {
	victim := s.voices[s.order[0]]
	for _, id := range s.order {
		if v := s.voices[id]; v.state == Releasing {
			victim = v
			break
		}
	}
	s.retire(victim, now, evs)
}

// retire removes v from the table and fades it out. Its ended callback
// only tears down the nodes.
func (s *Scheduler) retire(v *voice, now float64, evs *events) {
	s.remove(v)
	v.fadeOut(now)
	s.retired[v] = struct{}{}
	evs.add(EventEvicted, now, v, len(s.voices))
}

func (s *Scheduler) remove(v *voice) {
	delete(s.voices, v.id)
	for i, id := range s.order {
		if id == v.id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// ended runs when v's oscillator has stopped. It fires at most once per
// voice and never removes a newer voice that took over the same id.
func (s *Scheduler) ended(v *voice) {
	s.mu.Lock()
	if v.ended {
		s.mu.Unlock()
		return
	}
	v.ended = true
	v.teardown()
	if cur, ok := s.voices[v.id]; ok && cur == v {
		s.remove(v)
	}
	delete(s.retired, v)
	ev := newEvent(EventTerminated, s.ctx.CurrentTime(), v, len(s.voices))
	s.mu.Unlock()

	s.emit(events{ev})
}

func (s *Scheduler) emit(evs events) {
	if len(evs) == 0 {
		return
	}
	s.mu.Lock()
	listeners := append([]func(Event){}, s.listeners...)
	s.mu.Unlock()
	for _, ev := range evs {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}
