package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/simukka/touchsynth/config"
	"github.com/simukka/touchsynth/input"
	"github.com/simukka/touchsynth/synth"
)

const (
	markerRadius = 18
	maxLogLines  = 8
)

var (
	bgColor      = color.RGBA{0x10, 0x18, 0x20, 0xff}
	primaryColor = color.RGBA{0x4a, 0x9e, 0xff, 0xd8}
	otherColor   = color.RGBA{0xff, 0x6a, 0x4a, 0xd8}
)

// keyNames maps the keys the desk listens to onto input key names.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyA:      "a",
	ebiten.KeyD:      "d",
	ebiten.KeyW:      "w",
	ebiten.KeyDigit1: "1",
	ebiten.KeyDigit2: "2",
	ebiten.KeyDigit3: "3",
	ebiten.KeyDigit4: "4",
	ebiten.KeyDigit5: "5",
	ebiten.KeyDigit6: "6",
	ebiten.KeyDigit7: "7",
	ebiten.KeyDigit8: "8",
}

// screenLog keeps the last maxLogLines messages shown under the status.
// Lifecycle events arrive from the audio goroutine.
type screenLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *screenLog) add(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
	if len(l.lines) > maxLogLines {
		l.lines = l.lines[len(l.lines)-maxLogLines:]
	}
}

func (l *screenLog) writeTo(b *strings.Builder) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.lines {
		b.WriteString(s)
		b.WriteByte('\n')
	}
}

// desk is the ebiten.Game. Update and Draw run on the same goroutine.
type desk struct {
	sched  *synth.Scheduler
	router *input.Router
	log    *slog.Logger
	screen *screenLog

	width, height int
	touches       []ebiten.TouchID
	showInfo      bool
	cursorX       float64
	cursorY       float64
}

func newDesk(sched *synth.Scheduler, cfg *config.Config, logger *slog.Logger, screen *screenLog, verbose bool) *desk {
	d := &desk{
		sched:    sched,
		router:   input.NewRouter(input.Owned(sched)),
		log:      logger,
		screen:   screen,
		showInfo: cfg.Window.ShowInfo,
	}
	if verbose {
		sched.OnEvent(func(ev synth.Event) { screen.add(synth.FormatEvent(ev)) })
	}
	return d
}

func (d *desk) Update() error {
	d.handleMouse()
	d.handleTouches()
	d.handleKeys()
	return nil
}

func (d *desk) handleMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	d.cursorX, d.cursorY = x, y

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		d.router.Press(input.MouseID, x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		d.router.Release(input.MouseID)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		d.router.Move(input.MouseID, x, y)
	}
}

func (d *desk) handleTouches() {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		d.router.Press(synth.PointerID(int(id)), float64(tx), float64(ty))
		d.touches = append(d.touches, id)
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		d.router.Move(synth.PointerID(int(id)), float64(tx), float64(ty))
	}
	held := d.touches[:0]
	for _, id := range d.touches {
		if inpututil.IsTouchJustReleased(id) {
			d.router.Release(synth.PointerID(int(id)))
			continue
		}
		held = append(held, id)
	}
	d.touches = held
}

func (d *desk) handleKeys() {
	for key, name := range keyNames {
		if inpututil.IsKeyJustReleased(key) && input.IsNoteKey(name) {
			d.router.Release(synth.KeyboardID)
			continue
		}
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		action, n := input.Lookup(name)
		switch action {
		case input.PlayNote:
			d.router.Press(synth.KeyboardID, float64(d.width)/2, float64(d.height)/2)
		case input.ToggleDelay:
			s := d.sched.Settings()
			s.DelayEnabled = !s.DelayEnabled
			d.sched.Apply(s)
		case input.NextWaveform:
			s := d.sched.Settings()
			s.Waveform = s.Waveform.Next()
			d.sched.Apply(s)
			d.log.Debug("waveform", "value", s.Waveform)
		case input.SetPolyphony:
			s := d.sched.Settings()
			s.MaxPolyphony = n
			d.sched.Apply(s)
			d.log.Debug("polyphony", "value", n)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		d.showInfo = !d.showInfo
	}
}

func (d *desk) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	for i, c := range d.router.Contacts() {
		clr := otherColor
		if i == 0 {
			clr = primaryColor
		}
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), markerRadius, clr, true)
	}

	s := d.sched.Settings()
	delay := "off"
	if s.DelayEnabled {
		delay = fmt.Sprintf("%gs / %.0f%%", s.DelayTime, s.Feedback*100)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  poly %d  voices %d  delay %s\n", s.Waveform, s.MaxPolyphony, d.sched.Len(), delay)
	b.WriteString("A: note  D: delay  W: waveform  1-8: polyphony  I: info\n")
	if d.showInfo {
		freq, amp := synth.NewMapper(s.MinFrequency, s.MaxFrequency).Map(d.cursorX, d.cursorY,
			synth.Bounds{Width: float64(d.width), Height: float64(d.height)})
		b.WriteString(synth.FormatInfo(freq, amp))
		b.WriteByte('\n')
	}
	d.screen.writeTo(&b)
	ebitenutil.DebugPrint(screen, b.String())
}

// Layout uses the window size as the play area so positions map 1:1.
func (d *desk) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != d.width || outsideHeight != d.height {
		d.width, d.height = outsideWidth, outsideHeight
		d.sched.SetBounds(float64(d.width), float64(d.height))
	}
	return outsideWidth, outsideHeight
}
