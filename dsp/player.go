package dsp

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player streams a Context to the default output device. The device pulls
// through Read, which renders the context and therefore drives its clock.
type Player struct {
	mu      sync.Mutex
	ctx     *Context
	otoCtx  *oto.Context
	player  *oto.Player
	buf     []float32
	playing bool
}

// NewPlayer opens the output device for mono float32 at the context's
// sample rate. Only one Player may exist per process.
func NewPlayer(ctx *Context, bufferSize time.Duration) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   int(ctx.SampleRate()),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("dsp: open audio device: %w", err)
	}
	<-ready

	p := &Player{ctx: ctx, otoCtx: otoCtx}
	p.player = otoCtx.NewPlayer(p)
	return p, nil
}

// Read renders len(b)/4 frames as little-endian float32.
func (p *Player) Read(b []byte) (int, error) {
	frames := len(b) / 4
	if cap(p.buf) < frames {
		p.buf = make([]float32, frames)
	}
	samples := p.buf[:frames]
	p.ctx.Render(samples)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(s))
	}
	return frames * 4, nil
}

func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		p.player.Play()
		p.playing = true
	}
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		p.player.Pause()
		p.playing = false
	}
}

// Close stops playback and releases the device player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("dsp: close player: %w", err)
	}
	return nil
}
