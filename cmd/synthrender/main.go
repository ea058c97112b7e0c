// Command synthrender plays a seeded touch performance through the voice
// scheduler offline and writes the result to a WAV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/simukka/touchsynth/config"
	"github.com/simukka/touchsynth/dsp"
	"github.com/simukka/touchsynth/input"
	"github.com/simukka/touchsynth/score"
	"github.com/simukka/touchsynth/synth"
)

func main() {
	var (
		out       = flag.String("o", "performance.wav", "Output WAV file")
		cfgPath   = flag.String("config", "", "Settings file to start from (defaults when empty)")
		seed      = flag.Uint("seed", 1, "Performance seed")
		contacts  = flag.Int("contacts", 6, "Number of touch contacts")
		length    = flag.Float64("length", 6, "Seconds over which contacts start")
		keyboard  = flag.Bool("keyboard", false, "Add one press of the A4 key")
		rate      = flag.Int("rate", dsp.DefaultSampleRate, "Sample rate")
		poly      = flag.Int("poly", 0, "Polyphony limit, 1-8 (0 keeps the settings value)")
		waveform  = flag.String("waveform", "", "sine, square, sawtooth or triangle")
		attack    = flag.Float64("attack", -1, "Attack seconds (negative keeps the settings value)")
		release   = flag.Float64("release", -1, "Release seconds (negative keeps the settings value)")
		delay     = flag.Bool("delay", false, "Enable the delay effect")
		delayTime = flag.Float64("delay-time", -1, "Delay seconds (negative keeps the settings value)")
		feedback  = flag.Float64("feedback", -1, "Delay feedback 0-1 (negative keeps the settings value)")
		tail      = flag.Float64("tail", 2, "Seconds rendered after the last release")
		verbose   = flag.Bool("v", false, "Print every lifecycle event")
		debug     = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.DefaultConfig()
	if *cfgPath != "" {
		loaded, err := config.LoadFrom(*cfgPath)
		if err != nil {
			logger.Error("load settings", "path", *cfgPath, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	s := cfg.Synth
	if *poly > 0 {
		s.MaxPolyphony = *poly
	}
	if *waveform != "" {
		s.Waveform = synth.Waveform(*waveform)
	}
	if *attack >= 0 {
		s.Attack = *attack
	}
	if *release >= 0 {
		s.Release = *release
	}
	if *delay {
		s.DelayEnabled = true
	}
	if *delayTime >= 0 {
		s.DelayTime = *delayTime
	}
	if *feedback >= 0 {
		s.Feedback = *feedback
	}

	opts := score.DefaultOptions()
	opts.Seed = uint32(*seed)
	opts.Contacts = *contacts
	opts.Length = *length
	opts.Keyboard = *keyboard

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := render(ctx, logger, s, opts, *rate, *tail)
	if err != nil {
		logger.Error("render", "err", err)
		os.Exit(1)
	}
	if err := dsp.SaveWAV(*out, res.Samples, *rate); err != nil {
		logger.Error("write wav", "path", *out, "err", err)
		os.Exit(1)
	}

	res.Path = *out
	if !*verbose {
		res.Events = nil
	}
	fmt.Println(report(res))
}

// result is everything the report shows about one render.
type result struct {
	Path       string
	Seed       uint32
	SampleRate int
	Settings   synth.Settings
	Samples    []float32
	Summary    score.Summary
	Events     []synth.Event
	PeakHz     float64
}

// render performs the score generated from opts and collects its events.
func render(ctx context.Context, logger *slog.Logger, s synth.Settings, opts score.Options, rate int, tail float64) (*result, error) {
	eng := dsp.NewContext(rate)
	defer eng.Close()

	bus, err := synth.NewEffectBus(eng, logger)
	if err != nil {
		return nil, fmt.Errorf("effect bus: %w", err)
	}
	sched := synth.NewScheduler(eng, bus, logger)
	sched.SetBounds(opts.Bounds.Width, opts.Bounds.Height)
	sched.Apply(s)

	res := &result{Seed: opts.Seed, SampleRate: rate, Settings: sched.Settings()}
	stats := &score.Stats{}
	sched.OnEvent(func(ev synth.Event) {
		stats.Observe(ev)
		res.Events = append(res.Events, ev)
		logger.Debug(synth.FormatEvent(ev))
	})

	router := input.NewRouter(input.Owned(sched))
	perf := score.Generate(opts)
	logger.Info("rendering", "contacts", len(perf.Gestures), "seconds", perf.End()+tail, "rate", rate)

	samples, err := score.Perform(ctx, eng, router, perf.Commands(0.02), tail)
	if err != nil {
		return nil, err
	}
	sched.Close()

	res.Samples = samples
	res.Summary = stats.Summary()
	if hz, err := dsp.PeakFrequency(samples, float64(rate)); err == nil {
		res.PeakHz = hz
	}
	return res, nil
}
