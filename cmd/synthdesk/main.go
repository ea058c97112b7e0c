// Command synthdesk is the desktop instrument: the window is the play
// area, with mouse and multi-touch contacts and the A key as input.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/simukka/touchsynth/config"
	"github.com/simukka/touchsynth/dsp"
	"github.com/simukka/touchsynth/synth"
)

func main() {
	cfgPath := flag.String("config", "", "Settings file (defaults to the user config dir)")
	verbose := flag.Bool("v", false, "Show voice lifecycle events on screen")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path := *cfgPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			logger.Warn("no config dir, settings will not be saved", "err", err)
		}
		path = p
	}
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadFrom(path)
		if err != nil {
			logger.Warn("using default settings", "path", path, "err", err)
		} else {
			cfg = loaded
		}
	}

	eng := dsp.NewContext(cfg.Audio.SampleRate)
	player, err := dsp.NewPlayer(eng, time.Duration(cfg.Audio.BufferMs)*time.Millisecond)
	if err != nil {
		logger.Error("audio output", "err", err)
		os.Exit(1)
	}
	defer player.Close()

	// The bus reports delay toggles at Debug; show them on screen too.
	screen := &screenLog{}
	bus, err := synth.NewEffectBus(eng, synth.Mirror(logger, screen.add))
	if err != nil {
		logger.Error("effect bus", "err", err)
		os.Exit(1)
	}
	sched := synth.NewScheduler(eng, bus, logger)
	sched.Apply(cfg.Synth)

	d := newDesk(sched, cfg, logger, screen, *verbose)
	player.Play()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("touchsynth")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(d); err != nil {
		logger.Error("run", "err", err)
	}

	sched.Close()
	bus.Close()

	cfg.Synth = sched.Settings()
	cfg.Window.ShowInfo = d.showInfo
	if path != "" {
		if err := cfg.SaveTo(path); err != nil {
			logger.Warn("save settings", "path", path, "err", err)
		} else {
			logger.Info("settings saved", "path", path)
		}
	}
}
