// Package config persists the desktop instrument's settings as JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simukka/touchsynth/synth"
)

// AudioConfig selects the output device format.
type AudioConfig struct {
	SampleRate int `json:"sampleRate"`
	BufferMs   int `json:"bufferMs"`
}

// WindowConfig stores window preferences.
type WindowConfig struct {
	Width    int  `json:"width"`
	Height   int  `json:"height"`
	ShowInfo bool `json:"showInfo"`
}

// Config is the main configuration structure
type Config struct {
	Synth  synth.Settings `json:"synth"`
	Audio  AudioConfig    `json:"audio"`
	Window WindowConfig   `json:"window"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Synth: synth.DefaultSettings(),
		Audio: AudioConfig{
			SampleRate: 48000,
			BufferMs:   20,
		},
		Window: WindowConfig{
			Width:    960,
			Height:   640,
			ShowInfo: true,
		},
	}
}

// Dir returns the config directory path
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "touchsynth"), nil
}

// Path returns the full path to config.json
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if the
// file does not exist yet.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads path over the defaults, so fields missing from the file
// keep their default values. The synth settings are normalized.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Synth = cfg.Synth.Normalize()
	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = DefaultConfig().Audio.SampleRate
	}
	if cfg.Audio.BufferMs <= 0 {
		cfg.Audio.BufferMs = DefaultConfig().Audio.BufferMs
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
