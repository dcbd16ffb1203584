// Package config provides the settings of a quickgfx program: window,
// virtual resolution, font and audio. Settings are loaded from a JSON file
// laid over the defaults, so a file only needs the values it changes.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"chosenoffset.com/quickgfx/internal/font"
	"chosenoffset.com/quickgfx/internal/logging"
)

// Config holds every setting
type Config struct {
	Window  WindowConfig  `json:"window"`
	Virtual VirtualConfig `json:"virtual"`
	Font    FontConfig    `json:"font"`
	Audio   AudioConfig   `json:"audio"`

	LogLevel string `json:"log_level"` // debug, info, warn or error
}

// WindowConfig describes the output window
type WindowConfig struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Title      string `json:"title"`
	Resizable  bool   `json:"resizable"`
	Fullscreen bool   `json:"fullscreen"`
}

// VirtualConfig is the resolution drawing code works in. Zero disables
// remapping on that axis.
type VirtualConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FontConfig locates the bitmap font and tunes its layout
type FontConfig struct {
	Bundle               string `json:"bundle"` // directory or archive
	Dir                  string `json:"dir"`    // font directory inside the bundle
	TabWidth             int    `json:"tab_width"`
	SpaceWidth           int    `json:"space_width"`
	AverageSpace         bool   `json:"average_space"`
	SkipMalformedEscapes bool   `json:"skip_malformed_escapes"`
}

// AudioConfig configures the mixer
type AudioConfig struct {
	SampleRate int `json:"sample_rate"`
}

// DefaultConfig returns the settings used when no file overrides them
func DefaultConfig() *Config {
	opts := font.DefaultOptions()
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    960,
			Title:     "quickgfx",
			Resizable: true,
		},
		Virtual: VirtualConfig{
			Width:  640,
			Height: 480,
		},
		Font: FontConfig{
			Bundle:               "assets.zip",
			Dir:                  "fonts/basic",
			TabWidth:             opts.TabWidth,
			SpaceWidth:           opts.SpaceWidth,
			AverageSpace:         opts.AverageSpace,
			SkipMalformedEscapes: opts.SkipMalformedEscapes,
		},
		Audio: AudioConfig{
			SampleRate: 44100,
		},
		LogLevel: "info",
	}
}

// Load loads a config file over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrap(err, "failed to read config")
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}

	return config, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return errors.Errorf("window size %dx%d is negative", c.Window.Width, c.Window.Height)
	}
	if c.Font.TabWidth < 0 {
		return errors.Errorf("font tab width %d is negative", c.Font.TabWidth)
	}
	if c.Font.SpaceWidth < 0 {
		return errors.Errorf("font space width %d is negative", c.Font.SpaceWidth)
	}
	if c.Audio.SampleRate < 0 {
		return errors.Errorf("audio sample rate %d is negative", c.Audio.SampleRate)
	}
	if _, err := logging.ResolveLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Options converts the font settings to layout options.
func (f FontConfig) Options() font.Options {
	return font.Options{
		TabWidth:             f.TabWidth,
		SpaceWidth:           f.SpaceWidth,
		AverageSpace:         f.AverageSpace,
		SkipMalformedEscapes: f.SkipMalformedEscapes,
	}
}
