// Package config loads bubble tuning from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mobile-next/bubble/bubble"
	"github.com/mobile-next/bubble/gesture"
	"github.com/mobile-next/bubble/snap"
	"github.com/mobile-next/bubble/types"
	"github.com/mobile-next/bubble/utils"
	"gopkg.in/yaml.v3"
)

const (
	EasingLinear    = "linear"
	EasingEaseInOut = "ease-in-out"
)

// Config is the on-disk form of bubble.Options. Durations are milliseconds.
type Config struct {
	Gestures Gestures `yaml:"gestures"`
	Bubble   Bubble   `yaml:"bubble"`
}

type Gestures struct {
	TapSlopPx                float64 `yaml:"tap_slop_px"`
	TapMaxMs                 int     `yaml:"tap_max_ms"`
	DoubleTapMs              int     `yaml:"double_tap_ms"`
	LongPressMs              int     `yaml:"long_press_ms"`
	FlingMinDistancePx       float64 `yaml:"fling_min_distance_px"`
	FlingMinVelocityPxPerSec float64 `yaml:"fling_min_velocity_px_per_sec"`
}

type Bubble struct {
	RadiusPx     int    `yaml:"radius_px"`
	WidthPx      int    `yaml:"width_px"`
	HeightPx     int    `yaml:"height_px"`
	SnapMs       int    `yaml:"snap_ms"`
	FrameMs      int    `yaml:"frame_ms"`
	Easing       string `yaml:"easing"`
	RunMinimized bool   `yaml:"run_minimized"`
	InitialX     *int   `yaml:"initial_x,omitempty"`
	InitialY     *int   `yaml:"initial_y,omitempty"`
}

// Default mirrors bubble.DefaultOptions.
func Default() *Config {
	opts := bubble.DefaultOptions()
	th := opts.Thresholds
	return &Config{
		Gestures: Gestures{
			TapSlopPx:                th.TapMaxDisplacementPx,
			TapMaxMs:                 int(th.TapMaxDuration.Milliseconds()),
			DoubleTapMs:              int(th.DoubleTapWindow.Milliseconds()),
			LongPressMs:              int(th.LongPressDuration.Milliseconds()),
			FlingMinDistancePx:       th.FlingMinDistancePx,
			FlingMinVelocityPxPerSec: th.FlingMinVelocityPxPerMs * 1000,
		},
		Bubble: Bubble{
			RadiusPx: opts.BubbleRadius,
			WidthPx:  opts.BubbleSize.Width,
			HeightPx: opts.BubbleSize.Height,
			SnapMs:   int(opts.SnapDuration.Milliseconds()),
			FrameMs:  int(opts.FrameInterval.Milliseconds()),
			Easing:   EasingLinear,
		},
	}
}

// Load reads the file at path on top of the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		utils.Verbose("config file %s not found, using defaults", path)
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadYAML decodes a YAML document on top of the defaults and validates it.
// Unknown keys are rejected.
func LoadYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration by building the options from it.
func (c *Config) Validate() error {
	_, err := c.Options()
	return err
}

// Options converts the configuration to session options.
func (c *Config) Options() (bubble.Options, error) {
	interp, err := interpolator(c.Bubble.Easing)
	if err != nil {
		return bubble.Options{}, err
	}

	opts := bubble.Options{
		Thresholds: gesture.Thresholds{
			TapMaxDisplacementPx:    c.Gestures.TapSlopPx,
			TapMaxDuration:          millis(c.Gestures.TapMaxMs),
			DoubleTapWindow:         millis(c.Gestures.DoubleTapMs),
			LongPressDuration:       millis(c.Gestures.LongPressMs),
			FlingMinDistancePx:      c.Gestures.FlingMinDistancePx,
			FlingMinVelocityPxPerMs: c.Gestures.FlingMinVelocityPxPerSec / 1000,
		},
		BubbleRadius:  c.Bubble.RadiusPx,
		BubbleSize:    types.Size{Width: c.Bubble.WidthPx, Height: c.Bubble.HeightPx},
		SnapDuration:  millis(c.Bubble.SnapMs),
		FrameInterval: millis(c.Bubble.FrameMs),
		Interpolator:  interp,
		RunMinimized:  c.Bubble.RunMinimized,
	}

	switch {
	case c.Bubble.InitialX != nil && c.Bubble.InitialY != nil:
		opts.InitialPosition = &types.Position{X: *c.Bubble.InitialX, Y: *c.Bubble.InitialY}
	case c.Bubble.InitialX != nil || c.Bubble.InitialY != nil:
		return bubble.Options{}, fmt.Errorf("initial_x and initial_y must be set together")
	}

	if err := opts.Validate(); err != nil {
		return bubble.Options{}, err
	}
	return opts, nil
}

func interpolator(name string) (snap.Interpolator, error) {
	switch name {
	case "", EasingLinear:
		return snap.Linear, nil
	case EasingEaseInOut:
		return snap.EaseInOut, nil
	default:
		return nil, fmt.Errorf("unknown easing %q, expected %s or %s", name, EasingLinear, EasingEaseInOut)
	}
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
