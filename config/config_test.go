package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mobile-next/bubble/bubble"
	"github.com/mobile-next/bubble/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_MatchesBubbleDefaults(t *testing.T) {
	opts, err := Default().Options()
	require.NoError(t, err)

	want := bubble.DefaultOptions()
	assert.Equal(t, want.Thresholds, opts.Thresholds)
	assert.Equal(t, want.BubbleRadius, opts.BubbleRadius)
	assert.Equal(t, want.BubbleSize, opts.BubbleSize)
	assert.Equal(t, want.SnapDuration, opts.SnapDuration)
	assert.Equal(t, want.FrameInterval, opts.FrameInterval)
	assert.Nil(t, opts.InitialPosition)
	assert.False(t, opts.RunMinimized)
}

func TestLoadYAML_OverridesOnlyGivenFields(t *testing.T) {
	doc := `
gestures:
  long_press_ms: 800
  fling_min_velocity_px_per_sec: 200
bubble:
  radius_px: 40
  easing: ease-in-out
  run_minimized: true
  initial_x: 10
  initial_y: 20
`
	cfg, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)

	opts, err := cfg.Options()
	require.NoError(t, err)

	assert.Equal(t, 800*time.Millisecond, opts.Thresholds.LongPressDuration)
	assert.InDelta(t, 0.2, opts.Thresholds.FlingMinVelocityPxPerMs, 1e-12)
	assert.Equal(t, 300*time.Millisecond, opts.Thresholds.DoubleTapWindow)
	assert.Equal(t, 40, opts.BubbleRadius)
	assert.True(t, opts.RunMinimized)
	require.NotNil(t, opts.InitialPosition)
	assert.Equal(t, types.Position{X: 10, Y: 20}, *opts.InitialPosition)
	assert.InDelta(t, 0.5, opts.Interpolator(0.5), 1e-12)
	assert.Less(t, opts.Interpolator(0.1), 0.1)
}

func TestLoadYAML_Empty(t *testing.T) {
	cfg, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "gestures:\n  swipe: 1\n"},
		{"zero long press", "gestures:\n  long_press_ms: 0\n"},
		{"negative slop", "gestures:\n  tap_slop_px: -3\n"},
		{"negative radius", "bubble:\n  radius_px: -1\n"},
		{"zero frame", "bubble:\n  frame_ms: 0\n"},
		{"unknown easing", "bubble:\n  easing: bounce\n"},
		{"half initial position", "bubble:\n  initial_x: 5\n"},
		{"not yaml", "gestures: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "bubble.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bubble:\n  snap_ms: 450\n"), 0o600))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 450, cfg.Bubble.SnapMs)

	require.NoError(t, os.WriteFile(path, []byte("bubble:\n  snap_ms: -1\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
