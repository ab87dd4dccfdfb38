package bubble

import (
	"fmt"
	"time"

	"github.com/mobile-next/bubble/gesture"
	"github.com/mobile-next/bubble/snap"
	"github.com/mobile-next/bubble/types"
)

// Options tunes a bubble session.
type Options struct {
	Thresholds gesture.Thresholds

	// BubbleRadius keeps the snapped bubble inside the screen edge.
	BubbleRadius int
	// BubbleSize is the overlay window size.
	BubbleSize types.Size
	// SnapDuration is how long the edge snap takes.
	SnapDuration time.Duration
	// FrameInterval is the snap animation tick period.
	FrameInterval time.Duration
	// Interpolator eases the snap; nil is linear.
	Interpolator snap.Interpolator
	// InitialPosition overrides the default start at the right edge.
	InitialPosition *types.Position
	// RunMinimized sends the host application home once the overlay is up.
	RunMinimized bool
}

// DefaultOptions returns the settings the bubble ships with.
func DefaultOptions() Options {
	return Options{
		Thresholds:    gesture.DefaultThresholds(),
		BubbleRadius:  70,
		BubbleSize:    types.Size{Width: 140, Height: 140},
		SnapDuration:  300 * time.Millisecond,
		FrameInterval: snap.DefaultFrameInterval,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if err := o.Thresholds.Validate(); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
	}
	if o.BubbleRadius < 0 {
		return fmt.Errorf("bubble radius must not be negative, got %d", o.BubbleRadius)
	}
	if o.BubbleSize.Width <= 0 || o.BubbleSize.Height <= 0 {
		return fmt.Errorf("bubble size must be positive, got %dx%d", o.BubbleSize.Width, o.BubbleSize.Height)
	}
	if o.SnapDuration < 0 {
		return fmt.Errorf("snap duration must not be negative, got %v", o.SnapDuration)
	}
	if o.FrameInterval <= 0 {
		return fmt.Errorf("frame interval must be positive, got %v", o.FrameInterval)
	}
	return nil
}
