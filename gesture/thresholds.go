package gesture

import (
	"fmt"
	"time"
)

// Thresholds tunes the classifier. Distances are in screen pixels.
type Thresholds struct {
	// TapMaxDisplacementPx is the touch slop: a press that strays further
	// from its down point is no longer a tap and cancels the long press.
	TapMaxDisplacementPx float64
	// TapMaxDuration is the longest down-to-up time that still counts as a tap.
	TapMaxDuration time.Duration
	// DoubleTapWindow is the longest gap between the first up and the second down.
	DoubleTapWindow time.Duration
	// LongPressDuration is how long a still press must be held.
	LongPressDuration time.Duration
	// FlingMinDistancePx is the minimum displacement on the dominant axis.
	FlingMinDistancePx float64
	// FlingMinVelocityPxPerMs is the minimum speed on the dominant axis.
	FlingMinVelocityPxPerMs float64
}

// DefaultThresholds mirrors the platform gesture detector defaults the
// bubble was first tuned with: 50px / 50px-per-second swipes, a 300ms
// double tap window and a 500ms long press.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TapMaxDisplacementPx:    16,
		TapMaxDuration:          300 * time.Millisecond,
		DoubleTapWindow:         300 * time.Millisecond,
		LongPressDuration:       500 * time.Millisecond,
		FlingMinDistancePx:      50,
		FlingMinVelocityPxPerMs: 0.05,
	}
}

// Validate rejects thresholds the classifier cannot work with.
func (t Thresholds) Validate() error {
	if t.TapMaxDisplacementPx < 0 {
		return fmt.Errorf("tap max displacement must not be negative, got %v", t.TapMaxDisplacementPx)
	}
	if t.TapMaxDuration <= 0 {
		return fmt.Errorf("tap max duration must be positive, got %v", t.TapMaxDuration)
	}
	if t.DoubleTapWindow <= 0 {
		return fmt.Errorf("double tap window must be positive, got %v", t.DoubleTapWindow)
	}
	if t.LongPressDuration <= 0 {
		return fmt.Errorf("long press duration must be positive, got %v", t.LongPressDuration)
	}
	if t.FlingMinDistancePx < 0 {
		return fmt.Errorf("fling min distance must not be negative, got %v", t.FlingMinDistancePx)
	}
	if t.FlingMinVelocityPxPerMs < 0 {
		return fmt.Errorf("fling min velocity must not be negative, got %v", t.FlingMinVelocityPxPerMs)
	}
	return nil
}
