package gesture

import (
	"math"

	"github.com/mobile-next/bubble/types"
)

// ClassifyFling decides whether the press that went down at down and was
// released at up is a fling. Only the first and last samples are used.
// A zero or negative elapsed time, or a non-finite velocity, is never a fling.
func ClassifyFling(t Thresholds, down, up types.PointerEvent) (types.Gesture, bool) {
	elapsed := float64(up.Timestamp - down.Timestamp)
	if elapsed <= 0 {
		return types.Gesture{}, false
	}

	dx := up.X - down.X
	dy := up.Y - down.Y
	vx := dx / elapsed
	vy := dy / elapsed
	if !finite(vx) || !finite(vy) {
		return types.Gesture{}, false
	}

	// ties go to the vertical axis
	if math.Abs(dx) > math.Abs(dy) {
		if math.Abs(dx) <= t.FlingMinDistancePx || math.Abs(vx) <= t.FlingMinVelocityPxPerMs {
			return types.Gesture{}, false
		}
		if dx > 0 {
			return types.Fling(types.DirectionRight, vx, vy), true
		}
		return types.Fling(types.DirectionLeft, vx, vy), true
	}

	if math.Abs(dy) <= t.FlingMinDistancePx || math.Abs(vy) <= t.FlingMinVelocityPxPerMs {
		return types.Gesture{}, false
	}
	// screen y grows downward
	if dy < 0 {
		return types.Fling(types.DirectionUp, vx, vy), true
	}
	return types.Fling(types.DirectionDown, vx, vy), true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
