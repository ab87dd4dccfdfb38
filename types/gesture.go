package types

import (
	"encoding/json"
	"fmt"
)

// Direction of a fling.
type Direction uint8

const (
	DirectionLeft Direction = iota
	DirectionRight
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Horizontal reports whether d is Left or Right.
func (d Direction) Horizontal() bool {
	return d == DirectionLeft || d == DirectionRight
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// GestureKind tags the Gesture union.
type GestureKind uint8

const (
	GestureTap GestureKind = iota
	GestureDoubleTap
	GestureLongPress
	GestureFling
)

func (k GestureKind) String() string {
	switch k {
	case GestureTap:
		return "tap"
	case GestureDoubleTap:
		return "double_tap"
	case GestureLongPress:
		return "long_press"
	case GestureFling:
		return "fling"
	default:
		return fmt.Sprintf("gesture(%d)", uint8(k))
	}
}

func (k GestureKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Gesture is a classified pointer gesture. Direction and velocities are only
// meaningful when Kind is GestureFling; velocities are in px/ms.
type Gesture struct {
	Kind      GestureKind
	Direction Direction
	VelocityX float64
	VelocityY float64
}

type gestureJSON struct {
	Kind      GestureKind `json:"kind"`
	Direction *Direction  `json:"direction,omitempty"`
	VelocityX *float64    `json:"velocityX,omitempty"`
	VelocityY *float64    `json:"velocityY,omitempty"`
}

// MarshalJSON omits the fling fields for non-fling gestures. A left fling
// has the zero Direction, so omitempty on the struct fields cannot be used.
func (g Gesture) MarshalJSON() ([]byte, error) {
	out := gestureJSON{Kind: g.Kind}
	if g.Kind == GestureFling {
		out.Direction = &g.Direction
		out.VelocityX = &g.VelocityX
		out.VelocityY = &g.VelocityY
	}
	return json.Marshal(out)
}

func Tap() Gesture       { return Gesture{Kind: GestureTap} }
func DoubleTap() Gesture { return Gesture{Kind: GestureDoubleTap} }
func LongPress() Gesture { return Gesture{Kind: GestureLongPress} }

// Fling builds a fling gesture.
func Fling(direction Direction, vx, vy float64) Gesture {
	return Gesture{Kind: GestureFling, Direction: direction, VelocityX: vx, VelocityY: vy}
}

func (g Gesture) String() string {
	if g.Kind == GestureFling {
		return fmt.Sprintf("fling(%s, vx=%.3f, vy=%.3f)", g.Direction, g.VelocityX, g.VelocityY)
	}
	return g.Kind.String()
}
