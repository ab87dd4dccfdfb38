package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGesture_MarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		gesture Gesture
		want    string
	}{
		{"tap", Tap(), `{"kind":"tap"}`},
		{"double tap", DoubleTap(), `{"kind":"double_tap"}`},
		{"long press", LongPress(), `{"kind":"long_press"}`},
		{"left fling", Fling(DirectionLeft, -2, 0.5), `{"kind":"fling","direction":"left","velocityX":-2,"velocityY":0.5}`},
		{"right fling", Fling(DirectionRight, 1.25, 0), `{"kind":"fling","direction":"right","velocityX":1.25,"velocityY":0}`},
		{"down fling", Fling(DirectionDown, 0, 3), `{"kind":"fling","direction":"down","velocityX":0,"velocityY":3}`},
		{"tap ignores stray fling fields", Gesture{Kind: GestureTap, Direction: DirectionUp, VelocityX: 4}, `{"kind":"tap"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.gesture)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestGesture_PointerFieldMarshals(t *testing.T) {
	g := Fling(DirectionLeft, -1, 0)
	state := struct {
		LastGesture *Gesture `json:"lastGesture,omitempty"`
	}{LastGesture: &g}

	data, err := json.Marshal(state)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lastGesture":{"kind":"fling","direction":"left","velocityX":-1,"velocityY":0}}`, string(data))
}

func TestDirection_String(t *testing.T) {
	tests := []struct {
		direction  Direction
		want       string
		horizontal bool
	}{
		{DirectionLeft, "left", true},
		{DirectionRight, "right", true},
		{DirectionUp, "up", false},
		{DirectionDown, "down", false},
		{Direction(9), "direction(9)", false},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.direction.String())
			assert.Equal(t, tt.horizontal, tt.direction.Horizontal())
		})
	}
}

func TestGestureKind_String(t *testing.T) {
	tests := []struct {
		kind GestureKind
		want string
	}{
		{GestureTap, "tap"},
		{GestureDoubleTap, "double_tap"},
		{GestureLongPress, "long_press"},
		{GestureFling, "fling"},
		{GestureKind(7), "gesture(7)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())

			data, err := json.Marshal(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, `"`+tt.want+`"`, string(data))
		})
	}
}

func TestGesture_String(t *testing.T) {
	assert.Equal(t, "tap", Tap().String())
	assert.Equal(t, "fling(left, vx=-2.000, vy=0.500)", Fling(DirectionLeft, -2, 0.5).String())
}
