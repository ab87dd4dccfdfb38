package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhase(t *testing.T) {
	tests := []struct {
		input   string
		want    Phase
		wantErr bool
	}{
		{"down", PhaseDown, false},
		{"move", PhaseMove, false},
		{"up", PhaseUp, false},
		{"DOWN", PhaseDown, false},
		{"  Move ", PhaseMove, false},
		{"hover", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePhase(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPointerEvent_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PointerEvent
		wantErr bool
	}{
		{
			name:  "down",
			input: `{"phase":"down","x":10.5,"y":20,"timestamp":42}`,
			want:  PointerEvent{Phase: PhaseDown, X: 10.5, Y: 20, Timestamp: 42},
		},
		{
			name:  "upper case phase",
			input: `{"phase":"UP","x":1,"y":2,"timestamp":3}`,
			want:  PointerEvent{Phase: PhaseUp, X: 1, Y: 2, Timestamp: 3},
		},
		{
			name:    "unknown phase",
			input:   `{"phase":"hover","x":1,"y":2,"timestamp":3}`,
			wantErr: true,
		},
		{
			name:    "numeric phase",
			input:   `{"phase":1,"x":1,"y":2,"timestamp":3}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got PointerEvent
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPointerEvent_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(PointerEvent{Phase: PhaseMove, X: 3, Y: 4.5, Timestamp: 16})
	require.NoError(t, err)
	assert.JSONEq(t, `{"phase":"move","x":3,"y":4.5,"timestamp":16}`, string(data))
}

func TestPointerEvent_Point(t *testing.T) {
	tests := []struct {
		x, y float64
		want Position
	}{
		{10.9, 20.1, Position{X: 10, Y: 20}},
		{-3.7, 0.5, Position{X: -3, Y: 0}},
	}

	for _, tt := range tests {
		e := PointerEvent{X: tt.x, Y: tt.y}
		assert.Equal(t, tt.want, e.Point())
	}
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "down", PhaseDown.String())
	assert.Equal(t, "move", PhaseMove.String())
	assert.Equal(t, "up", PhaseUp.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}

func TestScreenBounds_Edges(t *testing.T) {
	b := ScreenBounds{Width: 1080, Height: 1920}

	assert.True(t, b.Valid())
	assert.Equal(t, -470, b.LeftEdge(70))
	assert.Equal(t, 470, b.RightEdge(70))
	assert.False(t, ScreenBounds{Width: 0, Height: 100}.Valid())
}
