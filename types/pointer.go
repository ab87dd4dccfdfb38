package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Phase is the stage of a single-pointer input sample.
type Phase uint8

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// ParsePhase converts "down", "move" or "up" (case-insensitive) to a Phase.
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down":
		return PhaseDown, nil
	case "move":
		return PhaseMove, nil
	case "up":
		return PhaseUp, nil
	default:
		return 0, fmt.Errorf("unknown pointer phase: %q", s)
	}
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("pointer phase must be a string: %w", err)
	}
	parsed, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PointerEvent is one raw input sample with screen-absolute coordinates.
type PointerEvent struct {
	Phase     Phase   `json:"phase"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp int64   `json:"timestamp"` // milliseconds
}

func (e PointerEvent) String() string {
	return fmt.Sprintf("%s(%.1f,%.1f)@%d", e.Phase, e.X, e.Y, e.Timestamp)
}

// Point returns the event coordinates truncated to whole pixels.
func (e PointerEvent) Point() Position {
	return Position{X: int(e.X), Y: int(e.Y)}
}
