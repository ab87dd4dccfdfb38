package commands

import (
	"fmt"

	"github.com/mobile-next/bubble/devices"
	"github.com/mobile-next/bubble/types"
)

// ScreenRequest represents the parameters for a screen bounds command
type ScreenRequest struct {
	DeviceID string `json:"deviceId"`
	// BubbleRadius is used to report the snap targets; zero uses the default.
	BubbleRadius int `json:"bubbleRadius,omitempty"`
}

// ScreenResponse reports the screen size and where a bubble would snap to.
type ScreenResponse struct {
	DeviceID    string             `json:"deviceId"`
	Bounds      types.ScreenBounds `json:"bounds"`
	LeftTarget  int                `json:"leftTarget"`
	RightTarget int                `json:"rightTarget"`
}

// ScreenCommand reads the screen bounds of a device with the capability
// matching its API level.
func ScreenCommand(req ScreenRequest) *CommandResponse {
	device, err := FindDeviceOrAutoSelect(req.DeviceID)
	if err != nil {
		return NewErrorResponse(err)
	}

	provider, err := devices.NewScreenBoundsProvider(device)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to select screen bounds provider: %w", err))
	}

	bounds, err := provider.ScreenBounds()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to read screen bounds: %w", err))
	}

	return NewSuccessResponse(newScreenResponse(device.ID(), bounds, req.BubbleRadius))
}

func newScreenResponse(deviceID string, bounds types.ScreenBounds, radius int) ScreenResponse {
	if radius <= 0 {
		radius = defaultRadius()
	}
	return ScreenResponse{
		DeviceID:    deviceID,
		Bounds:      bounds,
		LeftTarget:  bounds.LeftEdge(radius),
		RightTarget: bounds.RightEdge(radius),
	}
}
