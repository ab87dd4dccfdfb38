package commands

import (
	"fmt"
	"sync"

	"github.com/mobile-next/bubble/bubble"
	"github.com/mobile-next/bubble/devices"
)

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

// deviceCache avoids repeated adb lookups for the same serial
var (
	deviceCacheMu sync.Mutex
	deviceCache   = make(map[string]*devices.AndroidDevice)
)

// sessionRegistry holds the registry for session cleanup tracking.
// It is set once at application startup via SetRegistry and used by commands
// to register bubble sessions for graceful shutdown cleanup.
var sessionRegistry *bubble.Registry

// SetRegistry sets the global session registry for cleanup tracking.
// This should be called once at application startup (main.go).
// The registry is used to close live bubble sessions during graceful
// shutdown (SIGINT/SIGTERM).
func SetRegistry(registry *bubble.Registry) {
	sessionRegistry = registry
}

// GetRegistry returns the current session registry.
// Returns nil if SetRegistry has not been called yet.
func GetRegistry() *bubble.Registry {
	return sessionRegistry
}

// FindDeviceOrAutoSelect finds an online device by ID, or auto-selects the
// only online device if deviceID is empty
func FindDeviceOrAutoSelect(deviceID string) (*devices.AndroidDevice, error) {
	deviceCacheMu.Lock()
	defer deviceCacheMu.Unlock()

	if deviceID != "" {
		if device, exists := deviceCache[deviceID]; exists {
			return device, nil
		}
	}

	device, err := devices.FindAndroidDevice(deviceID)
	if err != nil {
		return nil, fmt.Errorf("error finding device: %w", err)
	}

	deviceCache[device.ID()] = device
	return device, nil
}
