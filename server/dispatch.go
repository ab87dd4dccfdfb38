package server

import (
	"encoding/json"
	"fmt"

	"github.com/mobile-next/bubble/commands"
)

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// GetMethodRegistry returns a map of method names to handler functions
// This is used by both the HTTP and WebSocket transports
func GetMethodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"devices":         handleDevicesList,
		"screen_bounds":   handleScreenBounds,
		"bubble_start":    handleBubbleStart,
		"bubble_pointer":  handleBubblePointer,
		"bubble_state":    handleBubbleState,
		"bubble_stop":     handleBubbleStop,
		"server.shutdown": handleServerShutdown,
	}
}

// Execute dispatches a method call using the registry
// This is the main entry point for embedded clients
func Execute(method string, params json.RawMessage) (interface{}, error) {
	registry := GetMethodRegistry()

	handler, exists := registry[method]
	if !exists {
		return nil, fmt.Errorf("method not found: %s", method)
	}

	return handler(params)
}

// DevicesParams represents the parameters for the devices request
type DevicesParams struct {
	ShowAll bool `json:"showAll"`
}

// SessionParams identifies a bubble session
type SessionParams struct {
	SessionID string `json:"sessionId"`
}

// decodeParams unmarshals optional params into v
func decodeParams(params json.RawMessage, v interface{}, fields string) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return invalidParams("invalid parameters: %v. Expected fields: %s", err, fields)
	}
	return nil
}

// responseData turns a command response into a handler result
func responseData(response *commands.CommandResponse) (interface{}, error) {
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleDevicesList(params json.RawMessage) (interface{}, error) {
	devicesParams := DevicesParams{ShowAll: true}
	if err := decodeParams(params, &devicesParams, "showAll"); err != nil {
		return nil, err
	}

	return responseData(commands.DevicesCommand(devicesParams.ShowAll))
}

func handleScreenBounds(params json.RawMessage) (interface{}, error) {
	var req commands.ScreenRequest
	if err := decodeParams(params, &req, "deviceId, bubbleRadius"); err != nil {
		return nil, err
	}

	return responseData(commands.ScreenCommand(req))
}

func handleBubbleStart(params json.RawMessage) (interface{}, error) {
	return startBubble(params)
}

func startBubble(params json.RawMessage, hooks ...commands.SessionHook) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: deviceId or width, height")
	}

	var req commands.BubbleStartRequest
	if err := decodeParams(params, &req, "deviceId, width, height, package, runMinimized, position"); err != nil {
		return nil, err
	}

	if req.DeviceID == "" && (req.Width <= 0 || req.Height <= 0) {
		return nil, invalidParams("'width' and 'height' are required without 'deviceId'")
	}

	return responseData(commands.BubbleStartCommand(req, hooks...))
}

func handleBubblePointer(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: sessionId, events")
	}

	var req commands.BubblePointerRequest
	if err := decodeParams(params, &req, "sessionId, events"); err != nil {
		return nil, err
	}

	if req.SessionID == "" {
		return nil, invalidParams("'sessionId' is required")
	}

	return responseData(commands.BubblePointerCommand(req))
}

func handleBubbleState(params json.RawMessage) (interface{}, error) {
	req, err := sessionRequest(params)
	if err != nil {
		return nil, err
	}

	return responseData(commands.BubbleStateCommand(req))
}

func handleBubbleStop(params json.RawMessage) (interface{}, error) {
	req, err := sessionRequest(params)
	if err != nil {
		return nil, err
	}

	return responseData(commands.BubbleStopCommand(req))
}

func sessionRequest(params json.RawMessage) (commands.BubbleSessionRequest, error) {
	var sessionParams SessionParams
	if err := decodeParams(params, &sessionParams, "sessionId"); err != nil {
		return commands.BubbleSessionRequest{}, err
	}

	if sessionParams.SessionID == "" {
		return commands.BubbleSessionRequest{}, invalidParams("'sessionId' is required")
	}

	return commands.BubbleSessionRequest{SessionID: sessionParams.SessionID}, nil
}
