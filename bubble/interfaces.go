package bubble

import "github.com/mobile-next/bubble/types"

// Window is an always-on-top overlay surface created by a WindowManager.
type Window interface {
	Move(pos types.Position) error
	Destroy() error
}

// WindowManager creates overlay windows.
type WindowManager interface {
	CreateOverlay(pos types.Position, size types.Size) (Window, error)
}

// ScreenBoundsProvider reports the size of the screen the overlay lives on.
type ScreenBoundsProvider interface {
	ScreenBounds() (types.ScreenBounds, error)
}

// Actions are the requests the bubble makes of the host application.
type Actions interface {
	// BringToFront shows the host application's main UI (single tap).
	BringToFront() error
	// GoHome sends the host application to the background (double tap).
	GoHome() error
	// Terminate ends the overlay session (long press).
	Terminate() error
}

// StaticScreen is a ScreenBoundsProvider with fixed bounds.
type StaticScreen types.ScreenBounds

func (s StaticScreen) ScreenBounds() (types.ScreenBounds, error) {
	return types.ScreenBounds(s), nil
}
