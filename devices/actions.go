package devices

import (
	"fmt"

	"github.com/mobile-next/bubble/utils"
)

// AndroidActions carries out bubble requests on a device: a tap brings the
// host package to the foreground and a double tap presses home.
type AndroidActions struct {
	Device  *AndroidDevice
	Package string
	// StopOnTerminate force-stops Package when the bubble is long pressed.
	StopOnTerminate bool
}

func (a AndroidActions) BringToFront() error {
	if a.Package == "" {
		return fmt.Errorf("no package to bring to front")
	}
	utils.Verbose("launching %s on %s", a.Package, a.Device.ID())
	return a.Device.LaunchApp(a.Package)
}

func (a AndroidActions) GoHome() error {
	utils.Verbose("pressing home on %s", a.Device.ID())
	return a.Device.PressButton("home")
}

func (a AndroidActions) Terminate() error {
	utils.Info("bubble on %s terminated", a.Device.ID())
	if a.StopOnTerminate && a.Package != "" {
		return a.Device.TerminateApp(a.Package)
	}
	return nil
}
