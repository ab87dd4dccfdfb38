package commands

import (
	"fmt"

	"github.com/mobile-next/bubble/devices"
	"github.com/mobile-next/bubble/utils"
)

// DeviceEntry is a device and, when it is online, how a bubble on it would
// read the screen size.
type DeviceEntry struct {
	devices.DeviceInfo
	Screen *devices.ScreenCapability `json:"screen,omitempty"`
}

type DevicesResponse struct {
	Devices []DeviceEntry `json:"devices"`
}

// DevicesCommand lists Android devices with their screen size capability
func DevicesCommand(showAll bool) *CommandResponse {
	all, err := devices.GetAllAndroidDevices(showAll)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error getting devices: %w", err))
	}

	return NewSuccessResponse(DevicesResponse{Devices: deviceEntries(all)})
}

func deviceEntries(all []*devices.AndroidDevice) []DeviceEntry {
	entries := make([]DeviceEntry, 0, len(all))
	for _, d := range all {
		entry := DeviceEntry{DeviceInfo: d.Info()}
		if d.State() == "online" {
			capability, err := devices.DetectScreenCapability(d)
			if err != nil {
				utils.Verbose("no screen capability for %s: %v", d.ID(), err)
			} else {
				entry.Screen = &capability
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
