package devices

import (
	"fmt"

	"github.com/mobile-next/bubble/utils"
)

// DeviceInfo represents the JSON-friendly device information
type DeviceInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Type     string `json:"type"`
	State    string `json:"state"`
	Version  string `json:"version,omitempty"`
}

// GetAllAndroidDevices returns the online adb devices followed by the AVDs
// that are not running.
func GetAllAndroidDevices(includeOffline bool) ([]*AndroidDevice, error) {
	online, err := GetAndroidDevices()
	if err != nil {
		return nil, err
	}
	if !includeOffline {
		return online, nil
	}

	onlineIDs := make(map[string]bool, len(online))
	for _, d := range online {
		if name, err := d.AVDName(); err == nil && name != "" {
			onlineIDs[name] = true
		}
	}

	offline, err := getOfflineAndroidEmulators(onlineIDs)
	if err != nil {
		utils.Verbose("Warning: Failed to get offline emulators: %v", err)
		return online, nil
	}
	return append(online, offline...), nil
}

// Info returns the JSON-friendly description of the device
func (d AndroidDevice) Info() DeviceInfo {
	return DeviceInfo{
		ID:       d.ID(),
		Name:     d.Name(),
		Platform: d.Platform(),
		Type:     d.DeviceType(),
		State:    d.State(),
		Version:  d.Version(),
	}
}

// FindAndroidDevice returns the online device with the given serial. With
// an empty id the only online device is returned.
func FindAndroidDevice(id string) (*AndroidDevice, error) {
	devices, err := GetAndroidDevices()
	if err != nil {
		return nil, err
	}

	if id == "" {
		switch len(devices) {
		case 0:
			return nil, fmt.Errorf("no online devices found")
		case 1:
			return devices[0], nil
		default:
			return nil, fmt.Errorf("multiple devices found, please specify one with --device")
		}
	}

	for _, d := range devices {
		if d.ID() == id {
			return d, nil
		}
	}
	return nil, fmt.Errorf("device not found: %s", id)
}
