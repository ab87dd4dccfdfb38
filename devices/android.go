package devices

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// execCommand runs an external command and returns its combined output.
// Tests replace it to fake adb.
var execCommand = func(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// AndroidDevice is a device or emulator reachable over adb.
type AndroidDevice struct {
	id      string
	name    string
	version string
	state   string
}

// NewAndroidDevice returns a handle for the online device with the given serial.
func NewAndroidDevice(id string) *AndroidDevice {
	return &AndroidDevice{id: id, name: id, state: "online"}
}

func (d AndroidDevice) ID() string {
	return d.id
}

func (d AndroidDevice) Name() string {
	return d.name
}

func (d AndroidDevice) Platform() string {
	return "android"
}

func (d AndroidDevice) DeviceType() string {
	if strings.HasPrefix(d.id, "emulator-") {
		return "emulator"
	} else {
		return "real"
	}
}

func (d AndroidDevice) State() string {
	return d.state
}

func (d AndroidDevice) Version() string {
	return d.version
}

func (d AndroidDevice) runAdbCommand(args ...string) ([]byte, error) {
	cmdArgs := append([]string{"-s", d.id}, args...)
	return execCommand("adb", cmdArgs...)
}

// SDKLevel returns the device API level (ro.build.version.sdk).
func (d AndroidDevice) SDKLevel() (int, error) {
	output, err := d.runAdbCommand("shell", "getprop", "ro.build.version.sdk")
	if err != nil {
		return 0, fmt.Errorf("failed to read sdk level: %w", err)
	}

	level, err := strconv.Atoi(strings.TrimSpace(string(output)))
	if err != nil {
		return 0, fmt.Errorf("unexpected sdk level %q: %w", strings.TrimSpace(string(output)), err)
	}
	return level, nil
}

// AVDName returns the AVD an emulator was started from, or "" for real devices.
func (d AndroidDevice) AVDName() (string, error) {
	if d.DeviceType() != "emulator" {
		return "", nil
	}

	output, err := d.runAdbCommand("emu", "avd", "name")
	if err != nil {
		return "", fmt.Errorf("failed to read avd name: %w", err)
	}

	// output is the name followed by an "OK" line
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && line != "OK" {
			return line, nil
		}
	}
	return "", nil
}

func (d AndroidDevice) LaunchApp(packageName string) error {
	output, err := d.runAdbCommand("shell", "monkey", "-p", packageName, "-c", "android.intent.category.LAUNCHER", "1")
	if err != nil {
		return fmt.Errorf("failed to launch app %s: %w\nOutput: %s", packageName, err, string(output))
	}

	return nil
}

func (d AndroidDevice) TerminateApp(packageName string) error {
	output, err := d.runAdbCommand("shell", "am", "force-stop", packageName)
	if err != nil {
		return fmt.Errorf("failed to terminate app %s: %w\nOutput: %s", packageName, err, string(output))
	}

	return nil
}

func (d AndroidDevice) PressButton(key string) error {
	keyMap := map[string]string{
		"home":        "3",
		"back":        "4",
		"power":       "26",
		"volume_up":   "24",
		"volume_down": "25",
	}

	keycode, exists := keyMap[key]
	if !exists {
		return fmt.Errorf("AndroidDevice: unsupported button key: %s", key)
	}

	output, err := d.runAdbCommand("shell", "input", "keyevent", keycode)
	if err != nil {
		return fmt.Errorf("AndroidDevice: failed to press %s button: %w\nOutput: %s", key, err, string(output))
	}

	return nil
}

func parseAdbDevicesOutput(output string) []*AndroidDevice {
	var devices []*AndroidDevice

	lines := strings.Split(output, "\n")
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		parts := strings.Fields(line)
		if len(parts) == 2 {
			deviceID := parts[0]
			status := parts[1]
			if status == "device" {
				devices = append(devices, &AndroidDevice{
					id:    deviceID,
					name:  deviceID,
					state: "online",
				})
			}
		}
	}

	return devices
}

func getAndroidDeviceName(deviceID string) string {
	modelOutput, err := execCommand("adb", "-s", deviceID, "shell", "getprop", "ro.product.model")
	if err == nil && len(modelOutput) > 0 {
		return strings.TrimSpace(string(modelOutput))
	}

	return deviceID
}

// GetAndroidDevices retrieves a list of connected Android devices
func GetAndroidDevices() ([]*AndroidDevice, error) {
	output, err := execCommand("adb", "devices")
	if err != nil {
		return nil, fmt.Errorf("failed to run 'adb devices': %w", err)
	}

	androidDevices := parseAdbDevicesOutput(string(output))
	for _, d := range androidDevices {
		d.name = getAndroidDeviceName(d.id)
	}
	return androidDevices, nil
}
