package devices

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/mobile-next/bubble/bubble"
	"github.com/mobile-next/bubble/types"
	"github.com/mobile-next/bubble/utils"
)

// WindowMetricsMinSDK is the first API level whose screen size is read with
// `wm size`; older devices are asked through `dumpsys display`.
const WindowMetricsMinSDK = 30

var (
	wmPhysicalSizeRe = regexp.MustCompile(`Physical size:\s*(\d+)x(\d+)`)
	wmOverrideSizeRe = regexp.MustCompile(`Override size:\s*(\d+)x(\d+)`)

	dumpsysViewportRe = regexp.MustCompile(`deviceWidth=(\d+),\s*deviceHeight=(\d+)`)
	dumpsysDeviceRe   = regexp.MustCompile(`DisplayDeviceInfo\{[^}]*?(\d+) x (\d+)`)
)

var errNoSize = errors.New("no screen size in output")

// WindowMetricsScreen reads the screen size with `wm size`. An override
// size, when set, is what apps see and wins over the physical size.
type WindowMetricsScreen struct {
	Device *AndroidDevice
}

func (s WindowMetricsScreen) ScreenBounds() (types.ScreenBounds, error) {
	output, err := s.Device.runAdbCommand("shell", "wm", "size")
	if err != nil {
		return types.ScreenBounds{}, fmt.Errorf("failed to run wm size: %w", err)
	}
	return parseWmSize(string(output))
}

func parseWmSize(output string) (types.ScreenBounds, error) {
	if bounds, ok := matchSize(wmOverrideSizeRe, output); ok {
		return bounds, nil
	}
	if bounds, ok := matchSize(wmPhysicalSizeRe, output); ok {
		return bounds, nil
	}
	return types.ScreenBounds{}, errNoSize
}

// DisplayMetricsScreen reads the screen size from `dumpsys display` on
// devices that predate window metrics.
type DisplayMetricsScreen struct {
	Device *AndroidDevice
}

func (s DisplayMetricsScreen) ScreenBounds() (types.ScreenBounds, error) {
	output, err := s.Device.runAdbCommand("shell", "dumpsys", "display")
	if err != nil {
		return types.ScreenBounds{}, fmt.Errorf("failed to run dumpsys display: %w", err)
	}
	return parseDumpsysDisplay(string(output))
}

func parseDumpsysDisplay(output string) (types.ScreenBounds, error) {
	if bounds, ok := matchSize(dumpsysViewportRe, output); ok {
		return bounds, nil
	}
	if bounds, ok := matchSize(dumpsysDeviceRe, output); ok {
		return bounds, nil
	}
	return types.ScreenBounds{}, errNoSize
}

func matchSize(re *regexp.Regexp, output string) (types.ScreenBounds, bool) {
	m := re.FindStringSubmatch(output)
	if m == nil {
		return types.ScreenBounds{}, false
	}
	width, err := strconv.Atoi(m[1])
	if err != nil {
		return types.ScreenBounds{}, false
	}
	height, err := strconv.Atoi(m[2])
	if err != nil {
		return types.ScreenBounds{}, false
	}
	return types.ScreenBounds{Width: width, Height: height}, true
}

// FallbackScreen asks Primary and falls back to Fallback when it fails.
type FallbackScreen struct {
	Primary  bubble.ScreenBoundsProvider
	Fallback bubble.ScreenBoundsProvider
}

func (s FallbackScreen) ScreenBounds() (types.ScreenBounds, error) {
	bounds, err := s.Primary.ScreenBounds()
	if err == nil && bounds.Valid() {
		return bounds, nil
	}
	if s.Fallback == nil {
		if err == nil {
			err = fmt.Errorf("invalid screen size %dx%d", bounds.Width, bounds.Height)
		}
		return types.ScreenBounds{}, err
	}

	utils.Verbose("primary screen bounds unavailable (%v), using fallback", err)
	fallback, fallbackErr := s.Fallback.ScreenBounds()
	if fallbackErr != nil {
		return types.ScreenBounds{}, errors.Join(err, fallbackErr)
	}
	return fallback, nil
}

// Screen size sources, chosen by API level.
const (
	SourceWindowMetrics  = "window_metrics"
	SourceDisplayMetrics = "display_metrics"
)

// ScreenCapability describes how the screen size of a device is read.
type ScreenCapability struct {
	SDK    int    `json:"sdk"`
	Source string `json:"source"`
	// AVD is the emulator whose config.ini size is used when the device
	// cannot report one.
	AVD string `json:"avd,omitempty"`
}

// DetectScreenCapability reads the API level of an online device and picks
// the screen size source for it.
func DetectScreenCapability(device *AndroidDevice) (ScreenCapability, error) {
	sdk, err := device.SDKLevel()
	if err != nil {
		return ScreenCapability{}, err
	}

	capability := ScreenCapability{SDK: sdk, Source: SourceDisplayMetrics}
	if sdk >= WindowMetricsMinSDK {
		capability.Source = SourceWindowMetrics
	}

	avdName, err := device.AVDName()
	if err != nil {
		utils.Verbose("no avd fallback for %s: %v", device.ID(), err)
	}
	capability.AVD = avdName
	return capability, nil
}

// NewScreenBoundsProvider picks the screen size capability for the device by
// its API level. Emulators fall back to the hw.lcd size of their AVD.
func NewScreenBoundsProvider(device *AndroidDevice) (bubble.ScreenBoundsProvider, error) {
	capability, err := DetectScreenCapability(device)
	if err != nil {
		return nil, err
	}
	utils.Verbose("device %s has sdk %d, using %s", device.ID(), capability.SDK, capability.Source)

	var primary bubble.ScreenBoundsProvider = DisplayMetricsScreen{Device: device}
	if capability.Source == SourceWindowMetrics {
		primary = WindowMetricsScreen{Device: device}
	}

	if capability.AVD == "" {
		return primary, nil
	}
	return FallbackScreen{Primary: primary, Fallback: AVDScreen{Name: capability.AVD}}, nil
}
