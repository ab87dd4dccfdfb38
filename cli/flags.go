package cli

var (
	verbose    bool
	configPath string

	// all device commands
	deviceId string

	// for devices command
	showAllDevices bool

	// for screen command
	bubbleRadius int

	// virtual screen for replay and run
	screenWidth  int
	screenHeight int

	// for run command
	appPackage   string
	runMinimized bool
)
