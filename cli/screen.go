package cli

import (
	"github.com/mobile-next/bubble/commands"
	"github.com/spf13/cobra"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Show the screen bounds and snap targets of a device",
	Long:  `Reads the screen size of the device and prints it with the left and right edge positions the bubble snaps to.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.ScreenCommand(commands.ScreenRequest{
			DeviceID:     deviceId,
			BubbleRadius: bubbleRadius,
		}))
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&deviceId, "device", "", "ID of the device (optional when only one is connected)")
	screenCmd.Flags().IntVar(&bubbleRadius, "radius", 0, "bubble radius in pixels (default from config)")
}
