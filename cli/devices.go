package cli

import (
	"github.com/mobile-next/bubble/commands"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected Android devices",
	Long:  `List connected Android devices and emulators. With --all, offline emulators are listed too.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.DevicesCommand(showAllDevices))
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)

	devicesCmd.Flags().BoolVar(&showAllDevices, "all", false, "show all devices including offline ones")
}
