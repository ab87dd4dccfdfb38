package cli

import (
	"fmt"
	"os"

	"github.com/mobile-next/bubble/commands"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [trace.json]",
	Short: "Replay a recorded pointer trace on a virtual screen",
	Long: `Feeds a JSON array of pointer events ({"phase":"down","x":500,"y":500,"timestamp":0}, ...) to a bubble on a virtual screen.
Time is simulated from the event timestamps, so the output is deterministic. Prints the gestures, the requested actions and the window trail.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return printResponse(commands.NewErrorResponse(fmt.Errorf("failed to open trace: %w", err)))
		}
		defer f.Close()

		events, err := commands.LoadTrace(f)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}

		return printResponse(commands.ReplayCommand(commands.ReplayRequest{
			Events: events,
			Width:  screenWidth,
			Height: screenHeight,
		}))
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().IntVar(&screenWidth, "width", 1080, "virtual screen width in pixels")
	replayCmd.Flags().IntVar(&screenHeight, "height", 1920, "virtual screen height in pixels")
}
