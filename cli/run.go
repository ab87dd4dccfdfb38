package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mobile-next/bubble/bubble"
	"github.com/mobile-next/bubble/commands"
	"github.com/mobile-next/bubble/types"
	"github.com/mobile-next/bubble/utils"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show a bubble and drive it with pointer events from stdin",
	Long: `Starts a bubble session and reads pointer events from stdin, one JSON object per line.
Gestures and window moves are printed as JSON lines. With --device the screen size comes from the device
and tap, double tap and long press act on it; otherwise a virtual screen of --width x --height is used.
The session ends at end of input or on long press.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var session *bubble.Session
		response := commands.BubbleStartCommand(commands.BubbleStartRequest{
			DeviceID:     deviceId,
			Width:        screenWidth,
			Height:       screenHeight,
			Package:      appPackage,
			RunMinimized: runMinimized,
		}, func(id string, s *bubble.Session) {
			session = s
			s.OnMove(func(pos types.Position) {
				printLine(map[string]interface{}{"event": "move", "position": pos})
			})
			s.OnGesture(func(g types.Gesture) {
				printLine(map[string]interface{}{"event": "gesture", "gesture": g})
			})
		})
		if response.Status == "error" {
			return printResponse(response)
		}
		printLine(response.Data)

		started := response.Data.(commands.BubbleStartResponse)
		defer commands.BubbleStopCommand(commands.BubbleSessionRequest{SessionID: started.SessionID})

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		events := make(chan types.PointerEvent)
		go readEvents(ctx, os.Stdin, events)

		if err := session.Run(ctx, events); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

// readEvents decodes one pointer event per line until EOF
func readEvents(ctx context.Context, r io.Reader, events chan<- types.PointerEvent) {
	defer close(events)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var e types.PointerEvent
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			utils.Warn("skipping invalid pointer event %q: %v", line, err)
			continue
		}

		select {
		case events <- e:
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		utils.Warn("failed to read pointer events: %v", err)
	}
}

func printLine(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		utils.Warn("failed to encode output: %v", err)
		return
	}
	fmt.Println(string(data))
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&deviceId, "device", "", "ID of the Android device to read the screen from and act on")
	runCmd.Flags().IntVar(&screenWidth, "width", 1080, "virtual screen width in pixels, without --device")
	runCmd.Flags().IntVar(&screenHeight, "height", 1920, "virtual screen height in pixels, without --device")
	runCmd.Flags().StringVar(&appPackage, "package", "", "package brought to the front on tap")
	runCmd.Flags().BoolVar(&runMinimized, "minimized", false, "go to the home screen after the bubble is shown")
}
