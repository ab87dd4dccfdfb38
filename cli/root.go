package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mobile-next/bubble/commands"
	"github.com/mobile-next/bubble/config"
	"github.com/mobile-next/bubble/utils"
	"github.com/spf13/cobra"
)

const version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bubble",
	Short: "A floating overlay bubble driven by pointer input",
	Long:  `Drives a draggable overlay bubble from pointer events: tap, double tap, long press and fling-to-edge, on Android devices or a virtual screen.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func initConfig() {
	utils.SetVerbose(verbose)
}

// loadConfig reads the config file and makes its options the session defaults
func loadConfig() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	opts, err := cfg.Options()
	if err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	commands.SetSessionOptions(opts)
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file with gesture and bubble settings")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		utils.Warn("failed to encode output: %v", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}

// printResponse prints a command response and turns an error status into an error
func printResponse(response *commands.CommandResponse) error {
	printJson(response)
	if response.Status == "error" {
		return fmt.Errorf("%s", response.Error)
	}
	return nil
}
