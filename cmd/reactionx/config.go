package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reaction-x/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective device configuration",
	Long: `Print the device configuration as YAML after applying the search path:
--config, ~/.reactionx/device.yaml, ./configs/device.yaml, built-in defaults.

Examples:
  reactionx config
  reactionx config --defaults > ~/.reactionx/device.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults with comments")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
