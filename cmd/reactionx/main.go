// reactionx runs the reaction-time game controller on a simulated board.
//
// Usage:
//
//	reactionx play             - Play on the terminal front panel
//	reactionx serve            - Serve front panels over SSH
//	reactionx replay <script>  - Replay a scripted game and print the trace
//	reactionx history          - Show journaled rounds
//	reactionx config           - Print the effective device configuration
//
// Global flags:
//
//	--config <path>     - Device config YAML (default search path otherwise)
//	--seed <value>      - RNG seed for the go delay (0 = time based)
//	--db <path>         - Round journal path (default from config)
//	--log-level <lvl>   - debug, info, warn, error (default from config)
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/reaction-x/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reactionx",
	Short: "Reaction X - a reaction-time game on a simulated board",
	Long: `Reaction X is a reaction-time game for a small board with four buttons,
an LED strip and a two-line display. This tool runs the game controller
on a simulated board in your terminal, over SSH, or from a script.

Available commands:
  play     - Play on the terminal front panel
  serve    - Serve front panels over SSH
  replay   - Replay a scripted game deterministically
  history  - Show journaled rounds
  config   - Print the effective device configuration

Examples:
  reactionx play
  reactionx serve --ssh :23235
  reactionx replay ./game.yaml
  reactionx history --recent`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to device config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to round journal (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the device config honoring --config.
func loadConfig() (config.DeviceConfig, error) {
	return config.Load(flagConfig)
}

// dbPath returns --db or the configured journal path.
func dbPath(cfg config.DeviceConfig) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.Storage.Path
}

// newLogger builds the logger for a command. Without --log-file logs go to
// fallback. The returned close function releases the log file.
func newLogger(cfg config.DeviceConfig, prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	levelName := flagLogLevel
	if levelName == "" {
		levelName = cfg.Log.Level
	}
	level, err := log.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		path, err := config.ExpandHome(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}
