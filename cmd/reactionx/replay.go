package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reaction-x/internal/replay"
)

var flagVerbose bool

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Replay a scripted game",
	Long: `Run the controller on a simulated board with a manual clock, pressing
buttons at the times a YAML script gives, and print what the display and
the LED strip did. The same script always produces the same trace.

Script format:
  seed: 7            # RNG seed for the go delay (--seed overrides)
  duration: 12s      # Optional; defaults to 3s after the last press
  presses:
    - {at: 1s, button: ready}
    - {at: 6.5s, button: react1, hold: 80ms}

Buttons: ready, react1, react2, reset. Times are from power-up.

Examples:
  reactionx replay ./game.yaml
  reactionx replay ./game.yaml --verbose --seed 3`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print every counter frame")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, "replay", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	script, err := replay.LoadScript(args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		script.Seed = flagSeed
	}

	res, runErr := replay.Run(script, replay.Options{
		LEDCount:    cfg.Board.LEDCount,
		Brightness:  cfg.Board.Brightness,
		Columns:     cfg.Board.Display.Columns(),
		DefaultHold: cfg.Simulator.Hold(),
		Logger:      logger,
	})
	if res != nil {
		if err := res.WriteTrace(os.Stdout, flagVerbose); err != nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("replay stopped: %w", runErr)
	}
	return nil
}
