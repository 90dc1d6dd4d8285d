package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/reaction-x/internal/core"
	"github.com/vovakirdan/reaction-x/internal/platform/tui"
	"github.com/vovakirdan/reaction-x/internal/reaction"
	"github.com/vovakirdan/reaction-x/internal/storage"
)

// Smallest terminal that fits the panel.
const (
	minPanelWidth  = 50
	minPanelHeight = 16
)

var flagNoJournal bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on the terminal front panel",
	Long: `Start the game controller on a simulated board drawn in the terminal.

Controls (default device config):
  Space/Up    - Ready
  Z/Left      - Reaction button 1
  M/Right     - Reaction button 2
  R           - Reset
  Ctrl+S      - Save the display to ~/.reactionx/screenshots
  ?           - More keys
  Q/Ctrl+C    - Quit

Press ready, wait for green, then hit a reaction button as fast as you can.
Pressing before green is a false start.

Examples:
  reactionx play
  reactionx play --seed 42
  reactionx play --config ./my-board.yaml --log-file /tmp/reactionx.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record rounds")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs are dropped unless --log-file is set
	logger, closeLog, err := newLogger(cfg, "reactionx", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < minPanelWidth || h < minPanelHeight {
			fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the panel needs %dx%d\n",
				w, h, minPanelWidth, minPanelHeight)
		}
	}

	runtime := core.DefaultConfig()
	runtime.Seed = flagSeed

	var recorder reaction.RoundRecorder
	if !flagNoJournal {
		// Open round journal
		store, err := storage.Open(dbPath(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open round journal: %v\n", err)
			// Continue without storage - game still works
		} else {
			defer store.Close()
			rec := storage.NewRecorder(store)
			logger.Info("journaling rounds", "session", rec.SessionID())
			recorder = rec
		}
	}

	return tui.Run(tui.PanelOptions{
		Device:   cfg,
		Runtime:  runtime,
		Recorder: recorder,
		Logger:   logger,
	})
}
