package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/reaction-x/internal/platform/tui"
	"github.com/vovakirdan/reaction-x/internal/storage"
)

var (
	flagLimit       int
	flagRecent      bool
	flagInteractive bool
	flagClear       bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show journaled rounds",
	Long: `Display the fastest rounds in the journal, or the most recent ones.

Examples:
  reactionx history
  reactionx history --recent --limit 20
  reactionx history --interactive
  reactionx history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of rounds to show")
	historyCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show most recent rounds instead of fastest")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the table viewer")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all journaled rounds")
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Open round journal
	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		return fmt.Errorf("opening round journal: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRounds(); err != nil {
			return err
		}
		fmt.Println("Round journal cleared.")
		return nil
	}

	view := tui.ViewFastest
	if flagRecent {
		view = tui.ViewRecent
	}

	if flagInteractive {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunHistory(store, view, width, height)
	}

	var rounds []storage.RoundEntry
	if view == tui.ViewRecent {
		rounds, err = store.RecentRounds(flagLimit)
	} else {
		rounds, err = store.FastestRounds(flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s rounds\n", view)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'reactionx play' to set the first time!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-8s  %-16s  %s\n", "#", "Time", "Outcome", "Date", "Session")
	fmt.Printf("  %-4s  %-8s  %-8s  %-16s  %s\n", "-", "----", "-------", "----", "-------")

	// Print rounds
	for i, r := range rounds {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8s  %-8s  %-16s  %s\n",
			i+1, tui.FormatRoundTime(r), r.Outcome, dateStr, tui.ShortID(r.SessionID))
	}

	// Show summary
	fmt.Println()
	if stats, err := store.GetStats(); err == nil {
		fmt.Println(tui.FormatStats(stats))
	}
	return nil
}
