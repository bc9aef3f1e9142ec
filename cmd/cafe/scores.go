package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cafe/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show best results for a level",
	Args:  cobra.ExactArgs(1),
	Run:   runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
}

func runScores(cmd *cobra.Command, args []string) {
	level, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open saves database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	results, err := store.TopLevelResults(level, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Printf("No results for level %d yet.\n", level)
		return
	}

	fmt.Printf("Best results for level %d:\n\n", level)
	for i, r := range results {
		fmt.Printf("  %2d. %-16s %6d pts  $%-4d served %d, ignored %d\n",
			i+1, r.Character, r.Points, r.Money, r.Served, r.Ignored)
	}
}
