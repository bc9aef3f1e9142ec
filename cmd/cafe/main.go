// cafe is a TUI café-management game: run the counter, work the machines,
// and serve the line before the shift timer runs out.
//
// Usage:
//
//	cafe play               - Start or resume a game
//	cafe levels             - List campaign levels
//	cafe saves              - List saved characters
//	cafe scores <level>     - Show best results for a level
//
// Global flags:
//
//	--fps <rate>    - Set render frame rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible shifts
//	--db <path>     - Set database path (default: ~/.cafe/saves.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cafe",
	Short: "TUI Café - Run a café from your terminal",
	Long: `TUI Café is a terminal café-management game. Move your barista with
the arrow keys, tap appliances with Space, and serve the customer line
before the shift timer runs out.

Available commands:
  play     - Start or resume a game
  levels   - List campaign levels
  saves    - List saved characters
  scores   - Show best results for a level

Examples:
  cafe play
  cafe play --character ada --level 2
  cafe levels
  cafe scores 3`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Render frame rate")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cafe/saves.db", "Path to saves database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(scoresCmd)
}
