package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-cafe/internal/config"
	"github.com/vovakirdan/tui-cafe/internal/core"
	"github.com/vovakirdan/tui-cafe/internal/platform/tui"
	"github.com/vovakirdan/tui-cafe/internal/storage"
)

var (
	flagConfig    string
	flagCharacter string
	flagLevel     int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume a game",
	Long: `Start playing. With --character the named save is resumed; without it
you'll be asked for a barista name first.

Controls:
  Arrows/WASD - Walk one cell
  Space       - Tap (interact with the appliance you're next to)
  P/Esc       - Pause
  Enter       - Confirm dialogs
  Q/Ctrl+C    - Save and quit

Examples:
  cafe play
  cafe play --character ada
  cafe play --character ada --level 3
  cafe play --config ./my-cafe.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	playCmd.Flags().StringVar(&flagCharacter, "character", "", "Character save to resume or create")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Starting level override (0 = from save)")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cafe",
	})

	cafeCfg, err := config.LoadCafe(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Terminal size for the render grid
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		FPS:       flagFPS,
		Seed:      flagSeed,
		Level:     flagLevel,
		Character: flagCharacter,
	}

	// Open save storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open saves database", "error", err)
		// Continue without storage - game still works, nothing persists
		store = nil
	}

	runErr := tui.Run(store, cafeCfg.Tuning(), cfg, logger)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
