package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cafe/internal/storage"
)

var flagDelete string

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved characters",
	Args:  cobra.NoArgs,
	Run:   runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagDelete, "delete", "", "Delete the named character's save")
}

func runSaves(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open saves database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagDelete != "" {
		if err := store.DeleteCharacter(flagDelete); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted save %q\n", flagDelete)
		return
	}

	chars, err := store.Characters()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(chars) == 0 {
		fmt.Println("No saved characters yet. Start one with: cafe play")
		return
	}

	fmt.Println("Saved characters:")
	fmt.Println()
	for _, c := range chars {
		upgrades := "none"
		if len(c.Upgrades) > 0 {
			upgrades = strings.Join(c.Upgrades, ", ")
		}
		fmt.Printf("  %-16s level %d  $%-5d %6d pts  upgrades: %s\n",
			c.Name, c.LastLevel, c.Money, c.Points, upgrades)
	}
}
