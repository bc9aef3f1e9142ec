package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cafe/internal/cafe"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Campaign levels:")
		fmt.Println()
		for i := range cafe.LevelCount() {
			lvl := cafe.GetLevel(i)
			queues := 1
			if lvl.TwoQueues {
				queues = 2
			}
			note := ""
			if lvl.Tutorial {
				note = "  (tutorial)"
			}
			fmt.Printf("  %d. %-15s %2d customers x%d lines, %3d ticks, clear at %d%s\n",
				lvl.ID, lvl.Name, lvl.QueueLen, queues, lvl.TimeLimit, lvl.ToClear, note)
		}
		fmt.Println()
		fmt.Println("Play a specific level with: cafe play --character NAME --level N")
	},
}
