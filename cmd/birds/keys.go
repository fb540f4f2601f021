package main

import (
	"fmt"
	"slices"

	"birds/pkg/client/systems"

	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the key bindings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		keys := systems.DefaultKeys()
		actions := make([]string, 0, len(keys))
		for action := range keys {
			actions = append(actions, action)
		}
		slices.Sort(actions)

		out := cmd.OutOrStdout()
		for _, action := range actions {
			fmt.Fprintf(out, "%-14s %s (%d)\n", action, keys[action].String(), keys[action])
		}
		fmt.Fprintf(out, "%-14s %s\n", "Launch", "Left mouse drag")
	},
}
