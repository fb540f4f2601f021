// birds is a slingshot physics game.
//
// Usage:
//
//	birds play                  - Open the game window
//	birds play --spectate :8081 - Also stream events to spectators
//	birds scores                - Show the best sessions
//	birds watch <ws-url>        - Follow a game's spectator feed
//	birds keys                  - List the key bindings
//
// Controls: drag with the left mouse button to launch, R/Y/B pick the
// bird, G boosts a yellow bird, F splits a blue bird, Esc quits.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"birds/pkg/logging"
	"birds/pkg/shared/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
	flagDebug  bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "birds",
	Short:         "Launch birds, topple columns, pop pigs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a tuning YAML (default: ./"+config.LocalConfigPath+" or built-in)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DefaultDBPath, "Path to the scores database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(keysCmd)
}

func newLogger() (*zap.Logger, error) {
	log, err := logging.New(logging.Options{Debug: flagDebug})
	if err != nil {
		return nil, fmt.Errorf("cannot create logger: %w", err)
	}
	return log, nil
}
