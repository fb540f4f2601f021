package main

import (
	"fmt"
	"time"

	"birds/pkg/storage"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best sessions",
	Args:  cobra.NoArgs,
	RunE:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	clearedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.TopSessions(flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, dimStyle.Render("No sessions recorded yet. Run 'birds play' first."))
		return nil
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-4s %8s %6s %5s %8s %9s  %s", "#", "SCORE", "BIRDS", "PIGS", "COLUMNS", "TIME", "DATE")))
	for i, s := range sessions {
		line := fmt.Sprintf("%-4d %8d %6d %5d %8d %9s  %s",
			i+1, s.Score, s.Launched, s.Pigs, s.Columns,
			s.Duration.Round(time.Second), s.CreatedAt.Format("2006-01-02 15:04"))
		if s.Cleared {
			line = clearedStyle.Render(line)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
