package main

import (
	"os"

	"github.com/bastiangx/anagrams/internal/logger"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show current version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := logger.NewWithConfig(os.Stderr, "", log.InfoLevel, false, false, log.TextFormatter)

			styles := log.DefaultStyles()
			styles.Values["version"] = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			out.SetStyles(styles)

			out.Print("")
			out.Print("[ Anagrams ] Finds multi-word anagrams in a stream of words")
			out.Print("", "version", Version)
			out.Print("")
			out.Print("use -h or --help to see available options")
			out.Print("Github Repo", "gh", gh)
		},
	}
}
