package main

import (
	"github.com/bastiangx/anagrams/internal/cli"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive <phrase>",
		Aliases: []string{"i"},
		Short:   "Reads words from the terminal and prints anagrams as they complete",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetReportTimestamp(false)

			p := a.newProcessor(args[0])
			renderer := cli.NewRenderer(cmd.OutOrStdout(), a.cfg.CLI.Color)
			stream := &filteredStream{Processor: p, wrap: a.subscriber}

			return cli.NewInputHandler(stream, renderer, cmd.InOrStdin()).Start(cmd.Context())
		},
	}
}
