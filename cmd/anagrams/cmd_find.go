package main

import (
	"time"

	"github.com/bastiangx/anagrams/internal/cli"
	"github.com/bastiangx/anagrams/internal/utils"
	"github.com/bastiangx/anagrams/pkg/wordlist"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <wordfile> <phrase>",
		Short: "Streams a word list and prints every anagram of phrase",
		Long: `Streams a word list and prints every anagram of phrase as soon as it is
complete. The word list is a text file, a binary chunk file, a directory of
chunk files, or "-" for stdin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFind(cmd, args[0], args[1])
		},
	}
}

func (a *app) runFind(cmd *cobra.Command, path, phrase string) error {
	ctx := cmd.Context()
	renderer := cli.NewRenderer(cmd.OutOrStdout(), a.cfg.CLI.Color)

	start := time.Now()
	p := a.newProcessor(phrase)
	sub := p.Subscribe(a.subscriber(renderer.Combination))
	defer sub.Unsubscribe()

	var (
		summary wordlist.Summary
		err     error
	)
	if path == utils.StdinPath {
		summary, err = wordlist.ReadWords(ctx, cmd.InOrStdin(), a.wordlistOptions(), p.ProcessWord)
	} else {
		var src *wordlist.Source
		src, err = wordlist.Open(path, a.wordlistOptions())
		if err != nil {
			return err
		}
		summary, err = src.Each(ctx, p.ProcessWord)
	}
	if err != nil {
		return err
	}

	log.Debug("Word list done",
		"read", summary.Read,
		"duplicates", summary.Duplicates,
		"skipped", summary.Skipped)

	if a.cfg.CLI.ShowSummary {
		renderer.Summary(p.Stats(), time.Since(start))
	}
	return nil
}
