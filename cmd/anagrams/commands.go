package main

import (
	"github.com/bastiangx/anagrams/pkg/anagram"
	"github.com/bastiangx/anagrams/pkg/config"
	"github.com/bastiangx/anagrams/pkg/wordlist"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// flags shared by every command
type rootFlags struct {
	configPath string
	debug      bool
	minWord    int
	workers    int
	distinct   bool
	dedupe     bool
}

// app is what the commands run with once config and flags are merged.
type app struct {
	flags rootFlags
	cfg   *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           AppName,
		Short:         "Finds multi-word anagrams of a phrase in a stream of words",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "Path to a config file")
	pf.BoolVarP(&a.flags.debug, "debug", "d", false, "Toggle debug mode")
	pf.IntVar(&a.flags.minWord, "min-word", anagram.DefaultMinWordSize, "Words this long or shorter are ignored")
	pf.IntVar(&a.flags.workers, "workers", 0, "Parallel candidate evaluation (0 = GOMAXPROCS)")
	pf.BoolVar(&a.flags.distinct, "distinct", false, "Print each set of words once, in any order")
	pf.BoolVar(&a.flags.dedupe, "dedupe", false, "Drop repeated words from the input")

	root.AddCommand(
		newFindCmd(a),
		newInteractiveCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup configures logging and loads the config, letting explicitly set
// flags win over the file.
func (a *app) setup(cmd *cobra.Command) error {
	if a.flags.debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if cmd.Name() == "version" {
		return nil
	}

	cfg, path, err := config.LoadConfigWithPriority(a.flags.configPath)
	if err != nil {
		return err
	}
	if path != "" {
		log.Debugf("Using config file: (%s)", path)
	}

	flags := cmd.Flags()
	if flags.Changed("min-word") {
		cfg.Anagram.MinWordSize = a.flags.minWord
	}
	if flags.Changed("workers") {
		cfg.Anagram.Workers = a.flags.workers
	}
	if flags.Changed("distinct") {
		cfg.Anagram.DistinctResults = a.flags.distinct
	}
	if flags.Changed("dedupe") {
		cfg.Input.DedupeWords = a.flags.dedupe
	}
	a.cfg = cfg
	return nil
}

// processorOptions turns the config into processor options.
func (a *app) processorOptions(extra ...anagram.Option) []anagram.Option {
	opts := []anagram.Option{anagram.WithMinWordSize(a.cfg.Anagram.MinWordSize)}
	if a.cfg.Anagram.Workers > 0 {
		opts = append(opts, anagram.WithWorkers(a.cfg.Anagram.Workers))
	}
	return append(opts, extra...)
}

// newProcessor builds a processor for phrase and warns when the phrase can
// never produce an anagram.
func (a *app) newProcessor(phrase string, extra ...anagram.Option) *anagram.Processor {
	p := anagram.New(phrase, a.processorOptions(extra...)...)
	if p.Degenerate() {
		log.Warn("Phrase has no letters or digits, nothing will be found", "phrase", phrase)
	}
	log.Debug("Processor ready",
		"phrase", phrase,
		"target", p.Target().String(),
		"minWord", p.MinWordSize())
	return p
}

// subscriber wraps fn with Distinct when distinct results are configured.
func (a *app) subscriber(fn func(anagram.Combination)) func(anagram.Combination) {
	if a.cfg.Anagram.DistinctResults {
		return anagram.Distinct(fn)
	}
	return fn
}

func (a *app) wordlistOptions() wordlist.Options {
	return wordlist.Options{
		Dedupe:       a.cfg.Input.DedupeWords,
		MaxWords:     a.cfg.Input.MaxWords,
		SkipComments: a.cfg.Input.SkipComments,
	}
}

// filteredStream applies the configured result filter to every subscriber.
type filteredStream struct {
	*anagram.Processor
	wrap func(func(anagram.Combination)) func(anagram.Combination)
}

func (s *filteredStream) Subscribe(fn func(anagram.Combination)) *anagram.Subscription {
	return s.Processor.Subscribe(s.wrap(fn))
}
