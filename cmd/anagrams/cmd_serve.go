package main

import (
	"os"

	"github.com/bastiangx/anagrams/pkg/anagram"
	"github.com/bastiangx/anagrams/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve <phrase>",
		Short: "Serves the anagram stream over MessagePack on stdin/stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd, args[0])
		},
	}
}

func (a *app) runServe(cmd *cobra.Command, phrase string) error {
	ctx := cmd.Context()

	var metrics *anagram.Metrics
	if addr := a.cfg.Server.MetricsAddr; addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = anagram.NewMetrics(reg)

		go func() {
			if err := server.ServeMetrics(ctx, addr, reg); err != nil {
				log.Errorf("Metrics endpoint failed: %v", err)
			}
		}()
	}

	factory := func(phrase string) *anagram.Processor {
		return a.newProcessor(phrase, anagram.WithMetrics(metrics))
	}
	srv := server.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), phrase, factory, server.Options{
		Distinct:    a.cfg.Anagram.DistinctResults,
		ReplyTiming: a.cfg.Server.ReplyTiming,
	})

	showStartupInfo(phrase)
	return srv.Start(ctx)
}

// showStartupInfo displays some basic info about the server process.
func showStartupInfo(phrase string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("phrase: ( %s )", phrase)
	log.Info("status: ready")
}
