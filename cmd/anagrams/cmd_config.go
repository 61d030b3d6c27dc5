package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/anagrams/pkg/config"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Prints the active config, or rewrites the default file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rebuild {
				if err := config.RebuildConfigFile(); err != nil {
					return fmt.Errorf("rebuild config: %w", err)
				}
				log.Info("Config rebuilt with defaults", "path", config.GetActiveConfigPath(""))
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", config.GetActiveConfigPath(a.flags.configPath))
			return toml.NewEncoder(out).Encode(a.cfg)
		},
	}
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Overwrite the default config file with defaults")
	return cmd
}
