package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathviz/config"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

// newRootCmd assembles the command tree. Flags bind to fresh option structs,
// so every call yields an independent tree.
func newRootCmd() *cobra.Command {
	root := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "pathviz",
		Short: "Step-by-step grid pathfinding with Dijkstra and weighted A*",
		Long: `pathviz animates shortest-path searches on a grid in the terminal.
Draw walls with the mouse, drag the endpoints, and watch the frontier grow
one settled cell at a time.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&root.configPath, "config", "c", "pathviz.yaml", "configuration file (missing file means defaults)")
	rootCmd.PersistentFlags().StringVar(&root.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(root),
		newSolveCmd(root),
		newConfigCmd(root),
	)
	return rootCmd
}

// loadConfig reads the configured file and applies the persistent overrides.
func loadConfig(root *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return nil, err
	}
	if root.logLevel != "" {
		cfg.Log.Level = root.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
