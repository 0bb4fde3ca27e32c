// Package cli provides the treestore command line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/treestore/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Persistent flags shared by every command.
var (
	verbose       bool
	configDir     string
	rootOverride  string
	useMemoryRoot bool
)

// rt is rebuilt before every command runs.
var rt *runtime

var rootCmd = &cobra.Command{
	Use:   "treestore",
	Short: "Grouped JSON tree document storage",
	Long: `treestore keeps JSON tree documents in named groups on disk and serves
them over HTTP, MCP and an interactive terminal browser.

Settings are read from ~/.treestore/config.toml, then TREESTORE_* environment
variables, then command line flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		r, err := bootstrap()
		if err != nil {
			return err
		}
		rt = r
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	flags.StringVar(&configDir, "config-dir", "", "config directory (default ~/.treestore)")
	flags.StringVar(&rootOverride, "root", "", "storage root directory (overrides config)")
	flags.BoolVar(&useMemoryRoot, "memory", false, "keep documents in memory instead of on disk")
}

// Execute runs the root command with ctx. Cancelling ctx stops
// long-running commands.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
