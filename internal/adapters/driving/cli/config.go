package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit settings",
	Long: `Settings live in config.toml inside the config directory. Environment
variables (TREESTORE_ADDR, TREESTORE_STORAGE_ROOT, TREESTORE_STATIC_DIR,
TREESTORE_CACHE_SIZE, TREESTORE_CACHE_TTL, TREESTORE_RATE_LIMIT,
TREESTORE_RATE_BURST) override the file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Long: `Stores a setting in config.toml. Recognised keys:

  server.addr         listen address
  server.static_dir   directory served at /
  storage.root        storage root directory
  cache.size          cached documents (0 disables)
  cache.ttl_seconds   cache entry lifetime
  ratelimit.rps       requests per second (0 disables)
  ratelimit.burst     token bucket size`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), rt.configStore.Path())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s := rt.settings
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Config file: %s\n\n", rt.configStore.Path())

	fmt.Fprintln(out, "[Server]")
	fmt.Fprintf(out, "  Address: %s\n", s.Addr)
	staticDir := s.StaticDir
	if staticDir == "" {
		staticDir = "(not served)"
	}
	fmt.Fprintf(out, "  Static dir: %s\n", staticDir)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Storage]")
	fmt.Fprintf(out, "  Root: %s\n", s.StorageRoot)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Cache]")
	if s.Cache.Enabled() {
		fmt.Fprintf(out, "  Size: %d documents\n", s.Cache.Size)
		fmt.Fprintf(out, "  TTL: %s\n", s.Cache.TTL)
	} else {
		fmt.Fprintln(out, "  Disabled")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Rate limit]")
	if s.RateLimit.Enabled() {
		fmt.Fprintf(out, "  Rate: %g requests/s\n", s.RateLimit.RPS)
		fmt.Fprintf(out, "  Burst: %d\n", s.RateLimit.Burst)
	} else {
		fmt.Fprintln(out, "  Disabled")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if err := rt.settingsService.Set(key, value); err != nil {
		return fmt.Errorf("%w (keys: %v)", err, rt.settingsService.Keys())
	}
	if err := rt.configStore.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
