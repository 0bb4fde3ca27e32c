package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/treestore/internal/adapters/driving/httpapi"
)

var (
	serveAddr   string
	serveStatic string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Seeds the storage root and serves the document API:

  GET  /api/available-groups   list groups
  GET  /api/files?group=       list documents in a group
  GET  /api/load?group=&file=  load a document (default document without params)
  PUT  /api/save               store {"group","file","treeData"}
  GET  /healthz                liveness

With --static the directory is served at /. External edits under the
storage root are picked up by the document cache.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config, default :3000)")
	serveCmd.Flags().StringVar(&serveStatic, "static", "", "directory served at / (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	settings := rt.settings
	if serveAddr != "" {
		settings.Addr = serveAddr
	}
	if serveStatic != "" {
		settings.StaticDir = serveStatic
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	tree, err := rt.tree()
	if err != nil {
		return err
	}
	if err := tree.EnsureSeeded(ctx); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	changes, err := rt.watch(ctx)
	if err != nil {
		return err
	}
	drain(changes)

	server, err := httpapi.NewServer(&httpapi.Ports{Tree: tree}, httpapi.Options{
		Addr:      settings.Addr,
		StaticDir: settings.StaticDir,
		RateLimit: settings.RateLimit,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Serving %s on %s\n", storageLabel(), settings.Addr)
	return server.Run(ctx)
}
