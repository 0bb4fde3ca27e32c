package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/treestore/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so assistants can list, read
and store tree documents.

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead.

Examples:
  # Stdio mode
  treestore mcp serve

  # HTTP mode
  treestore mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "treestore": {
        "command": "/path/to/treestore",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ctx := cmd.Context()
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

	server, err := mcp.NewServer(&mcp.Ports{Tree: tree})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
