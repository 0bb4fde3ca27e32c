package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/treestore/internal/adapters/driving/tui"
)

// errNotTerminal is returned when browse is run without a terminal.
var errNotTerminal = errors.New("browse needs an interactive terminal")

// stdoutIsTerminal is replaced in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse documents in the terminal",
	Long: `Launch the interactive terminal browser.

Pick a group, then a document, to see it drawn as a tree. The open view
refreshes when files under the storage root change.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open
  Esc      - Back
  t        - Toggle tree / raw JSON
  r        - Reload
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) (err error) {
	if !stdoutIsTerminal() {
		return errNotTerminal
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in browser: %v\n%s", r, debug.Stack())
		}
	}()

	ctx := cmd.Context()
	tree, err := rt.tree()
	if err != nil {
		return err
	}
	if err := tree.EnsureSeeded(ctx); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	ports := tui.NewPorts(tree)
	ports.Changes, err = rt.watch(ctx)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}
	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("browser error: %w", err)
	}
	return nil
}
