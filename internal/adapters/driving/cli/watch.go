package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/spf13/cobra"
)

var watchJSON bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes under the storage root",
	Long: `Prints a line for every group or document created, modified or removed
under the storage root until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "output one JSON object per change")
	rootCmd.AddCommand(watchCmd)
}

// changeLine is the JSON form of a change.
type changeLine struct {
	Op    string    `json:"op"`
	Group string    `json:"group"`
	File  string    `json:"file,omitempty"`
	At    time.Time `json:"at"`
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if useMemoryRoot {
		return errors.New("watch needs on-disk storage")
	}

	ctx := cmd.Context()
	if _, err := rt.tree(); err != nil {
		return err
	}
	changes, err := rt.watch(ctx)
	if err != nil {
		return err
	}
	cmd.PrintErrf("Watching %s\n", rt.settings.StorageRoot)

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	for change := range changes {
		if watchJSON {
			line := changeLine{Op: string(change.Op), Group: change.Group, File: change.File, At: change.At}
			if err := enc.Encode(line); err != nil {
				return err
			}
			continue
		}
		target := change.Group + "/"
		switch {
		case change.IsRoot():
			target = rt.settings.StorageRoot
		case !change.IsGroup():
			target = path.Join(change.Group, change.File)
		}
		fmt.Fprintf(out, "%s %-8s %s\n", change.At.Format(time.TimeOnly), change.Op, target)
	}
	return nil
}
