package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
)

// result captures one command execution.
type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with a fresh config dir and storage root
// unless args supply their own.
func execute(t *testing.T, ctx context.Context, stdin io.Reader, args ...string) result {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(ctx)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// workspace returns the persistent flags pointing at fresh temp dirs.
func workspace(t *testing.T) []string {
	t.Helper()
	return []string{"--config-dir", t.TempDir(), "--root", t.TempDir()}
}

// resetFlags restores flag variables, which cobra keeps between runs.
func resetFlags() {
	verbose = false
	configDir = ""
	rootOverride = ""
	useMemoryRoot = false
	groupsJSON = false
	filesJSON = false
	loadStrict = false
	saveData = ""
	saveFile = ""
	serveAddr = ""
	serveStatic = ""
	watchJSON = false
	rt = nil
}
