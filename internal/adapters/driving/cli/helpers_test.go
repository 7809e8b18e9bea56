package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gproxy/internal/adapters/driven/storage/memory"
)

// useTestApp installs an application over temporary directories and an
// in-memory workspace, with no Google credential in the environment.
func useTestApp(t *testing.T) *App {
	t.Helper()

	a, err := NewApp(AppOptions{
		ConfigDir: t.TempDir(),
		DataDir:   t.TempDir(),
		Factory:   memory.NewWorkspace(),
		Getenv:    func(string) string { return "" },
	})
	require.NoError(t, err)

	application = a
	t.Cleanup(func() {
		application = nil
		_ = a.Close()
	})
	return a
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
