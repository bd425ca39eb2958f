package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `
constraints:
  - name: core
  - name: api
    requires: [core]
`

// runRoot executes the root command with args in a fresh working directory.
func runRoot(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	cmd.SetContext(context.Background())

	err = cmd.Execute()
	return out.String(), err
}

func writeManifest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "constraints.yaml"), []byte(testManifest), 0o600))
	return dir
}

func TestRootCmd_Metadata(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "depsolve", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	for _, flag := range []string{"config", "manifest", "state", "output", "verbosity"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}

	for _, name := range []string{"dump", "solve", "dump-persisted", "solve-persisted", "persist", "history", "version"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "subcommand %q should be registered", name)
	}
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	_, err := runRoot(t, writeManifest(t), "explode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRootCmd_DumpEndToEnd(t *testing.T) {
	out, err := runRoot(t, writeManifest(t), "dump", "--output", "json")
	require.NoError(t, err)

	var view struct {
		TotalUnits int `json:"total_units"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 2, view.TotalUnits)
}

func TestRootCmd_SolveEndToEnd(t *testing.T) {
	out, err := runRoot(t, writeManifest(t), "solve", "--output", "json")
	require.NoError(t, err)

	var view struct {
		Status string   `json:"status"`
		Order  []string `json:"order"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "satisfiable", view.Status)
	assert.Equal(t, []string{"core", "api"}, view.Order)
}

func TestRootCmd_PersistThenSolvePersisted(t *testing.T) {
	dir := writeManifest(t)

	out, err := runRoot(t, dir, "persist")
	require.NoError(t, err)
	assert.Contains(t, out, "Persisted 2 constraint units")

	out, err = runRoot(t, dir, "solve-persisted", "--output", "json")
	require.NoError(t, err)

	var view struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "satisfiable", view.Status)
}

func TestRootCmd_Version(t *testing.T) {
	out, err := runRoot(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "depsolve v")
}
