package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the test so relative config lookup is isolated.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("manifest", "", "")
	flags.String("state", "", "")
	flags.StringP("output", "o", "", "")
	flags.Int("verbosity", 0, "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultManifest, cfg.ManifestPath)
	assert.Equal(t, DefaultStateFile, cfg.StatePath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, 0, cfg.Verbosity)
	assert.Empty(t, FileUsed())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	content := "manifest: custom.yaml\nverbosity: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "depsolve.yaml"), []byte(content), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "custom.yaml", cfg.ManifestPath)
	assert.Equal(t, 2, cfg.Verbosity)
	assert.Equal(t, DefaultStateFile, cfg.StatePath, "unset keys keep defaults")
	assert.Equal(t, "depsolve.yaml", FileUsed())
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, path, FileUsed())
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("nope.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "depsolve.yaml"),
		[]byte("verbosity: 1\n"), 0o600))
	t.Setenv("DEPSOLVE_VERBOSITY", "3")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Verbosity)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "depsolve.yaml"),
		[]byte("manifest: from-file.yaml\nstate_path: from-file.db\n"), 0o600))
	t.Setenv("DEPSOLVE_MANIFEST", "from-env.yaml")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{
		"--manifest", "from-flag.yaml",
		"--state", "from-flag.db",
	}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "from-flag.yaml", cfg.ManifestPath)
	assert.Equal(t, "from-flag.db", cfg.StatePath, "--state maps to state_path")
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "depsolve.yaml"),
		[]byte("manifest: from-file.yaml\n"), 0o600))

	flags := newFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "from-file.yaml", cfg.ManifestPath)
}

func TestConfig_AnalysisVerbosity(t *testing.T) {
	cfg := &Config{Verbosity: 2}
	assert.EqualValues(t, 2, cfg.AnalysisVerbosity())
}
