package constraint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `
constraints:
  - name: core
    description: shared primitives
  - name: storage
    requires: [core]
  - name: api
    requires: [core, storage]
`

func TestParse_ValidManifest(t *testing.T) {
	set, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 3, set.EdgeCount())
	assert.Equal(t, []string{"api", "core", "storage"}, set.Names())

	storage, ok := set.Get("storage")
	require.True(t, ok)
	assert.Equal(t, []string{"core"}, storage.Requires)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		manifest  string
		errSubstr string
	}{
		{
			name:      "duplicate unit",
			manifest:  "constraints:\n  - name: a\n  - name: a\n",
			errSubstr: "duplicate constraint unit",
		},
		{
			name:      "unknown requirement",
			manifest:  "constraints:\n  - name: a\n    requires: [ghost]\n",
			errSubstr: "unknown unit",
		},
		{
			name:      "self requirement",
			manifest:  "constraints:\n  - name: a\n    requires: [a]\n",
			errSubstr: "requires itself",
		},
		{
			name:      "unnamed unit",
			manifest:  "constraints:\n  - requires: [a]\n",
			errSubstr: "no name",
		},
		{
			name:      "malformed yaml",
			manifest:  "constraints: [\n",
			errSubstr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.manifest))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestParse_EmptyManifest(t *testing.T) {
	set, err := Parse([]byte("constraints: []\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultManifest)
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o600))

	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest")
}
