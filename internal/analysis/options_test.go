package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions_FieldsVerbatim(t *testing.T) {
	ops := []Operation{
		OpDumpConstraints,
		OpSolveConstraints,
		OpDumpPersistedConstraints,
		OpSolvePersistedConstraints,
	}
	verbosities := []Verbosity{-1, 0, 1, 2, 100}

	for _, op := range ops {
		for _, v := range verbosities {
			opts := NewOptions(op, v)
			assert.Equal(t, op, opts.Command)
			assert.Equal(t, v, opts.Verbosity)
		}
	}
}

func TestNewOptions_EndToEnd(t *testing.T) {
	op, ok := ResolveOperation("solve-persisted")
	require.True(t, ok)

	opts := NewOptions(op, 2)
	assert.Equal(t, OpSolvePersistedConstraints, opts.Command)
	assert.Equal(t, Verbosity(2), opts.Verbosity)
}

func TestNewOptions_UnrecognizedKeywordNeverBuilds(t *testing.T) {
	// The caller contract: resolve first, build only on success.
	if _, ok := ResolveOperation("unknown"); ok {
		t.Fatal("unexpected resolution for unknown keyword")
	}
}
