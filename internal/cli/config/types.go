// Package config loads the CLI configuration from file, environment, and flags.
package config

import "github.com/depsolve-labs/depsolve/internal/analysis"

// Config holds all CLI configuration options.
type Config struct {
	ManifestPath string `koanf:"manifest"`
	StatePath    string `koanf:"state_path"`
	OutputFormat string `koanf:"output"`
	Verbosity    int    `koanf:"verbosity"`
}

// Default configuration values.
const (
	DefaultManifest  = "constraints.yaml"
	DefaultStateFile = ".depsolve/state.db"
	DefaultOutput    = "auto" // TTY=text, non-TTY=markdown
)

// AnalysisVerbosity returns the verbosity as the pipeline's opaque type.
func (c *Config) AnalysisVerbosity() analysis.Verbosity {
	return analysis.Verbosity(c.Verbosity)
}
