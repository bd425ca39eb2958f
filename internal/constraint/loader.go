package constraint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultManifest is the manifest filename looked for when none is given.
const DefaultManifest = "constraints.yaml"

// manifest is the on-disk shape of a constraint manifest.
type manifest struct {
	Constraints []Unit `yaml:"constraints"`
}

// Load reads and validates a constraint manifest.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates raw manifest YAML into a constraint set.
func Parse(data []byte) (*Set, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	set := NewSet()
	for _, u := range m.Constraints {
		if err := set.Add(u); err != nil {
			return nil, fmt.Errorf("invalid manifest: %w", err)
		}
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return set, nil
}
