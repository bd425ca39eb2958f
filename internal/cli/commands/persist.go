package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/depsolve-labs/depsolve/internal/cli/config"
	"github.com/depsolve-labs/depsolve/internal/constraint"
	"github.com/depsolve-labs/depsolve/internal/pipeline"
)

// NewPersistCommand creates the persist command, which saves the manifest
// constraints into the state store for the dump-persisted and
// solve-persisted operations.
func NewPersistCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "persist",
		Short: "Save the manifest constraints into the state store",
		Long: `Load the constraint manifest and replace the persisted constraint
set in the state database. The dump-persisted and solve-persisted
commands operate on this stored set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())

			set, err := constraint.Load(cfg.ManifestPath)
			if err != nil {
				return err
			}

			store, err := pipeline.OpenStore(cfg.StatePath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveSet(cmd.Context(), set); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Persisted %d constraint units to %s\n",
				set.Len(), cfg.StatePath)
			return nil
		},
	}
}
