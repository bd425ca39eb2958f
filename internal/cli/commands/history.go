package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/depsolve-labs/depsolve/internal/cli/config"
	"github.com/depsolve-labs/depsolve/internal/output"
	"github.com/depsolve-labs/depsolve/internal/pipeline"
)

// NewHistoryCommand creates the history command, which lists recorded
// solve runs.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded solve runs",
		Long:  `List solve runs recorded in the state database, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())

			store, err := pipeline.OpenStore(cfg.StatePath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListSolves(cmd.Context(), limit)
			if err != nil {
				return err
			}

			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(runs)
			}

			if len(runs) == 0 {
				r.Println("No solve runs recorded.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					string(run.Status),
					fmt.Sprintf("%d", run.UnitCount),
					run.Source,
					run.StartedAt.Format(time.RFC3339),
				})
			}
			r.Table([]string{"ID", "Status", "Units", "Source", "Started"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}
