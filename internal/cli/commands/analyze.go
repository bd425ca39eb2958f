// Package commands defines the depsolve subcommands.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/depsolve-labs/depsolve/internal/analysis"
	"github.com/depsolve-labs/depsolve/internal/cli/config"
	"github.com/depsolve-labs/depsolve/internal/output"
	"github.com/depsolve-labs/depsolve/internal/pipeline"
)

// analysisCommand describes one keyword-driven analysis subcommand.
type analysisCommand struct {
	keyword string
	short   string
	long    string
}

var analysisCommands = []analysisCommand{
	{
		keyword: analysis.KeywordDump,
		short:   "Dump the constraint set from the manifest",
		long: `Load the constraint manifest and print every constraint unit,
its requirements, and summary statistics.`,
	},
	{
		keyword: analysis.KeywordSolve,
		short:   "Solve the manifest constraints",
		long: `Load the constraint manifest and compute a resolution order that
satisfies every requirement. A requirement cycle makes the set
unsatisfiable and the command exits with an error.`,
	},
	{
		keyword: analysis.KeywordDumpPersisted,
		short:   "Dump the persisted constraint set",
		long:    `Print the constraint set stored in the state database.`,
	},
	{
		keyword: analysis.KeywordSolvePersisted,
		short:   "Solve the persisted constraints",
		long: `Compute a resolution order for the constraint set stored in the
state database.`,
	},
}

// NewAnalysisCommands creates the dump/solve command family.
func NewAnalysisCommands() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(analysisCommands))
	for _, ac := range analysisCommands {
		cmds = append(cmds, &cobra.Command{
			Use:   ac.keyword,
			Short: ac.short,
			Long:  ac.long,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runAnalysis(cmd)
			},
		})
	}
	return cmds
}

// runAnalysis resolves the invoked command's keyword into an operation,
// bundles it with the configured verbosity, and hands the result to the
// pipeline.
func runAnalysis(cmd *cobra.Command) error {
	op, ok := analysis.ResolveOperation(cmd.Name())
	if !ok {
		return fmt.Errorf("unrecognized command %q (known commands: %s)",
			cmd.Name(), strings.Join(analysis.Keywords(), ", "))
	}

	cfg := config.FromContext(cmd.Context())
	opts := analysis.NewOptions(op, cfg.AnalysisVerbosity())

	deps := pipeline.Dependencies{
		ManifestPath: cfg.ManifestPath,
		StatePath:    cfg.StatePath,
		Renderer:     output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
		Logger:       config.LoggerFrom(cmd.Context()),
	}
	return pipeline.Run(cmd.Context(), opts, deps)
}
