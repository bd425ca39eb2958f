// Package pipeline executes the analysis selected by an options value:
// dumping or solving constraint sets from the manifest or the state store.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/depsolve-labs/depsolve/internal/analysis"
	"github.com/depsolve-labs/depsolve/internal/constraint"
	"github.com/depsolve-labs/depsolve/internal/output"
	"github.com/depsolve-labs/depsolve/internal/solver"
	"github.com/depsolve-labs/depsolve/internal/state"
)

// Dependencies carries the collaborators a pipeline run needs.
type Dependencies struct {
	ManifestPath string
	StatePath    string
	Renderer     *output.Renderer
	Logger       *slog.Logger
}

// ErrUnsatisfiable is returned when a solve finds a requirement cycle.
var ErrUnsatisfiable = fmt.Errorf("constraints are unsatisfiable")

// Run executes the operation selected by opts. The Command field is
// dispatched exhaustively; Verbosity controls how much detail is rendered.
func Run(ctx context.Context, opts analysis.Options, deps Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Debug("starting analysis",
		"command", opts.Command.String(),
		"verbosity", int(opts.Verbosity))

	switch opts.Command {
	case analysis.OpDumpConstraints:
		set, err := constraint.Load(deps.ManifestPath)
		if err != nil {
			return err
		}
		return dump(set, opts.Verbosity, deps.Renderer)

	case analysis.OpSolveConstraints:
		set, err := constraint.Load(deps.ManifestPath)
		if err != nil {
			return err
		}
		return solve(ctx, set, "manifest", opts.Verbosity, deps)

	case analysis.OpDumpPersistedConstraints:
		set, err := loadPersisted(ctx, deps)
		if err != nil {
			return err
		}
		return dump(set, opts.Verbosity, deps.Renderer)

	case analysis.OpSolvePersistedConstraints:
		set, err := loadPersisted(ctx, deps)
		if err != nil {
			return err
		}
		return solve(ctx, set, "persisted", opts.Verbosity, deps)

	default:
		return fmt.Errorf("unknown operation %d", int(opts.Command))
	}
}

// OpenStore opens the state store, creating its directory if needed.
func OpenStore(path string) (*state.SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	return state.Open(path)
}

func loadPersisted(ctx context.Context, deps Dependencies) (*constraint.Set, error) {
	store, err := OpenStore(deps.StatePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.LoadSet(ctx)
}

// dumpView is the JSON shape of a constraint dump.
type dumpView struct {
	Units      []constraint.Unit `json:"units"`
	TotalUnits int               `json:"total_units"`
	TotalEdges int               `json:"total_edges"`
	Roots      []string          `json:"roots,omitempty"`
	Leaves     []string          `json:"leaves,omitempty"`
}

func dump(set *constraint.Set, verbosity analysis.Verbosity, r *output.Renderer) error {
	g, err := solver.BuildGraph(set)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		view := dumpView{
			Units:      set.Units(),
			TotalUnits: set.Len(),
			TotalEdges: set.EdgeCount(),
		}
		if verbosity >= 1 {
			view.Roots = g.Roots()
			view.Leaves = g.Leaves()
		}
		return r.JSON(view)
	}

	r.Header("Constraints")

	rows := make([][]string, 0, set.Len())
	for _, u := range set.Units() {
		rows = append(rows, []string{u.Name, strings.Join(u.Requires, ", "), u.Description})
	}
	r.Table([]string{"Unit", "Requires", "Description"}, rows)
	r.Println()

	r.KeyValue("Units", fmt.Sprintf("%d", set.Len()))
	r.KeyValue("Requirements", fmt.Sprintf("%d", set.EdgeCount()))

	if verbosity >= 1 {
		r.KeyValue("Roots", strings.Join(g.Roots(), ", "))
		r.KeyValue("Leaves", strings.Join(g.Leaves(), ", "))
	}
	return nil
}

// solveView is the JSON shape of a solve outcome.
type solveView struct {
	*solver.Result
	Status state.SolveStatus `json:"status"`
}

func solve(ctx context.Context, set *constraint.Set, source string, verbosity analysis.Verbosity, deps Dependencies) error {
	started := time.Now().UTC()

	result, err := solver.Solve(ctx, set)
	if err != nil {
		return err
	}

	status := state.SolveStatusSatisfiable
	if !result.Satisfiable {
		status = state.SolveStatusUnsatisfiable
	}

	// History is recorded for both manifest and persisted solves.
	store, err := OpenStore(deps.StatePath)
	if err != nil {
		return err
	}
	defer store.Close()

	run := &state.SolveRun{
		Status:     status,
		UnitCount:  set.Len(),
		Source:     source,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	}
	if err := store.RecordSolve(ctx, run); err != nil {
		return err
	}

	if err := renderSolve(result, status, verbosity, deps.Renderer); err != nil {
		return err
	}

	if !result.Satisfiable {
		return ErrUnsatisfiable
	}
	return nil
}

func renderSolve(result *solver.Result, status state.SolveStatus, verbosity analysis.Verbosity, r *output.Renderer) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(solveView{Result: result, Status: status})
	}

	r.Header("Solve")
	r.KeyValue("Status", string(status))

	if !result.Satisfiable {
		r.KeyValue("Cycle", strings.Join(result.Cycle, " -> "))
		return nil
	}

	r.KeyValue("Order", strings.Join(result.Order, " -> "))

	if verbosity >= 1 {
		r.Println()
		for i, level := range result.Levels {
			r.KeyValue(fmt.Sprintf("Level %d", i), strings.Join(level, ", "))
		}
	}
	return nil
}
