// Package solver computes satisfying resolution orders for constraint sets.
package solver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/depsolve-labs/depsolve/internal/constraint"
	"github.com/depsolve-labs/depsolve/internal/graph"
)

// Result describes the outcome of solving a constraint set.
type Result struct {
	// Satisfiable is false when the constraints contain a requirement cycle.
	Satisfiable bool `json:"satisfiable"`
	// Cycle holds one offending cycle path when Satisfiable is false.
	Cycle []string `json:"cycle,omitempty"`
	// Order lists units so every unit follows everything it requires.
	Order []string `json:"order,omitempty"`
	// Levels groups units that can be resolved together.
	Levels [][]string `json:"levels,omitempty"`
}

// BuildGraph constructs the requirement graph for a constraint set.
func BuildGraph(set *constraint.Set) (*graph.Graph, error) {
	g := graph.New()
	for _, u := range set.Units() {
		g.AddNode(u.Name)
	}
	for _, u := range set.Units() {
		for _, req := range u.Requires {
			if err := g.AddEdge(req, u.Name); err != nil {
				return nil, fmt.Errorf("invalid constraint on %q: %w", u.Name, err)
			}
		}
	}
	return g, nil
}

// Solve builds the requirement graph and computes a resolution order.
// An unsatisfiable set (a requirement cycle) is a normal result, not an
// error; errors are reserved for malformed input and cancellation.
func Solve(ctx context.Context, set *constraint.Set) (*Result, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}

	g, err := BuildGraph(set)
	if err != nil {
		return nil, err
	}

	if cyclic, path := g.HasCycle(); cyclic {
		return &Result{Satisfiable: false, Cycle: path}, nil
	}

	order, err := g.ResolutionOrder()
	if err != nil {
		return nil, err
	}
	levels, err := g.ResolutionLevels()
	if err != nil {
		return nil, err
	}

	if err := checkLevels(ctx, g, levels); err != nil {
		return nil, err
	}

	return &Result{Satisfiable: true, Order: order, Levels: levels}, nil
}

// checkLevels verifies, one level at a time, that every unit's requirements
// were placed at a lower level. Units within a level are independent, so
// they are checked concurrently.
func checkLevels(ctx context.Context, g *graph.Graph, levels [][]string) error {
	placed := make(map[string]int)
	for i, level := range levels {
		for _, name := range level {
			placed[name] = i
		}
	}

	for i, level := range levels {
		eg, _ := errgroup.WithContext(ctx)
		for _, name := range level {
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				for _, req := range g.Requires(name) {
					if placed[req] >= i {
						return fmt.Errorf("unit %q resolved before its requirement %q", name, req)
					}
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
	}
	return nil
}
