// Package graph provides the directed graph operations the solver uses:
// cycle detection, resolution ordering, and level grouping.
package graph

import (
	"fmt"
	"sort"
)

// Graph is a directed graph of constraint units. An edge from a to b means
// b requires a (a must resolve before b).
type Graph struct {
	nodes      map[string]bool
	dependents map[string][]string // unit -> units that require it
	requires   map[string][]string // unit -> units it requires
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:      make(map[string]bool),
		dependents: make(map[string][]string),
		requires:   make(map[string][]string),
	}
}

// AddNode adds a unit to the graph. Adding an existing unit is a no-op.
func (g *Graph) AddNode(name string) {
	if !g.nodes[name] {
		g.nodes[name] = true
		g.dependents[name] = []string{}
		g.requires[name] = []string{}
	}
}

// AddEdge records that dependent requires requirement. Both units must
// already be in the graph; self-edges are rejected.
func (g *Graph) AddEdge(requirement, dependent string) error {
	if !g.nodes[requirement] {
		return fmt.Errorf("unknown unit %q", requirement)
	}
	if !g.nodes[dependent] {
		return fmt.Errorf("unknown unit %q", dependent)
	}
	if requirement == dependent {
		return fmt.Errorf("unit %q cannot require itself", dependent)
	}

	if !contains(g.dependents[requirement], dependent) {
		g.dependents[requirement] = append(g.dependents[requirement], dependent)
	}
	if !contains(g.requires[dependent], requirement) {
		g.requires[dependent] = append(g.requires[dependent], requirement)
	}
	return nil
}

// Requires returns the units the given unit requires.
func (g *Graph) Requires(name string) []string {
	return g.requires[name]
}

// Dependents returns the units that require the given unit.
func (g *Graph) Dependents(name string) []string {
	return g.dependents[name]
}

// NodeCount returns the number of units in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of requirement edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, deps := range g.dependents {
		count += len(deps)
	}
	return count
}

// HasCycle reports whether the graph contains a requirement cycle, along
// with one such cycle path.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	cameFrom := make(map[string]string)

	var cyclePath []string

	var dfs func(name string) bool
	dfs = func(name string) bool {
		visited[name] = true
		onStack[name] = true

		for _, dep := range g.dependents[name] {
			if !visited[dep] {
				cameFrom[dep] = name
				if dfs(dep) {
					return true
				}
			} else if onStack[dep] {
				// Reconstruct the cycle for the error message.
				cyclePath = []string{dep}
				for curr := name; curr != dep; curr = cameFrom[curr] {
					cyclePath = append([]string{curr}, cyclePath...)
				}
				cyclePath = append([]string{dep}, cyclePath...)
				return true
			}
		}

		onStack[name] = false
		return false
	}

	for _, name := range g.sortedNodes() {
		if !visited[name] {
			if dfs(name) {
				return true, cyclePath
			}
		}
	}
	return false, nil
}

// ResolutionOrder returns the units in an order where every unit comes
// after everything it requires. Returns an error if the graph is cyclic.
func (g *Graph) ResolutionOrder() ([]string, error) {
	if cyclic, path := g.HasCycle(); cyclic {
		return nil, fmt.Errorf("requirement cycle: %v", path)
	}

	visited := make(map[string]bool)
	var order []string

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, req := range g.requires[name] {
			visit(req)
		}
		order = append(order, name)
	}

	for _, name := range g.sortedNodes() {
		visit(name)
	}
	return order, nil
}

// ResolutionLevels groups units by level: a unit at level N requires only
// units at levels below N. Level 0 units have no requirements.
func (g *Graph) ResolutionLevels() ([][]string, error) {
	if cyclic, path := g.HasCycle(); cyclic {
		return nil, fmt.Errorf("requirement cycle: %v", path)
	}

	assigned := make(map[string]int)

	var level func(name string) int
	level = func(name string) int {
		if l, ok := assigned[name]; ok {
			return l
		}
		max := -1
		for _, req := range g.requires[name] {
			if l := level(req); l > max {
				max = l
			}
		}
		assigned[name] = max + 1
		return max + 1
	}

	maxLevel := 0
	for name := range g.nodes {
		if l := level(name); l > maxLevel {
			maxLevel = l
		}
	}

	levels := make([][]string, maxLevel+1)
	for name, l := range assigned {
		levels[l] = append(levels[l], name)
	}
	for i := range levels {
		sort.Strings(levels[i])
	}
	if len(g.nodes) == 0 {
		return nil, nil
	}
	return levels, nil
}

// Roots returns units with no requirements.
func (g *Graph) Roots() []string {
	var roots []string
	for name := range g.nodes {
		if len(g.requires[name]) == 0 {
			roots = append(roots, name)
		}
	}
	sort.Strings(roots)
	return roots
}

// Leaves returns units nothing else requires.
func (g *Graph) Leaves() []string {
	var leaves []string
	for name := range g.nodes {
		if len(g.dependents[name]) == 0 {
			leaves = append(leaves, name)
		}
	}
	sort.Strings(leaves)
	return leaves
}

// sortedNodes returns node names sorted for deterministic traversal.
func (g *Graph) sortedNodes() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
