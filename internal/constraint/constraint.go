// Package constraint defines the dependency-constraint model the analysis
// pipeline operates on: named units and the requirement edges between them.
package constraint

import (
	"fmt"
	"sort"
)

// Unit is a single constrained component. It requires every unit named in
// Requires to be resolved before it.
type Unit struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Requires    []string `yaml:"requires,omitempty"`
}

// Set is a collection of constraint units with unique names.
type Set struct {
	units  []Unit
	byName map[string]int
}

// NewSet creates an empty constraint set.
func NewSet() *Set {
	return &Set{byName: make(map[string]int)}
}

// Add appends a unit to the set. The unit name must be non-empty and
// unique within the set.
func (s *Set) Add(u Unit) error {
	if u.Name == "" {
		return fmt.Errorf("constraint unit has no name")
	}
	if _, exists := s.byName[u.Name]; exists {
		return fmt.Errorf("duplicate constraint unit %q", u.Name)
	}
	s.byName[u.Name] = len(s.units)
	s.units = append(s.units, u)
	return nil
}

// Get returns the unit with the given name.
func (s *Set) Get(name string) (Unit, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Unit{}, false
	}
	return s.units[i], true
}

// Units returns the units in insertion order.
func (s *Set) Units() []Unit {
	out := make([]Unit, len(s.units))
	copy(out, s.units)
	return out
}

// Names returns the unit names sorted lexically.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.units))
	for _, u := range s.units {
		names = append(names, u.Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of units in the set.
func (s *Set) Len() int {
	return len(s.units)
}

// EdgeCount returns the total number of requirement edges.
func (s *Set) EdgeCount() int {
	count := 0
	for _, u := range s.units {
		count += len(u.Requires)
	}
	return count
}

// Validate checks that every requirement names a unit in the set and that
// no unit requires itself.
func (s *Set) Validate() error {
	for _, u := range s.units {
		for _, req := range u.Requires {
			if req == u.Name {
				return fmt.Errorf("unit %q requires itself", u.Name)
			}
			if _, ok := s.byName[req]; !ok {
				return fmt.Errorf("unit %q requires unknown unit %q", u.Name, req)
			}
		}
	}
	return nil
}
