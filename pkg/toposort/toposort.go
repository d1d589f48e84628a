package toposort

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

var ErrCycle = fmt.Errorf("cycle detected")

// Sort returns values in dependency order: every value appears after all of
// its dependencies. Ties are broken by natural ordering so the result is
// deterministic. Dependencies outside the value set are ignored.
func Sort[T constraints.Ordered](values []T, deps func(T) []T) ([]T, error) {
	present := make(map[T]struct{}, len(values))
	for _, v := range values {
		present[v] = struct{}{}
	}

	pending := make(map[T]map[T]struct{})
	dependents := make(map[T]map[T]struct{})

	for v := range present {
		for _, dep := range deps(v) {
			if _, ok := present[dep]; !ok {
				continue
			}

			if pending[v] == nil {
				pending[v] = make(map[T]struct{})
			}
			pending[v][dep] = struct{}{}

			if dependents[dep] == nil {
				dependents[dep] = make(map[T]struct{})
			}
			dependents[dep][v] = struct{}{}
		}
	}

	var ready []T
	for v := range present {
		if len(pending[v]) == 0 {
			ready = append(ready, v)
		}
	}
	slices.Sort(ready)

	ordered := make([]T, 0, len(values))

	for len(ready) > 0 {
		var next T
		next, ready = ready[0], ready[1:]
		ordered = append(ordered, next)

		sorted := maps.Keys(dependents[next])
		slices.Sort(sorted)
		for _, dependent := range sorted {
			delete(pending[dependent], next)
			if len(pending[dependent]) == 0 {
				delete(pending, dependent)
				ready = append(ready, dependent)
			}
		}
	}

	if len(ordered) != len(present) {
		return nil, ErrCycle
	}

	return ordered, nil
}
