package types

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/cmdcast/dispatch/pkg/toposort"
)

// Hierarchy is the host-supplied subtype relation over nominal type names.
// It is a partial order: reflexive, transitive, built from declared direct
// supertype edges. Array carriers are never related by name; they only
// compare structurally, since vararg matching unwraps the element type
// before consulting the relation.
type Hierarchy struct {
	parents map[string][]string
}

func NewHierarchy() *Hierarchy {
	return &Hierarchy{parents: make(map[string][]string)}
}

// Declare registers a nominal type with zero or more direct supertypes.
// Redeclaring a name appends supertypes.
func (h *Hierarchy) Declare(name string, supertypes ...string) *Hierarchy {
	if _, ok := h.parents[name]; !ok {
		h.parents[name] = nil
	}

	for _, super := range supertypes {
		if _, ok := h.parents[super]; !ok {
			h.parents[super] = nil
		}
		if !slices.Contains(h.parents[name], super) {
			h.parents[name] = append(h.parents[name], super)
		}
	}

	return h
}

// Validate rejects hierarchies whose supertype edges form a cycle, since a
// cyclic relation is not a partial order.
func (h *Hierarchy) Validate() error {
	names := maps.Keys(h.parents)
	slices.Sort(names)

	_, err := toposort.Sort(names, func(name string) []string {
		return h.parents[name]
	})
	if err != nil {
		return fmt.Errorf("invalid type hierarchy: %w", err)
	}

	return nil
}

// IsSubtypeOrEqual reports whether a value of type a may stand where type b
// is expected. Nominal names are related through declared supertype edges;
// nullability narrows the relation: a nullable source never satisfies a
// non-nullable target. Array carriers relate only element-structurally.
func (h *Hierarchy) IsSubtypeOrEqual(a, b Descriptor) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}

	if a.nullable && !b.nullable {
		return false
	}

	if a.IsArray() || b.IsArray() {
		if a.elem == nil || b.elem == nil {
			return false
		}

		return Equal(*a.elem, *b.elem)
	}

	return h.isNominalSubtype(a.name, b.name, nil)
}

func (h *Hierarchy) isNominalSubtype(a, b string, seen map[string]struct{}) bool {
	if a == b {
		return true
	}

	if _, ok := seen[a]; ok {
		return false
	}

	if seen == nil {
		seen = make(map[string]struct{})
	}
	seen[a] = struct{}{}

	for _, super := range h.parents[a] {
		if h.isNominalSubtype(super, b, seen) {
			return true
		}
	}

	return false
}
