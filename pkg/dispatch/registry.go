package dispatch

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Registry stores the overload set registered under each command name.
// Registration happens at setup; the registry is read-only during
// resolution.
type Registry struct {
	variants map[string][]*Variant
	aliases  map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		variants: make(map[string][]*Variant),
		aliases:  make(map[string]string),
	}
}

// Register adds variants to the overload set of name.
func (r *Registry) Register(name string, variants ...*Variant) {
	r.variants[name] = append(r.variants[name], variants...)
}

// Alias makes alias resolve to the overload set of canonical.
func (r *Registry) Alias(alias, canonical string) {
	r.aliases[alias] = canonical
}

// Lookup returns the overload set for name, following one alias hop. A nil
// result means the name is unknown.
func (r *Registry) Lookup(name string) []*Variant {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}

	return r.variants[name]
}

// Names returns all canonical command names, sorted.
func (r *Registry) Names() []string {
	names := maps.Keys(r.variants)
	slices.Sort(names)
	return names
}
