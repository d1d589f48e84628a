package toposort_test

import (
	"testing"

	"github.com/cmdcast/dispatch/pkg/toposort"
	"github.com/stretchr/testify/require"
)

func TestSort_Empty(t *testing.T) {
	r := require.New(t)

	l, err := toposort.Sort(nil, func(string) []string { return nil })
	r.NoError(err)
	r.Empty(l)
}

func TestSort_Chain(t *testing.T) {
	r := require.New(t)

	deps := map[string][]string{
		"admin":  {"user"},
		"user":   {"entity"},
		"entity": nil,
	}

	l, err := toposort.Sort([]string{"admin", "entity", "user"}, func(n string) []string {
		return deps[n]
	})
	r.NoError(err)
	r.Equal([]string{"entity", "user", "admin"}, l)
}

func TestSort_Diamond(t *testing.T) {
	r := require.New(t)

	deps := map[string][]string{
		"bottom": {"left", "right"},
		"left":   {"top"},
		"right":  {"top"},
	}

	l, err := toposort.Sort([]string{"bottom", "left", "right", "top"}, func(n string) []string {
		return deps[n]
	})
	r.NoError(err)
	r.Equal([]string{"top", "left", "right", "bottom"}, l)
}

func TestSort_IgnoresUnknownDeps(t *testing.T) {
	r := require.New(t)

	l, err := toposort.Sort([]string{"a"}, func(string) []string { return []string{"missing"} })
	r.NoError(err)
	r.Equal([]string{"a"}, l)
}

func TestSort_Cycle(t *testing.T) {
	r := require.New(t)

	deps := map[string][]string{
		"a": {"b"},
		"b": {"a"},
	}

	_, err := toposort.Sort([]string{"a", "b"}, func(n string) []string {
		return deps[n]
	})
	r.ErrorIs(err, toposort.ErrCycle)
}
