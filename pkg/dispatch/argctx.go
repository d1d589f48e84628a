package dispatch

import (
	"context"

	"github.com/cmdcast/dispatch/pkg/types"
)

// Parser converts a raw textual argument into a value of its target type.
// Parsing may suspend on the context (e.g. a directory lookup) and must
// honor its cancellation.
type Parser interface {
	Target() types.Descriptor
	Parse(ctx context.Context, raw string) (any, error)
}

type parserFunc struct {
	target types.Descriptor
	fn     func(ctx context.Context, raw string) (any, error)
}

func NewParser(target types.Descriptor, fn func(ctx context.Context, raw string) (any, error)) Parser {
	return parserFunc{target: target, fn: fn}
}

func (p parserFunc) Target() types.Descriptor { return p.target }

func (p parserFunc) Parse(ctx context.Context, raw string) (any, error) {
	return p.fn(ctx, raw)
}

// ArgumentContext is an ordered mapping from target type to contextual
// parser. It is immutable; layering is expressed by composition, never by
// mutation, so contexts are safe to share across concurrent resolutions.
type ArgumentContext struct {
	h       Subtyping
	parsers []Parser
}

func NewArgumentContext(h Subtyping, parsers ...Parser) *ArgumentContext {
	return &ArgumentContext{h: h, parsers: parsers}
}

// Lookup returns the most specific parser able to produce the target type:
// an exact target key wins over a supertype key, and among equally specific
// keys the most recently added wins so that overrides shadow what they
// cover.
func (c *ArgumentContext) Lookup(target types.Descriptor) (Parser, bool) {
	if c == nil {
		return nil, false
	}

	for i := len(c.parsers) - 1; i >= 0; i-- {
		if types.Equal(c.parsers[i].Target(), target) {
			return c.parsers[i], true
		}
	}

	if c.h != nil {
		for i := len(c.parsers) - 1; i >= 0; i-- {
			if c.h.IsSubtypeOrEqual(target, c.parsers[i].Target()) {
				return c.parsers[i], true
			}
		}
	}

	return nil, false
}

// With returns a context layering additional parsers over c. The added
// parsers shadow existing entries with compatible keys.
func (c *ArgumentContext) With(parsers ...Parser) *ArgumentContext {
	if len(parsers) == 0 {
		return c
	}

	if c == nil || len(c.parsers) == 0 {
		var h Subtyping
		if c != nil {
			h = c.h
		}
		return &ArgumentContext{h: h, parsers: parsers}
	}

	merged := make([]Parser, 0, len(c.parsers)+len(parsers))
	merged = append(merged, c.parsers...)
	merged = append(merged, parsers...)

	return &ArgumentContext{h: c.h, parsers: merged}
}

// Plus composes two contexts; entries of overrides shadow entries of c. An
// empty side returns the other unchanged.
func (c *ArgumentContext) Plus(overrides *ArgumentContext) *ArgumentContext {
	if overrides == nil || len(overrides.parsers) == 0 {
		return c
	}

	if c == nil || len(c.parsers) == 0 {
		return overrides
	}

	return c.With(overrides.parsers...)
}
