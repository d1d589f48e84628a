package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Resolver selects the best variant for a call and performs the conversions
// the selection requires. Resolution is a pure computation over immutable
// inputs; a Resolver is safe for concurrent use.
type Resolver struct {
	logger *slog.Logger
	types  Subtyping
}

func NewResolver(logger *slog.Logger, h Subtyping) *Resolver {
	return &Resolver{logger: logger, types: h}
}

// pairing records which supplied arguments one parameter consumed and how
// each was accepted. Optional parameters skipped with a neutral pass hold no
// indexes; vararg parameters may hold many.
type pairing struct {
	param   Parameter
	indexes []int
	accepts []Acceptance
}

type candidate struct {
	variant      *Variant
	pairs        []pairing
	level        int
	disqualified bool
	receiverOnly bool
}

// score walks the variant's parameters left to right against the supplied
// arguments. The overall level is the minimum acceptance level across all
// consumed pairs; any unacceptable pair, unmet required parameter, or
// leftover argument disqualifies the variant outright.
func (r *Resolver) score(call Call, v *Variant, argctx *ArgumentContext) candidate {
	c := candidate{variant: v, level: LevelDirect}

	if recv, ok := v.Receiver(); ok {
		switch {
		case call.Caller.Type.IsZero():
			if !recv.Optional() {
				c.disqualified = true
				c.receiverOnly = true
				return c
			}
		case !r.types.IsSubtypeOrEqual(call.Caller.Type, recv.Type()):
			c.disqualified = true
			c.receiverOnly = true
			return c
		}
	}

	next := 0
	for _, param := range v.Params() {
		if param.Vararg() {
			pair := pairing{param: param}
			for ; next < len(call.Args); next++ {
				a := Accept(r.types, param, call.Args[next], argctx)
				if !Acceptable(a) {
					c.disqualified = true
					return c
				}

				pair.indexes = append(pair.indexes, next)
				pair.accepts = append(pair.accepts, a)
				c.level = min(c.level, a.Level())
			}

			c.pairs = append(c.pairs, pair)
			continue
		}

		if next >= len(call.Args) {
			if param.Optional() {
				c.pairs = append(c.pairs, pairing{param: param})
				continue
			}

			c.disqualified = true
			return c
		}

		a := Accept(r.types, param, call.Args[next], argctx)
		if !Acceptable(a) {
			c.disqualified = true
			return c
		}

		c.pairs = append(c.pairs, pairing{
			param:   param,
			indexes: []int{next},
			accepts: []Acceptance{a},
		})
		c.level = min(c.level, a.Level())
		next++
	}

	if next < len(call.Args) {
		c.disqualified = true
	}

	return c
}

// Resolve scores every variant, picks the single best one, performs the
// conversions its acceptances dictate, and assembles the resolved call.
// Scoring never fails; only the final conversion step can, and such a
// failure surfaces directly with no rollback because nothing was mutated.
func (r *Resolver) Resolve(ctx context.Context, call Call, variants []*Variant, argctx *ArgumentContext) (*ResolvedCall, error) {
	var best []candidate
	receiverOnly := len(variants) > 0

	for _, v := range variants {
		c := r.score(call, v, argctx)
		if c.disqualified {
			receiverOnly = receiverOnly && c.receiverOnly
			continue
		}

		receiverOnly = false

		switch {
		case len(best) == 0 || c.level > best[0].level:
			best = append(best[:0], c)
		case c.level == best[0].level:
			best = append(best, c)
		}
	}

	if len(best) == 0 {
		if receiverOnly {
			return nil, &ReceiverRejectedError{Callee: call.Callee, Caller: call.Caller.Type}
		}

		return nil, &NoMatchingVariantError{Callee: call.Callee, Candidates: len(variants)}
	}

	if len(best) > 1 {
		tied := make([]*Variant, 0, len(best))
		for _, c := range best {
			tied = append(tied, c.variant)
		}

		return nil, &AmbiguousVariantsError{Callee: call.Callee, Variants: tied}
	}

	chosen := best[0]

	resolved := &ResolvedCall{
		ID:      uuid.New(),
		Callee:  call.Callee,
		Variant: chosen.variant,
		Args:    make([]any, 0, len(chosen.pairs)),
	}

	if _, ok := chosen.variant.Receiver(); ok {
		resolved.Receiver = call.Caller.Value
	}

	for _, pair := range chosen.pairs {
		value, err := r.convert(ctx, call, pair)
		if err != nil {
			return nil, err
		}

		resolved.Args = append(resolved.Args, value)
	}

	r.logger.Debug("resolved call",
		"id", resolved.ID,
		"callee", call.Callee,
		"variant", chosen.variant.String(),
		"level", chosen.level,
	)

	return resolved, nil
}

func (r *Resolver) convert(ctx context.Context, call Call, pair pairing) (any, error) {
	if pair.param.Vararg() {
		values := make([]any, 0, len(pair.indexes))
		for i := range pair.indexes {
			value, err := r.convertOne(ctx, call, pair.param, pair.indexes[i], pair.accepts[i])
			if err != nil {
				return nil, err
			}

			values = append(values, value)
		}

		return values, nil
	}

	if len(pair.indexes) == 0 {
		// Skipped optional parameter.
		return nil, nil
	}

	return r.convertOne(ctx, call, pair.param, pair.indexes[0], pair.accepts[0])
}

func (r *Resolver) convertOne(ctx context.Context, call Call, param Parameter, index int, accept Acceptance) (any, error) {
	arg := call.Args[index]

	switch accept := accept.(type) {
	case Direct:
		if _, ok := param.(Constant); ok {
			raw, _ := arg.Raw()
			return raw, nil
		}

		v, _ := arg.Value()
		return v.Value, nil
	case ViaOffered:
		return accept.Value.Value, nil
	case ViaParser:
		raw, _ := arg.Raw()
		value, err := accept.Parser.Parse(ctx, raw)
		if err != nil {
			return nil, &ConversionError{
				Callee:    call.Callee,
				Parameter: param,
				Token:     raw,
				Err:       err,
			}
		}

		return value, nil
	default:
		panic(fmt.Sprintf("bug: unexpected acceptance at conversion time: %T", accept))
	}
}
