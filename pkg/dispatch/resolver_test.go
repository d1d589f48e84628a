package dispatch_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cmdcast/dispatch/pkg/dispatch"
	"github.com/cmdcast/dispatch/pkg/types"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"
)

func noopAction(context.Context, *dispatch.ResolvedCall) (any, error) {
	return nil, nil
}

// token mirrors what the call reader produces: a string-typed value that
// still carries its raw text.
func token(s string) dispatch.Argument {
	return dispatch.Typed(types.String, s).WithRaw(s)
}

func newResolver(t *testing.T) *dispatch.Resolver {
	t.Helper()
	return dispatch.NewResolver(slogt.New(t), newHierarchy())
}

// The overload set from the end-to-end scenario: foo add <n:int> and
// foo <target:string>.
func fooVariants() []*dispatch.Variant {
	v1 := dispatch.NewVariant(noopAction,
		dispatch.MustConstant("op", "add"),
		dispatch.NewPositional("n", types.Int),
	)
	v2 := dispatch.NewVariant(noopAction,
		dispatch.NewPositional("target", types.String),
	)
	return []*dispatch.Variant{v1, v2}
}

func TestResolve_ConstantPlusConversion(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)
	variants := fooVariants()

	call := dispatch.Call{
		Callee: "foo",
		Args:   []dispatch.Argument{token("add"), token("5")},
	}

	resolved, err := res.Resolve(context.Background(), call, variants, dispatch.NewStandardContext(newHierarchy()))
	r.NoError(err)
	r.Same(variants[0], resolved.Variant)
	r.Equal([]any{"add", 5}, resolved.Args)
	r.NotEqual("00000000-0000-0000-0000-000000000000", resolved.ID.String())
}

func TestResolve_PreTypedIntegerIsDirect(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)
	variants := fooVariants()

	call := dispatch.Call{
		Callee: "foo",
		Args:   []dispatch.Argument{token("add"), dispatch.Typed(types.Int, 5)},
	}

	resolved, err := res.Resolve(context.Background(), call, variants, dispatch.NewStandardContext(newHierarchy()))
	r.NoError(err)
	r.Same(variants[0], resolved.Variant)
	r.Equal([]any{"add", 5}, resolved.Args)
}

func TestResolve_StringPassthrough(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)
	variants := fooVariants()

	call := dispatch.Call{
		Callee: "foo",
		Args:   []dispatch.Argument{token("bar")},
	}

	resolved, err := res.Resolve(context.Background(), call, variants, dispatch.NewStandardContext(newHierarchy()))
	r.NoError(err)
	r.Same(variants[1], resolved.Variant)
	r.Equal([]any{"bar"}, resolved.Args)
}

func TestResolve_ConversionFailureAfterSelection(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)
	variants := fooVariants()

	call := dispatch.Call{
		Callee: "foo",
		Args:   []dispatch.Argument{token("add"), token("notanumber")},
	}

	_, err := res.Resolve(context.Background(), call, variants, dispatch.NewStandardContext(newHierarchy()))

	var convErr *dispatch.ConversionError
	r.ErrorAs(err, &convErr)
	r.Equal("notanumber", convErr.Token)
	r.Equal("foo", convErr.Callee)

	var noMatch *dispatch.NoMatchingVariantError
	r.False(errors.As(err, &noMatch))
}

func TestResolve_HighestLevelWins(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)

	viaParser := dispatch.NewVariant(noopAction, dispatch.NewPositional("n", types.Int))
	direct := dispatch.NewVariant(noopAction, dispatch.NewPositional("s", types.String))

	call := dispatch.Call{
		Callee: "pick",
		Args:   []dispatch.Argument{token("5")},
	}

	resolved, err := res.Resolve(context.Background(), call, []*dispatch.Variant{viaParser, direct}, dispatch.NewStandardContext(newHierarchy()))
	r.NoError(err)
	r.Same(direct, resolved.Variant)
}

func TestResolve_TieIsReported(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)

	v1 := dispatch.NewVariant(noopAction, dispatch.NewPositional("a", types.String))
	v2 := dispatch.NewVariant(noopAction, dispatch.NewPositional("b", types.String))

	call := dispatch.Call{
		Callee: "dup",
		Args:   []dispatch.Argument{token("x")},
	}

	_, err := res.Resolve(context.Background(), call, []*dispatch.Variant{v1, v2}, dispatch.NewStandardContext(newHierarchy()))

	var ambiguous *dispatch.AmbiguousVariantsError
	r.ErrorAs(err, &ambiguous)
	r.Len(ambiguous.Variants, 2)
	r.Contains(ambiguous.Variants, v1)
	r.Contains(ambiguous.Variants, v2)
}

func TestResolve_VarargWeakestLink(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)

	sum := dispatch.NewVariant(noopAction, dispatch.NewVararg("ns", types.Int))

	// One argument with no path to int disqualifies the whole variant.
	call := dispatch.Call{
		Callee: "sum",
		Args: []dispatch.Argument{
			dispatch.Typed(types.Int, 1),
			token("2"),
			dispatch.Typed(types.New("group"), "staff"),
		},
	}

	_, err := res.Resolve(context.Background(), call, []*dispatch.Variant{sum}, dispatch.NewStandardContext(newHierarchy()))

	var noMatch *dispatch.NoMatchingVariantError
	r.ErrorAs(err, &noMatch)
	r.Equal(1, noMatch.Candidates)
}

func TestResolve_VarargCollapsesToSlice(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)

	sum := dispatch.NewVariant(noopAction, dispatch.NewVararg("ns", types.Int))

	call := dispatch.Call{
		Callee: "sum",
		Args:   []dispatch.Argument{dispatch.Typed(types.Int, 1), token("2"), token("3")},
	}

	resolved, err := res.Resolve(context.Background(), call, []*dispatch.Variant{sum}, dispatch.NewStandardContext(newHierarchy()))
	r.NoError(err)
	r.Equal([]any{[]any{1, 2, 3}}, resolved.Args)
}

func TestResolve_VarargAbsorbsZeroArguments(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)

	sum := dispatch.NewVariant(noopAction, dispatch.NewVararg("ns", types.Int))

	resolved, err := res.Resolve(context.Background(), dispatch.Call{Callee: "sum"}, []*dispatch.Variant{sum}, nil)
	r.NoError(err)
	r.Equal([]any{[]any{}}, resolved.Args)
}

func TestResolve_OptionalSkippedNeutrally(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)

	greet := dispatch.NewVariant(noopAction, dispatch.NewPositional("name", types.String).AsOptional())

	resolved, err := res.Resolve(context.Background(), dispatch.Call{Callee: "greet"}, []*dispatch.Variant{greet}, nil)
	r.NoError(err)
	r.Equal([]any{nil}, resolved.Args)
}

func TestResolve_LeftoverArgumentsDisqualify(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)

	one := dispatch.NewVariant(noopAction, dispatch.NewPositional("s", types.String))

	call := dispatch.Call{
		Callee: "one",
		Args:   []dispatch.Argument{token("a"), token("b")},
	}

	_, err := res.Resolve(context.Background(), call, []*dispatch.Variant{one}, nil)

	var noMatch *dispatch.NoMatchingVariantError
	r.ErrorAs(err, &noMatch)
}

func TestResolve_MissingRequiredDisqualifies(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)

	one := dispatch.NewVariant(noopAction, dispatch.NewPositional("s", types.String))

	_, err := res.Resolve(context.Background(), dispatch.Call{Callee: "one"}, []*dispatch.Variant{one}, nil)

	var noMatch *dispatch.NoMatchingVariantError
	r.ErrorAs(err, &noMatch)
}

func TestResolve_ReceiverRejected(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)

	ban := dispatch.NewVariant(noopAction, dispatch.NewPositional("who", types.String)).
		WithReceiver(dispatch.NewReceiver(types.New("admin")))

	call := dispatch.Call{
		Caller: dispatch.Caller{Name: "bob", Type: types.New("user"), Value: "bob"},
		Callee: "ban",
		Args:   []dispatch.Argument{token("alice")},
	}

	_, err := res.Resolve(context.Background(), call, []*dispatch.Variant{ban}, nil)

	var rejected *dispatch.ReceiverRejectedError
	r.ErrorAs(err, &rejected)
	r.Equal("ban", rejected.Callee)
}

func TestResolve_ReceiverAccepted(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)

	ban := dispatch.NewVariant(noopAction, dispatch.NewPositional("who", types.String)).
		WithReceiver(dispatch.NewReceiver(types.New("admin")))

	call := dispatch.Call{
		Caller: dispatch.Caller{Name: "root", Type: types.New("admin"), Value: "root"},
		Callee: "ban",
		Args:   []dispatch.Argument{token("alice")},
	}

	resolved, err := res.Resolve(context.Background(), call, []*dispatch.Variant{ban}, nil)
	r.NoError(err)
	r.Equal("root", resolved.Receiver)
}

func TestResolve_ReceiverFoldedIntoNoMatch(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)

	// One variant fails on the receiver, another on arity; the failure is
	// not receiver-only, so it reports as no matching variant.
	ban := dispatch.NewVariant(noopAction, dispatch.NewPositional("who", types.String)).
		WithReceiver(dispatch.NewReceiver(types.New("admin")))
	twoArgs := dispatch.NewVariant(noopAction,
		dispatch.NewPositional("a", types.String),
		dispatch.NewPositional("b", types.String),
	)

	call := dispatch.Call{
		Caller: dispatch.Caller{Name: "bob", Type: types.New("user"), Value: "bob"},
		Callee: "ban",
		Args:   []dispatch.Argument{token("alice")},
	}

	_, err := res.Resolve(context.Background(), call, []*dispatch.Variant{ban, twoArgs}, nil)

	var noMatch *dispatch.NoMatchingVariantError
	r.ErrorAs(err, &noMatch)
	r.Equal(2, noMatch.Candidates)
}

func TestResolve_ParserErrorWrapsCause(t *testing.T) {
	res := newResolver(t)
	r := require.New(t)

	cause := fmt.Errorf("directory unavailable")
	h := newHierarchy()
	argctx := dispatch.NewArgumentContext(h, dispatch.NewParser(types.New("user"), func(context.Context, string) (any, error) {
		return nil, cause
	}))

	find := dispatch.NewVariant(noopAction, dispatch.NewPositional("who", types.New("user")))

	call := dispatch.Call{
		Callee: "find",
		Args:   []dispatch.Argument{token("alice")},
	}

	_, err := res.Resolve(context.Background(), call, []*dispatch.Variant{find}, argctx)
	r.ErrorIs(err, cause)
}
