package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmdcast/dispatch/pkg/dispatch"
	"github.com/cmdcast/dispatch/pkg/types"
)

// The demo world: an in-memory account directory over an entity/user/admin
// hierarchy, and a command set exercising constants, optionals, varargs,
// receiver constraints, and contextual parsing.

type account struct {
	Name string
	Role string
}

var directory = map[string]account{
	"root":  {Name: "root", Role: "admin"},
	"alice": {Name: "alice", Role: "user"},
	"bob":   {Name: "bob", Role: "user"},
}

var (
	entityType = types.New("entity")
	userType   = types.New("user")
	adminType  = types.New("admin")
)

func demoHierarchy() *types.Hierarchy {
	h := types.NewHierarchy()
	h.Declare("entity")
	h.Declare("user", "entity")
	h.Declare("admin", "user")
	return h
}

func callerFor(name string) (dispatch.Caller, error) {
	acct, ok := directory[name]
	if !ok {
		names := make([]string, 0, len(directory))
		for n := range directory {
			names = append(names, n)
		}
		sort.Strings(names)
		return dispatch.Caller{}, fmt.Errorf("unknown account %q (have: %s)", name, strings.Join(names, ", "))
	}

	typ := userType
	if acct.Role == "admin" {
		typ = adminType
	}

	return dispatch.Caller{Name: acct.Name, Type: typ, Value: acct}, nil
}

func accountParser() dispatch.Parser {
	return dispatch.NewParser(userType, func(_ context.Context, raw string) (any, error) {
		acct, ok := directory[raw]
		if !ok {
			return nil, fmt.Errorf("no such account: %q", raw)
		}

		return acct, nil
	})
}

func demoArgumentContext(h dispatch.Subtyping) *dispatch.ArgumentContext {
	return dispatch.NewStandardContext(h).With(accountParser())
}

func demoRegistry() *dispatch.Registry {
	reg := dispatch.NewRegistry()

	reg.Register("greet", dispatch.NewVariant(
		func(_ context.Context, call *dispatch.ResolvedCall) (any, error) {
			name, _ := call.Args[0].(string)
			if name == "" {
				name = "stranger"
			}
			return fmt.Sprintf("hello, %s", name), nil
		},
		dispatch.NewPositional("name", types.String).AsOptional(),
	).WithSummary("greet someone"))
	reg.Alias("hi", "greet")

	reg.Register("sum", dispatch.NewVariant(
		func(_ context.Context, call *dispatch.ResolvedCall) (any, error) {
			total := 0
			for _, v := range call.Args[0].([]any) {
				total += v.(int)
			}
			return total, nil
		},
		dispatch.NewVararg("ns", types.Int),
	).WithSummary("add integers"))

	reg.Register("wait", dispatch.NewVariant(
		func(ctx context.Context, call *dispatch.ResolvedCall) (any, error) {
			d := call.Args[0].(time.Duration)
			select {
			case <-time.After(d):
				return fmt.Sprintf("waited %s", d), nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
		dispatch.NewPositional("d", types.Duration),
	).WithSummary("wait for a duration, honoring cancellation"))

	// Overload set in the shape of the classic example: a constant-guarded
	// numeric form and a plain string form.
	tallies := map[string]int{}
	reg.Register("tally",
		dispatch.NewVariant(
			func(_ context.Context, call *dispatch.ResolvedCall) (any, error) {
				tallies["default"] += call.Args[1].(int)
				return tallies["default"], nil
			},
			dispatch.MustConstant("op", "add"),
			dispatch.NewPositional("n", types.Int),
		).WithSummary("add to the default tally"),
		dispatch.NewVariant(
			func(_ context.Context, call *dispatch.ResolvedCall) (any, error) {
				return tallies[call.Args[0].(string)], nil
			},
			dispatch.NewPositional("name", types.String),
		).WithSummary("show a tally"),
	)

	reg.Register("ban", dispatch.NewVariant(
		func(_ context.Context, call *dispatch.ResolvedCall) (any, error) {
			target := call.Args[0].(account)
			banner := call.Receiver.(account)
			return fmt.Sprintf("%s banned %s", banner.Name, target.Name), nil
		},
		dispatch.NewPositional("target", userType),
	).WithReceiver(dispatch.NewReceiver(adminType)).WithSummary("ban an account (admins only)"))

	reg.Register("whoami", dispatch.NewVariant(
		func(_ context.Context, call *dispatch.ResolvedCall) (any, error) {
			acct := call.Receiver.(account)
			return fmt.Sprintf("%s (%s)", acct.Name, acct.Role), nil
		},
	).WithReceiver(dispatch.NewReceiver(entityType)).WithSummary("show the current account"))

	return reg
}
