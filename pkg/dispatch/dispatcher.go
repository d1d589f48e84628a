package dispatch

import (
	"context"
	"log/slog"
)

// Dispatcher bundles a registry, a resolver, and an argument context into a
// single entry point: resolve the call, then invoke the selected action.
type Dispatcher struct {
	logger   *slog.Logger
	resolver *Resolver
	registry *Registry
	argctx   *ArgumentContext
}

func NewDispatcher(logger *slog.Logger, h Subtyping, registry *Registry, argctx *ArgumentContext) *Dispatcher {
	return &Dispatcher{
		logger:   logger,
		resolver: NewResolver(logger, h),
		registry: registry,
		argctx:   argctx,
	}
}

// Commands returns the registered command names for completion and help.
func (d *Dispatcher) Commands() []string {
	return d.registry.Names()
}

// Resolve resolves without invoking, for dry-run checks.
func (d *Dispatcher) Resolve(ctx context.Context, caller Caller, callee string, args []Argument) (*ResolvedCall, error) {
	variants := d.registry.Lookup(callee)
	if variants == nil {
		return nil, &UnknownCommandError{Name: callee}
	}

	call := Call{Caller: caller, Callee: callee, Args: args}

	return d.resolver.Resolve(ctx, call, variants, d.argctx)
}

// Dispatch resolves the call and runs the bound action. A resolution failure
// surfaces before any action is invoked; an action failure propagates
// unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, caller Caller, callee string, args []Argument) (any, error) {
	resolved, err := d.Resolve(ctx, caller, callee, args)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("dispatching", "id", resolved.ID, "callee", callee, "caller", caller.Name)

	return resolved.Invoke(ctx)
}
