package dispatch

import (
	"context"

	"github.com/cmdcast/dispatch/pkg/types"
	"github.com/google/uuid"
)

// Caller identifies who is invoking a command. The type participates in
// receiver-parameter checks; the value becomes the resolved receiver.
type Caller struct {
	Name  string
	Type  types.Descriptor
	Value any
}

// Call is an unresolved invocation as produced by the call reader. The
// engine never re-tokenizes it.
type Call struct {
	Caller Caller
	Callee string
	Args   []Argument
}

// ResolvedCall is the output of resolution: the chosen variant, the receiver
// value when the variant declares one, and one concrete value per declared
// parameter. A vararg parameter's arguments collapse to a single []any; a
// skipped optional parameter yields nil. Never mutated after creation.
type ResolvedCall struct {
	ID       uuid.UUID
	Callee   string
	Variant  *Variant
	Receiver any
	Args     []any
}

// Invoke runs the bound action. Cancellation of ctx propagates directly
// into the action.
func (c *ResolvedCall) Invoke(ctx context.Context) (any, error) {
	return c.Variant.Action()(ctx, c)
}
