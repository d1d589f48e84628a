package dispatch

import (
	"context"
	"fmt"
	"strings"
)

// Action is the invocable a variant is bound to. It may suspend; it must
// honor ctx cancellation.
type Action func(ctx context.Context, call *ResolvedCall) (any, error)

// Variant is one overload of a command: an optional receiver constraint plus
// an ordered parameter list, bound to an action. Immutable once registered.
type Variant struct {
	recv    *Receiver
	params  []Parameter
	action  Action
	summary string
}

func NewVariant(action Action, params ...Parameter) *Variant {
	return &Variant{params: params, action: action}
}

func (v *Variant) WithReceiver(r Receiver) *Variant {
	v.recv = &r
	return v
}

func (v *Variant) WithSummary(summary string) *Variant {
	v.summary = summary
	return v
}

func (v *Variant) Receiver() (Receiver, bool) {
	if v.recv == nil {
		return Receiver{}, false
	}

	return *v.recv, true
}

func (v *Variant) Params() []Parameter {
	return v.params
}

func (v *Variant) Action() Action {
	return v.action
}

func (v *Variant) Summary() string {
	return v.summary
}

func (v *Variant) String() string {
	parts := make([]string, 0, len(v.params))
	for _, param := range v.params {
		parts = append(parts, param.String())
	}

	sig := fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	if v.recv != nil {
		return fmt.Sprintf("%s %s", v.recv, sig)
	}

	return sig
}
