// Package dispatch resolves an unresolved, tokenized command call against a
// set of overloaded signature variants, selecting the best match and
// performing any argument conversions the match requires.
package dispatch

import (
	"fmt"

	"github.com/cmdcast/dispatch/pkg/types"
)

// TypedValue is a value paired with its descriptor.
type TypedValue struct {
	Type  types.Descriptor
	Value any
}

func (v TypedValue) String() string {
	return fmt.Sprintf("%v: %s", v.Value, v.Type)
}

// Argument is one supplied value argument: a carried typed value, a raw
// token, or both, plus any already-typed alternates the producer offers.
// Arguments are immutable once built.
type Argument struct {
	value   *TypedValue
	raw     string
	hasRaw  bool
	offered []TypedValue
}

// Raw builds an argument holding only an untyped token.
func Raw(token string) Argument {
	return Argument{raw: token, hasRaw: true}
}

// Typed builds an argument carrying an already-typed value.
func Typed(typ types.Descriptor, value any) Argument {
	return Argument{value: &TypedValue{Type: typ, Value: value}}
}

// WithRaw returns a copy of a that also carries the raw token it was
// produced from.
func (a Argument) WithRaw(token string) Argument {
	a.raw = token
	a.hasRaw = true
	return a
}

// WithOffered returns a copy of a carrying additional already-typed
// alternates, checked in order before any textual conversion.
func (a Argument) WithOffered(alternates ...TypedValue) Argument {
	offered := make([]TypedValue, 0, len(a.offered)+len(alternates))
	offered = append(offered, a.offered...)
	offered = append(offered, alternates...)
	a.offered = offered
	return a
}

func (a Argument) Value() (TypedValue, bool) {
	if a.value == nil {
		return TypedValue{}, false
	}

	return *a.value, true
}

func (a Argument) Raw() (string, bool) {
	return a.raw, a.hasRaw
}

func (a Argument) Offered() []TypedValue {
	return a.offered
}

func (a Argument) String() string {
	if a.value != nil {
		return a.value.String()
	}

	if a.hasRaw {
		return fmt.Sprintf("%q", a.raw)
	}

	return "<empty>"
}
