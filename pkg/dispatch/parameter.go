package dispatch

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cmdcast/dispatch/pkg/types"
)

// Parameter is one declared value parameter of a signature variant. The set
// of implementations is closed: Positional and Constant.
type Parameter interface {
	Name() string
	Type() types.Descriptor
	Optional() bool
	Vararg() bool
	String() string

	parameter()
}

// Positional is an ordinary typed parameter. A vararg positional declares an
// array-of-T type and matches supplied arguments against the element type.
type Positional struct {
	name     string
	typ      types.Descriptor
	optional bool
	vararg   bool
}

func NewPositional(name string, typ types.Descriptor) Positional {
	return Positional{name: name, typ: typ}
}

func NewVararg(name string, elem types.Descriptor) Positional {
	return Positional{name: name, typ: types.ArrayOf(elem), vararg: true}
}

// AsOptional marks the parameter as skippable when no argument remains.
// Vararg parameters already absorb zero arguments and stay as declared.
func (p Positional) AsOptional() Positional {
	if p.vararg {
		return p
	}

	p.optional = true
	return p
}

func (p Positional) Name() string           { return p.name }
func (p Positional) Type() types.Descriptor { return p.typ }
func (p Positional) Optional() bool         { return p.optional }
func (p Positional) Vararg() bool           { return p.vararg }

func (p Positional) String() string {
	name := p.name
	if name == "" {
		name = "_"
	}

	if p.vararg {
		elem, _ := p.typ.Elem()
		return fmt.Sprintf("%s ...%s", name, elem)
	}

	if p.optional {
		return fmt.Sprintf("[%s %s]", name, p.typ)
	}

	return fmt.Sprintf("%s %s", name, p.typ)
}

func (Positional) parameter() {}

// Constant matches exactly one argument whose raw token equals the expected
// literal verbatim. Constants are never optional or vararg.
type Constant struct {
	name      string
	expecting string
}

func NewConstant(name, expecting string) (Constant, error) {
	if strings.TrimSpace(expecting) == "" {
		return Constant{}, fmt.Errorf("constant parameter literal must not be blank")
	}

	if strings.IndexFunc(expecting, unicode.IsSpace) != -1 {
		return Constant{}, fmt.Errorf("constant parameter literal %q must not contain whitespace", expecting)
	}

	return Constant{name: name, expecting: expecting}, nil
}

func MustConstant(name, expecting string) Constant {
	c, err := NewConstant(name, expecting)
	if err != nil {
		panic(err)
	}

	return c
}

func (c Constant) Name() string           { return c.name }
func (c Constant) Type() types.Descriptor { return types.String }
func (Constant) Optional() bool           { return false }
func (Constant) Vararg() bool             { return false }
func (c Constant) Expecting() string      { return c.expecting }

func (c Constant) String() string {
	return fmt.Sprintf("%q", c.expecting)
}

func (Constant) parameter() {}

// ReceiverName is the synthetic name of every receiver parameter.
const ReceiverName = "<caller>"

// Receiver constrains the caller identity of a variant.
type Receiver struct {
	typ      types.Descriptor
	optional bool
}

func NewReceiver(typ types.Descriptor) Receiver {
	return Receiver{typ: typ}
}

func (r Receiver) AsOptional() Receiver {
	r.optional = true
	return r
}

func (r Receiver) Name() string           { return ReceiverName }
func (r Receiver) Type() types.Descriptor { return r.typ }
func (r Receiver) Optional() bool         { return r.optional }

func (r Receiver) String() string {
	if r.optional {
		return fmt.Sprintf("[%s %s]", ReceiverName, r.typ)
	}

	return fmt.Sprintf("%s %s", ReceiverName, r.typ)
}
