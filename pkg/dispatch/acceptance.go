package dispatch

import (
	"fmt"

	"github.com/cmdcast/dispatch/pkg/types"
)

// Subtyping is the host-supplied subtype-or-equal relation the whole engine
// depends on. types.Hierarchy implements it.
type Subtyping interface {
	IsSubtypeOrEqual(a, b types.Descriptor) bool
}

// Acceptance levels, higher is better. An acceptance is acceptable iff its
// level is positive.
const (
	LevelDirect     = 30
	LevelOffered    = 20
	LevelParser     = 10
	LevelAmbiguous  = 0
	LevelImpossible = -1
)

// Acceptance is the outcome of matching one argument against one parameter.
// The set of implementations is closed; the resolver switches over it
// exhaustively.
type Acceptance interface {
	Level() int
	String() string

	acceptance()
}

// Direct means the argument's native type already satisfies the parameter.
type Direct struct{}

func (Direct) Level() int     { return LevelDirect }
func (Direct) String() string { return "direct" }
func (Direct) acceptance()    {}

// ViaOffered means one of the argument's already-typed alternates satisfies
// the parameter.
type ViaOffered struct {
	Value TypedValue
}

func (ViaOffered) Level() int       { return LevelOffered }
func (a ViaOffered) String() string { return fmt.Sprintf("via offered %s", a.Value.Type) }
func (ViaOffered) acceptance()      {}

// ViaParser means the argument's raw token can be converted by a contextual
// parser from the argument context.
type ViaParser struct {
	Parser Parser
}

func (ViaParser) Level() int       { return LevelParser }
func (a ViaParser) String() string { return fmt.Sprintf("via parser for %s", a.Parser.Target()) }
func (ViaParser) acceptance()      {}

// Ambiguous is reserved for a future multi-candidate-conversion scenario.
// The matching algorithm never constructs it.
type Ambiguous struct {
	Candidates []Acceptance
}

func (Ambiguous) Level() int     { return LevelAmbiguous }
func (Ambiguous) String() string { return "ambiguous" }
func (Ambiguous) acceptance()    {}

// Impossible means no path from the argument to the parameter type exists.
type Impossible struct{}

func (Impossible) Level() int     { return LevelImpossible }
func (Impossible) String() string { return "impossible" }
func (Impossible) acceptance()    {}

func Acceptable(a Acceptance) bool {
	return a.Level() > 0
}

// Accept scores how well one supplied argument matches one declared
// parameter. Constants match their literal verbatim or not at all. For
// positionals the native type is checked first, then each offered alternate
// in order (first match wins), then the argument context.
func Accept(h Subtyping, param Parameter, arg Argument, argctx *ArgumentContext) Acceptance {
	switch param := param.(type) {
	case Constant:
		if raw, ok := arg.Raw(); ok && raw == param.Expecting() {
			return Direct{}
		}

		return Impossible{}
	case Positional:
		expected := param.Type()
		if param.Vararg() {
			expected, _ = expected.Elem()
		}

		if v, ok := arg.Value(); ok && h.IsSubtypeOrEqual(v.Type, expected) {
			return Direct{}
		}

		for _, alt := range arg.Offered() {
			if h.IsSubtypeOrEqual(alt.Type, expected) {
				return ViaOffered{Value: alt}
			}
		}

		if _, ok := arg.Raw(); ok {
			if parser, ok := argctx.Lookup(expected); ok {
				return ViaParser{Parser: parser}
			}
		}

		return Impossible{}
	default:
		panic(fmt.Sprintf("bug: unhandled parameter kind: %T", param))
	}
}
