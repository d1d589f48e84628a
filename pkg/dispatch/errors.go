package dispatch

import (
	"fmt"
	"strings"

	"github.com/cmdcast/dispatch/pkg/types"
)

// UnknownCommandError reports a callee name with no registered variants.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// NoMatchingVariantError reports that every candidate variant was
// disqualified.
type NoMatchingVariantError struct {
	Callee     string
	Candidates int
}

func (e *NoMatchingVariantError) Error() string {
	return fmt.Sprintf("no matching variant for %q (%d candidates)", e.Callee, e.Candidates)
}

// AmbiguousVariantsError reports two or more variants tied at the top
// acceptance score. Ties are never broken silently.
type AmbiguousVariantsError struct {
	Callee   string
	Variants []*Variant
}

func (e *AmbiguousVariantsError) Error() string {
	sigs := make([]string, 0, len(e.Variants))
	for _, v := range e.Variants {
		sigs = append(sigs, v.String())
	}

	return fmt.Sprintf("ambiguous call to %q: %s", e.Callee, strings.Join(sigs, " | "))
}

// ReceiverRejectedError reports that the caller failed the receiver check of
// every variant.
type ReceiverRejectedError struct {
	Callee string
	Caller types.Descriptor
}

func (e *ReceiverRejectedError) Error() string {
	return fmt.Sprintf("caller of type %s may not invoke %q", e.Caller, e.Callee)
}

// ConversionError reports that a selected conversion step failed at
// actual-conversion time, after scoring had already ranked it acceptable.
type ConversionError struct {
	Callee    string
	Parameter Parameter
	Token     string
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to convert %q for parameter %s of %q: %v", e.Token, e.Parameter, e.Callee, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
