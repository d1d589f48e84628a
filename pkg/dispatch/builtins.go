package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cmdcast/dispatch/pkg/types"
)

// Stock contextual parsers for the primitive targets. Hosts layer their own
// domain parsers over these with With or Plus.

func StringParser() Parser {
	return NewParser(types.String, func(_ context.Context, raw string) (any, error) {
		return raw, nil
	})
}

func IntParser() Parser {
	return NewParser(types.Int, func(_ context.Context, raw string) (any, error) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", raw)
		}

		return n, nil
	})
}

func FloatParser() Parser {
	return NewParser(types.Float, func(_ context.Context, raw string) (any, error) {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", raw)
		}

		return f, nil
	})
}

func BoolParser() Parser {
	return NewParser(types.Bool, func(_ context.Context, raw string) (any, error) {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("not a boolean: %q", raw)
		}

		return b, nil
	})
}

func DurationParser() Parser {
	return NewParser(types.Duration, func(_ context.Context, raw string) (any, error) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("not a duration: %q", raw)
		}

		return d, nil
	})
}

// NewStandardContext assembles the default argument context over the stock
// parsers.
func NewStandardContext(h Subtyping) *ArgumentContext {
	return NewArgumentContext(h,
		StringParser(),
		BoolParser(),
		FloatParser(),
		IntParser(),
		DurationParser(),
	)
}
