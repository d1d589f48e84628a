package console

import (
	"fmt"
	"unicode"
)

// Split tokenizes one input line into callee and argument tokens. Single and
// double quotes group words; backslash escapes the next rune inside double
// quotes. The engine itself never re-tokenizes; this is the call-reader side
// of the contract.
func Split(line string) ([]string, error) {
	var tokens []string
	var current []rune

	var quote rune
	escaped := false
	inToken := false

	flush := func() {
		if inToken {
			tokens = append(tokens, string(current))
			current = current[:0]
			inToken = false
		}
	}

	for _, r := range line {
		switch {
		case escaped:
			current = append(current, r)
			escaped = false
		case quote == '"' && r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current = append(current, r)
			}
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			flush()
		default:
			current = append(current, r)
			inToken = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("trailing escape character")
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}

	flush()

	return tokens, nil
}
