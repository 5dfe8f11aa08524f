package methods

import (
	"fmt"
	"strings"
	"unicode"
)

// StripViewPrologue removes the "CREATE VIEW ... AS" prologue some engines
// store in their catalog, returning only the SELECT body. The AS keyword must
// appear unquoted at top nesting level with whitespace on both sides; string
// literals, quoted identifiers and parenthesized column lists are skipped.
// When no boundary can be located the input is malformed and the error is
// fatal, because stripping at the wrong place would silently corrupt the
// definition.
func StripViewPrologue(definition string) (string, error) {
	trimmed := strings.TrimSpace(definition)
	if trimmed == "" {
		return "", ErrDefinitionRequired
	}

	// Definitions already stored as a bare body pass through unchanged.
	if !strings.HasPrefix(strings.ToUpper(trimmed), "CREATE") {
		return trimmed, nil
	}

	runes := []rune(trimmed)
	depth := 0

	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '\'', '"', '`':
			i = skipQuoted(runes, i, r)
		case '[':
			i = skipQuoted(runes, i, ']')
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case 'a', 'A':
			if depth != 0 {
				continue
			}
			if i+1 >= len(runes) || (runes[i+1] != 's' && runes[i+1] != 'S') {
				continue
			}
			beforeOK := i > 0 && unicode.IsSpace(runes[i-1])
			afterOK := i+2 < len(runes) && unicode.IsSpace(runes[i+2])
			if beforeOK && afterOK {
				body := strings.TrimSpace(string(runes[i+2:]))
				if body == "" {
					return "", fmt.Errorf("%w: empty body after AS", ErrMalformedViewDefinition)
				}
				return body, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %.80q", ErrMalformedViewDefinition, definition)
}

// skipQuoted advances past a quoted run starting at index i, where close is
// the closing rune. Doubled closing runes escape themselves.
func skipQuoted(runes []rune, i int, close rune) int {
	for i++; i < len(runes); i++ {
		if runes[i] != close {
			continue
		}
		if i+1 < len(runes) && runes[i+1] == close {
			i++
			continue
		}
		return i
	}
	return i
}
