package clipspec

import (
	"errors"
	"strings"
)

// toJSON rewrites a list literal that may use single-quoted strings into
// JSON. Only quoting is translated; structure is left to the JSON decoder.
func toJSON(literal string) (string, error) {
	var b strings.Builder
	b.Grow(len(literal) + 8)
	var quote rune
	escaped := false
	for _, r := range literal {
		if quote == 0 {
			switch r {
			case '\'', '"':
				quote = r
				b.WriteRune('"')
			default:
				b.WriteRune(r)
			}
			continue
		}
		if escaped {
			escaped = false
			if r == '\'' {
				b.WriteRune('\'')
			} else {
				b.WriteRune('\\')
				b.WriteRune(r)
			}
			continue
		}
		switch {
		case r == '\\':
			escaped = true
		case r == quote:
			quote = 0
			b.WriteRune('"')
		case r == '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	if quote != 0 || escaped {
		return "", errors.New("unterminated string")
	}
	return b.String(), nil
}
