package gen

import (
	"strconv"
	"strings"

	"github.com/reoring/zodforge/internal/ir"
)

// quote produces a single-quoted source string. Only the characters that
// would break the literal are escaped.
func quote(s string) string {
	b := &strings.Builder{}
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// regexLiteral wraps a raw pattern in slash delimiters. Unescaped slashes in
// the pattern would terminate the literal early, so they gain a backslash.
func regexLiteral(pattern string) string {
	b := &strings.Builder{}
	b.WriteByte('/')
	escaped := false
	for _, r := range pattern {
		if r == '/' && !escaped {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
		escaped = r == '\\' && !escaped
	}
	b.WriteByte('/')
	return b.String()
}

// objectKey renders a field name, quoting it when it is not a plain
// identifier.
func objectKey(name string) string {
	if isIdentifier(name) {
		return name
	}
	return quote(name)
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// formatNumber renders a float the shortest way that round-trips.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// literalArg renders a default/catch payload. Strings quote, numbers and
// booleans go bare, bigints carry the n suffix.
func literalArg(l *ir.Literal) string {
	switch l.Kind {
	case ir.LitNumber:
		return formatNumber(l.Num)
	case ir.LitBool:
		return strconv.FormatBool(l.Bool)
	case ir.LitBigInt:
		return l.Big.String() + "n"
	default:
		return quote(l.Str)
	}
}
