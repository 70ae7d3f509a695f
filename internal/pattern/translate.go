package pattern

import (
	"strings"

	"github.com/coreyang/yangcore/diag"
)

// translate rewrites an XML-Schema dialect pattern into Go regexp syntax,
// in the three passes described for the pattern adapter: escape the
// characters XML-Schema treats as literals but RE2 treats as anchors,
// expand \p{IsBlock} occurrences, then anchor the whole expression.
func translate(xsd, path string) (string, error) {
	escaped := escapeDollarCaret(xsd)
	expanded, err := expandBlocks(escaped, path)
	if err != nil {
		return "", err
	}
	return anchor(expanded), nil
}

// escapeDollarCaret prefixes every raw '$' and '^' with a backslash unless
// already escaped or '^' is a character-class negation marker.
func escapeDollarCaret(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	inClass := false
	classStart := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
			continue
		case c == '[' && !inClass:
			inClass = true
			classStart = i
			b.WriteByte(c)
			continue
		case c == ']' && inClass:
			inClass = false
			b.WriteByte(c)
			continue
		case c == '^' && inClass && i == classStart+1:
			// negation marker, not a literal caret.
			b.WriteByte(c)
			continue
		case c == '$' || c == '^':
			b.WriteByte('\\')
			b.WriteByte(c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// anchor wraps expr so it must match the entire input, unless it already
// ends in ".*" (already unanchored on the right by construction).
func anchor(expr string) string {
	if strings.HasSuffix(expr, ".*") {
		return "^(?:" + expr + ")"
	}
	return "^(?:" + expr + ")$"
}

// expandBlocks replaces every \p{IsBlock} (or \P{IsBlock}) occurrence with
// the bracket expression for that Unicode block, splicing into an
// enclosing character class when one is already open.
func expandBlocks(s, path string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\\' && i+2 < len(s) && (s[i+1] == 'p' || s[i+1] == 'P') && s[i+2] == '{' {
			negate := s[i+1] == 'P'
			end := strings.IndexByte(s[i+3:], '}')
			if end < 0 {
				return "", diag.New(diag.KindSyntax, "pattern-block", path, "unterminated \\p{...} in pattern %q", s)
			}
			name := s[i+3 : i+3+end]
			class, err := blockClass(name, path, s)
			if err != nil {
				return "", err
			}
			inClass := withinUnescapedClass(b.String())
			body := class[1 : len(class)-1]
			switch {
			case inClass && !negate:
				b.WriteString(body)
			case !inClass && negate:
				b.WriteString("[^" + body + "]")
			case inClass && negate:
				return "", diag.New(diag.KindSyntax, "pattern-block", path,
					"negated block \\P{%s} cannot appear inside a character class in pattern %q", name, s)
			default:
				b.WriteString(class)
			}
			i += 3 + end + 1
			continue
		}
		if s[i] == '\\' && i+1 < len(s) {
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			i += 2
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String(), nil
}

// withinUnescapedClass reports whether the text built so far has an open,
// unescaped '[' with no matching ']'.
func withinUnescapedClass(built string) bool {
	depth := 0
	for i := 0; i < len(built); i++ {
		if built[i] == '\\' {
			i++
			continue
		}
		switch built[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth > 0
}
