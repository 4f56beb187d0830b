package luatable

import (
	"errors"
	"strings"
)

// ErrRootNotFound is returned when the requested root key is not assigned
// anywhere in the input.
var ErrRootNotFound = errors.New("luatable: root key not found")

// Locate finds the first `key = {` (or `["key"] = {`) assignment in text and
// returns the inner text of that table, without the outer braces.
// A table that is never closed yields everything up to the end of the input.
func Locate(text, key string) (string, error) {
	at, ok := findAssignment(text, key, func(s *scanner) bool {
		return s.peek() == '{'
	})
	if !ok {
		return "", ErrRootNotFound
	}
	end := matchBrace(text, at)
	if end < 0 {
		return text[at+1:], nil
	}
	return text[at+1 : end], nil
}

// LocateString finds the first `key = "..."` or `key = [[...]]` assignment
// and returns the string value. Quoted values are unescaped, long bracket
// values are returned verbatim.
func LocateString(text, key string) (string, error) {
	at, ok := findAssignment(text, key, func(s *scanner) bool {
		c := s.peek()
		return c == '"' || c == '\'' || s.longBracketLevel() >= 0
	})
	if !ok {
		return "", ErrRootNotFound
	}

	s := &scanner{src: text, pos: at}
	if level := s.longBracketLevel(); level >= 0 {
		content := s.skipLongBracket(level)
		// A newline directly after the opening bracket is not part of the string.
		content = strings.TrimPrefix(content, "\r")
		return strings.TrimPrefix(content, "\n"), nil
	}
	return Unescape(s.readQuoted()), nil
}

// Decode locates the root table assigned to key and parses it.
func Decode(text, key string) (*Table, error) {
	inner, err := Locate(text, key)
	if err != nil {
		return nil, err
	}
	return Parse(inner), nil
}

// Records returns one flat map per sibling table directly under the root
// table assigned to key, in source order. Nested tables inside a record are
// dropped; primitive values are kept.
func Records(text, key string) ([]map[string]any, error) {
	root, err := Decode(text, key)
	if err != nil {
		return nil, err
	}
	children := root.Children()
	records := make([]map[string]any, 0, len(children))
	for _, child := range children {
		records = append(records, child.Map())
	}
	return records, nil
}

// Unescape resolves the backslash escapes used in quoted strings.
// Unknown escapes are kept as written.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n', '\n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// findAssignment returns the offset of the value assigned to key, for the
// first assignment whose value satisfies accept.
func findAssignment(text, key string, accept func(*scanner) bool) (int, bool) {
	s := &scanner{src: text}
	for !s.eof() {
		c := s.peek()
		switch {
		case c == '"' || c == '\'':
			s.readQuoted()
		case c == '-' && s.peekAt(1) == '-':
			s.skipComment()
		case c == '[':
			if level := s.longBracketLevel(); level >= 0 {
				s.skipLongBracket(level)
				continue
			}
			s.pos++
			s.skipTrivia()
			if q := s.peek(); q != '"' && q != '\'' {
				continue
			}
			name := Unescape(s.readQuoted())
			s.skipTrivia()
			if s.peek() != ']' {
				continue
			}
			s.pos++
			if name != key {
				continue
			}
			if at, ok := s.assignedValue(accept); ok {
				return at, true
			}
		case isIdentPart(c):
			if s.readIdent() != key {
				continue
			}
			if at, ok := s.assignedValue(accept); ok {
				return at, true
			}
		default:
			s.pos++
		}
	}
	return 0, false
}

// assignedValue checks for `= value` at pos. The position is left unchanged
// when there is no acceptable value.
func (s *scanner) assignedValue(accept func(*scanner) bool) (int, bool) {
	start := s.pos
	s.skipTrivia()
	if s.peek() == '=' && s.peekAt(1) != '=' {
		s.pos++
		s.skipTrivia()
		if !s.eof() && accept(s) {
			return s.pos, true
		}
	}
	s.pos = start
	return 0, false
}
