package luatable

import "strings"

// scanner walks Lua-style table text. It only understands the lexical
// shapes needed to stay in sync with brace depth: strings, long brackets,
// comments and braces.
type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekAt(offset int) byte {
	i := s.pos + offset
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

// skipTrivia consumes whitespace and comments.
func (s *scanner) skipTrivia() {
	for !s.eof() {
		c := s.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			s.pos++
		case c == '-' && s.peekAt(1) == '-':
			s.skipComment()
		default:
			return
		}
	}
}

// skipComment consumes a "--" comment, either a line comment or a
// long-bracket block comment.
func (s *scanner) skipComment() {
	s.pos += 2
	if level := s.longBracketLevel(); level >= 0 {
		s.skipLongBracket(level)
		return
	}
	if i := strings.IndexByte(s.src[s.pos:], '\n'); i >= 0 {
		s.pos += i + 1
		return
	}
	s.pos = len(s.src)
}

// longBracketLevel reports the level of a long bracket opening at pos
// ("[[" is level 0, "[==[" is level 2) or -1 when there is none.
func (s *scanner) longBracketLevel() int {
	if s.peek() != '[' {
		return -1
	}
	i := s.pos + 1
	for i < len(s.src) && s.src[i] == '=' {
		i++
	}
	if i < len(s.src) && s.src[i] == '[' {
		return i - s.pos - 1
	}
	return -1
}

// skipLongBracket consumes a long bracket of the given level and returns
// its content. An unterminated bracket runs to the end of the input.
func (s *scanner) skipLongBracket(level int) string {
	s.pos += level + 2
	closer := "]" + strings.Repeat("=", level) + "]"
	i := strings.Index(s.src[s.pos:], closer)
	if i < 0 {
		content := s.src[s.pos:]
		s.pos = len(s.src)
		return content
	}
	content := s.src[s.pos : s.pos+i]
	s.pos += i + len(closer)
	return content
}

// readQuoted consumes a quoted string starting at pos and returns its raw,
// still escaped, content.
func (s *scanner) readQuoted() string {
	quote := s.peek()
	s.pos++
	start := s.pos
	for !s.eof() {
		c := s.src[s.pos]
		switch c {
		case '\\':
			s.pos += 2
		case quote:
			raw := s.src[start:s.pos]
			s.pos++
			return raw
		case '\n':
			// Unfinished string; stop at the line end so the rest stays parseable.
			return s.src[start:s.pos]
		default:
			s.pos++
		}
	}
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
	return s.src[start:s.pos]
}

// skipToken advances over one lexical unit that cannot change brace depth.
func (s *scanner) skipToken() {
	c := s.peek()
	switch {
	case c == '"' || c == '\'':
		s.readQuoted()
	case c == '-' && s.peekAt(1) == '-':
		s.skipComment()
	case c == '[' && s.longBracketLevel() >= 0:
		s.skipLongBracket(s.longBracketLevel())
	default:
		s.pos++
	}
}

// matchBrace returns the index of the brace closing the one at open, or -1
// when the block is never closed.
func matchBrace(src string, open int) int {
	s := &scanner{src: src, pos: open + 1}
	depth := 1
	for !s.eof() {
		switch s.peek() {
		case '{':
			depth++
			s.pos++
		case '}':
			depth--
			if depth == 0 {
				return s.pos
			}
			s.pos++
		default:
			s.skipToken()
		}
	}
	return -1
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (s *scanner) readIdent() string {
	start := s.pos
	for !s.eof() && isIdentPart(s.peek()) {
		s.pos++
	}
	return s.src[start:s.pos]
}
