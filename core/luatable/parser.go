package luatable

import (
	"strconv"
	"strings"
)

// maxDepth bounds nesting; deeper blocks are skipped as a whole.
const maxDepth = 64

// Field is a primitive value assigned to a key.
type Field struct {
	Key   string
	Value any
}

// Table is the parsed form of one table literal.
//
// Primitive values are string, bool, int64 or float64. Nil values are
// treated as absent.
type Table struct {
	// Fields holds keyed primitive values in source order.
	Fields []Field
	// Values holds positional primitive values in source order.
	Values []any
	// Tables holds nested tables under a string key.
	Tables map[string]*Table
	// Items holds positional and numeric-keyed nested tables in source order.
	Items []*Table

	children []*Table
}

func newTable() *Table {
	return &Table{Tables: make(map[string]*Table)}
}

// Get returns the last primitive value assigned to key.
func (t *Table) Get(key string) (any, bool) {
	for i := len(t.Fields) - 1; i >= 0; i-- {
		if t.Fields[i].Key == key {
			return t.Fields[i].Value, true
		}
	}
	return nil, false
}

// Map flattens the keyed primitive values into a map.
func (t *Table) Map() map[string]any {
	m := make(map[string]any, len(t.Fields))
	for _, f := range t.Fields {
		m[f.Key] = f.Value
	}
	return m
}

// Children returns every nested table, keyed or positional, in source order.
func (t *Table) Children() []*Table {
	return t.children
}

func (t *Table) add(key string, keyed, numeric bool, value any) {
	if child, ok := value.(*Table); ok {
		t.children = append(t.children, child)
		if keyed && !numeric {
			t.Tables[key] = child
		} else {
			t.Items = append(t.Items, child)
		}
		return
	}
	if keyed {
		t.Fields = append(t.Fields, Field{Key: key, Value: value})
		return
	}
	t.Values = append(t.Values, value)
}

// Parse parses the inner text of a table literal. It never fails: shapes it
// does not understand are skipped one entry at a time.
func Parse(inner string) *Table {
	p := &parser{scanner: scanner{src: inner}}
	t := newTable()
	p.body(t, 0, false)
	return t
}

type parser struct {
	scanner
}

// body parses entries until the closing brace (when closed) or end of input.
func (p *parser) body(t *Table, depth int, closed bool) {
	for {
		p.skipTrivia()
		if p.eof() {
			return
		}
		switch p.peek() {
		case '}':
			p.pos++
			if closed {
				return
			}
		case ',', ';':
			p.pos++
		default:
			p.entry(t, depth)
		}
	}
}

func (p *parser) entry(t *Table, depth int) {
	start := p.pos
	key, keyed, numeric := p.key()
	if !keyed {
		p.pos = start
	}
	value, ok := p.value(depth)
	if p.pos == start {
		p.pos++
		return
	}
	if ok {
		t.add(key, keyed, numeric, value)
	}
}

// key parses `name =` or `[literal] =`.
func (p *parser) key() (key string, keyed, numeric bool) {
	c := p.peek()
	switch {
	case c == '[' && p.longBracketLevel() < 0:
		p.pos++
		p.skipTrivia()
		switch q := p.peek(); {
		case q == '"' || q == '\'':
			key = Unescape(p.readQuoted())
		case isDigit(q) || q == '-':
			start := p.pos
			if _, ok := p.numeral(); !ok {
				return "", false, false
			}
			key, numeric = p.src[start:p.pos], true
		default:
			return "", false, false
		}
		p.skipTrivia()
		if p.peek() != ']' {
			return "", false, false
		}
		p.pos++
	case isIdentStart(c):
		key = p.readIdent()
	default:
		return "", false, false
	}

	p.skipTrivia()
	if p.peek() != '=' || p.peekAt(1) == '=' {
		return "", false, false
	}
	p.pos++
	return key, true, numeric
}

// value parses a block or a literal. ok is false when the value was skipped.
func (p *parser) value(depth int) (any, bool) {
	p.skipTrivia()
	c := p.peek()
	switch {
	case c == '{':
		if depth+1 > maxDepth {
			if end := matchBrace(p.src, p.pos); end >= 0 {
				p.pos = end + 1
			} else {
				p.pos = len(p.src)
			}
			return nil, false
		}
		p.pos++
		child := newTable()
		p.body(child, depth+1, true)
		return child, true
	case c == '"' || c == '\'':
		return Unescape(p.readQuoted()), true
	case c == '[' && p.longBracketLevel() >= 0:
		return p.skipLongBracket(p.longBracketLevel()), true
	case isDigit(c) || ((c == '-' || c == '.') && isDigit(p.peekAt(1))):
		if v, ok := p.numeral(); ok {
			return v, true
		}
	case isIdentStart(c):
		switch p.readIdent() {
		case "true":
			return true, true
		case "false":
			return false, true
		case "nil":
			return nil, false
		}
	}
	p.skipRest()
	return nil, false
}

// numeral parses a decimal, float or hexadecimal number literal.
func (p *parser) numeral() (any, bool) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	hex := p.peek() == '0' && (p.peekAt(1) == 'x' || p.peekAt(1) == 'X')
	if hex {
		p.pos += 2
	}
	for !p.eof() {
		c := p.peek()
		switch {
		case isDigit(c) || c == '.' || (hex && isHexDigit(c)):
			p.pos++
		case !hex && (c == 'e' || c == 'E'):
			p.pos++
			if n := p.peek(); n == '+' || n == '-' {
				p.pos++
			}
		default:
			return parseNumber(p.src[start:p.pos], hex)
		}
	}
	return parseNumber(p.src[start:p.pos], hex)
}

func parseNumber(text string, hex bool) (any, bool) {
	if hex {
		neg := strings.HasPrefix(text, "-")
		digits := strings.TrimPrefix(text, "-")[2:]
		n, err := strconv.ParseInt(digits, 16, 64)
		if err != nil {
			return nil, false
		}
		if neg {
			n = -n
		}
		return n, true
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f, true
	}
	return nil, false
}

// skipRest skips an unsupported value up to the next separator or the
// closing brace of the enclosing table.
func (p *parser) skipRest() {
	for !p.eof() {
		switch p.peek() {
		case ',', ';', '}':
			return
		case '{':
			end := matchBrace(p.src, p.pos)
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos = end + 1
		default:
			p.skipToken()
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
