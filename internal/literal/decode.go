package literal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"ngramsubset/internal/ngrams"
)

// ErrSyntax is matched by every parse failure returned from this package.
var ErrSyntax = errors.New("literal syntax error")

// SyntaxError describes where the input stopped matching the grammar.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("literal syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Is reports ErrSyntax so callers can test with errors.Is.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Object is a parsed object literal. Keys keeps source order.
type Object struct {
	Keys   []string
	Values map[string]any
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.Values[key]
	return v, ok
}

// Parse reads a single literal value from src. Values are *Object, []any,
// string, float64, bool, or nil for null/undefined. Whitespace and JavaScript
// comments are skipped; anything but a trailing semicolon after the value is
// an error.
func Parse(src string) (any, error) {
	value, n, err := ParsePrefix(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, pos: n}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ';' {
		p.pos++
		p.skipSpace()
	}
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected trailing input")
	}
	return value, nil
}

// ParsePrefix reads one literal value from the start of src and returns the
// number of bytes consumed.
func ParsePrefix(src string) (any, int, error) {
	p := &parser{src: src}
	p.skipSpace()
	value, err := p.value()
	if err != nil {
		return nil, 0, err
	}
	return value, p.pos, nil
}

// DecodeTable parses src as an n-gram table literal.
func DecodeTable(src string) (ngrams.Table, error) {
	value, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return TableFromValue(value)
}

// TableFromValue converts a parsed object of objects into a table.
func TableFromValue(value any) (ngrams.Table, error) {
	obj, ok := value.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: table must be an object, got %T", ErrSyntax, value)
	}
	table := make(ngrams.Table, len(obj.Keys))
	for _, key := range obj.Keys {
		rowObj, ok := obj.Values[key].(*Object)
		if !ok {
			return nil, fmt.Errorf("%w: row %q must be an object", ErrSyntax, key)
		}
		row := make(ngrams.Row, len(rowObj.Keys))
		for _, idKey := range rowObj.Keys {
			id, err := strconv.Atoi(idKey)
			if err != nil || id < 0 {
				return nil, fmt.Errorf("%w: row %q has non-integer language id %q", ErrSyntax, key, idKey)
			}
			freq, ok := rowObj.Values[idKey].(float64)
			if !ok {
				return nil, fmt.Errorf("%w: row %q id %d frequency is not a number", ErrSyntax, key, id)
			}
			row[id] = freq
		}
		table[key] = row
	}
	return table, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			p.pos++
		case c == 0xEF && strings.HasPrefix(p.src[p.pos:], "\ufeff"):
			p.pos += len("\ufeff")
		case strings.HasPrefix(p.src[p.pos:], "//"):
			end := strings.IndexByte(p.src[p.pos:], '\n')
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 1
		case strings.HasPrefix(p.src[p.pos:], "/*"):
			end := strings.Index(p.src[p.pos+2:], "*/")
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 4
		default:
			return
		}
	}
}

func (p *parser) value() (any, error) {
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of input")
	}
	c := p.src[p.pos]
	switch {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '\'' || c == '"':
		return p.quoted()
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.number()
	case isIdentStart(c):
		word := p.ident()
		switch word {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null", "undefined":
			return nil, nil
		case "Infinity":
			return math.Inf(1), nil
		case "NaN":
			return math.NaN(), nil
		}
		return nil, p.errorf("unexpected identifier %q", word)
	}
	return nil, p.errorf("unexpected character %q", c)
}

func (p *parser) object() (*Object, error) {
	p.pos++ // '{'
	obj := &Object{Values: make(map[string]any)}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		return obj, nil
	}
	for {
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == '}' {
			// trailing comma
			p.pos++
			return obj, nil
		}
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, p.errorf("expected ':' after key %q", key)
		}
		p.pos++
		p.skipSpace()
		value, err := p.value()
		if err != nil {
			return nil, err
		}
		if _, dup := obj.Values[key]; !dup {
			obj.Keys = append(obj.Keys, key)
		}
		obj.Values[key] = value

		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated object")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return obj, nil
		default:
			return nil, p.errorf("expected ',' or '}' in object")
		}
	}
}

func (p *parser) array() ([]any, error) {
	p.pos++ // '['
	items := []any{}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated array")
		}
		if p.src[p.pos] == ']' {
			p.pos++
			return items, nil
		}
		item, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated array")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return items, nil
		default:
			return nil, p.errorf("expected ',' or ']' in array")
		}
	}
}

func (p *parser) key() (string, error) {
	if p.pos >= len(p.src) {
		return "", p.errorf("unexpected end of input, expected key")
	}
	c := p.src[p.pos]
	switch {
	case c == '\'' || c == '"':
		return p.quoted()
	case isDigit(c):
		start := p.pos
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
		return p.src[start:p.pos], nil
	case isIdentStart(c):
		return p.ident(), nil
	}
	return "", p.errorf("unexpected character %q, expected key", c)
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) && (isIdentStart(p.src[p.pos]) || isDigit(p.src[p.pos])) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) number() (float64, error) {
	start := p.pos
	if c := p.src[p.pos]; c == '-' || c == '+' {
		p.pos++
		if strings.HasPrefix(p.src[p.pos:], "Infinity") {
			p.pos += len("Infinity")
			if c == '-' {
				return math.Inf(-1), nil
			}
			return math.Inf(1), nil
		}
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isDigit(c) || c == '.' || c == 'e' || c == 'E' {
			p.pos++
			continue
		}
		if (c == '-' || c == '+') && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E') {
			p.pos++
			continue
		}
		break
	}
	text := p.src[start:p.pos]
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.pos = start
		return 0, p.errorf("invalid number %q", text)
	}
	return f, nil
}

func (p *parser) quoted() (string, error) {
	quote := p.src[p.pos]
	p.pos++
	var b strings.Builder
	for {
		if p.pos >= len(p.src) {
			return "", p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\n':
			return "", p.errorf("newline in string")
		case c == '\\':
			p.pos++
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
}

func (p *parser) escape(b *strings.Builder) error {
	if p.pos >= len(p.src) {
		return p.errorf("unterminated escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case 'x', 'u':
		width := 2
		if c == 'u' {
			width = 4
		}
		if p.pos+width > len(p.src) {
			return p.errorf("short \\%c escape", c)
		}
		code, err := strconv.ParseUint(p.src[p.pos:p.pos+width], 16, 32)
		if err != nil {
			return p.errorf("invalid \\%c escape", c)
		}
		p.pos += width
		r := rune(code)
		if utf8.ValidRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(utf8.RuneError)
		}
	default:
		// \' \" \\ and unknown escapes stand for the character itself.
		b.WriteByte(c)
	}
	return nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
