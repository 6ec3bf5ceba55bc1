// Package reader parses the textual value notation produced by runtime.Show.
//
// The grammar is small: decimal integers, double-quoted strings with the
// escapes \" \\ \t \n \r and \xHH, the literals true and false, and
// bracketed lists "[a,b,c]" whose last element may follow a doubled comma to
// mark an explicit tail: "[a,b,,tail]".
package reader

import (
	"fmt"
	"strconv"
	"strings"

	"ferrum/runtime-go/pkg/runtime"
)

// SyntaxError reports malformed input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("reader: offset %d: %s", e.Offset, e.Msg)
}

// MaxDepth bounds list nesting.
const MaxDepth = 10000

type parser struct {
	src   string
	pos   int
	depth int
}

// Parse reads exactly one value from text. Surrounding whitespace is allowed.
func Parse(text string) (runtime.Any, error) {
	p := &parser{src: text}
	v, err := p.value()
	if err != nil {
		return runtime.Any{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return runtime.Any{}, p.errorf("unexpected trailing input %q", p.src[p.pos:])
	}
	return v, nil
}

// ParseAll reads a whitespace separated sequence of values.
func ParseAll(text string) ([]runtime.Any, error) {
	p := &parser{src: text}
	var out []runtime.Any
	for {
		p.skipSpace()
		if p.pos == len(p.src) {
			return out, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// MustParse is Parse for literals known to be well formed.
func MustParse(text string) runtime.Any {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *parser) value() (runtime.Any, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return runtime.Any{}, p.errorf("unexpected end of input")
	}
	c := p.peek()
	switch {
	case c == '-' || isDigit(c):
		return p.integer()
	case c == '"':
		return p.str()
	case c == '[':
		return p.seq()
	case strings.HasPrefix(p.src[p.pos:], "true"):
		p.pos += len("true")
		return runtime.FromBool(true), nil
	case strings.HasPrefix(p.src[p.pos:], "false"):
		p.pos += len("false")
		return runtime.FromBool(false), nil
	default:
		return runtime.Any{}, p.errorf("unexpected character %q", c)
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (p *parser) integer() (runtime.Any, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		text := p.src[start:p.pos]
		p.pos = start
		return runtime.Any{}, p.errorf("bad integer %q: %v", text, err)
	}
	return runtime.FromInt(n), nil
}

func (p *parser) str() (runtime.Any, error) {
	p.pos++ // opening quote
	var sb strings.Builder
	for {
		if p.pos >= len(p.src) {
			return runtime.Any{}, p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		p.pos++
		switch c {
		case '"':
			return runtime.FromStr(sb.String()), nil
		case '\\':
			b, err := p.escape()
			if err != nil {
				return runtime.Any{}, err
			}
			sb.WriteByte(b)
		default:
			sb.WriteByte(c)
		}
	}
}

func (p *parser) escape() (byte, error) {
	if p.pos >= len(p.src) {
		return 0, p.errorf("unterminated escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '\\', '"':
		return c, nil
	case 'x':
		if p.pos+2 > len(p.src) {
			return 0, p.errorf("short hex escape")
		}
		v, err := strconv.ParseUint(p.src[p.pos:p.pos+2], 16, 8)
		if err != nil {
			return 0, p.errorf("bad hex escape %q", p.src[p.pos:p.pos+2])
		}
		p.pos += 2
		return byte(v), nil
	default:
		return 0, p.errorf("unknown escape \\%c", c)
	}
}

func (p *parser) seq() (runtime.Any, error) {
	if p.depth >= MaxDepth {
		return runtime.Any{}, p.errorf("lists nested deeper than %d", MaxDepth)
	}
	p.depth++
	defer func() { p.depth-- }()
	p.pos++ // [
	var elems []runtime.Any
	tail := runtime.Nil()
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return tail, nil
	}
	for {
		v, err := p.value()
		if err != nil {
			return runtime.Any{}, err
		}
		elems = append(elems, v)
		p.skipSpace()
		switch p.peek() {
		case ']':
			p.pos++
			return runtime.MkListTail(tail, elems...), nil
		case ',':
			p.pos++
			if p.peek() != ',' {
				continue
			}
			p.pos++
			if tail, err = p.value(); err != nil {
				return runtime.Any{}, err
			}
			p.skipSpace()
			if p.peek() != ']' {
				return runtime.Any{}, p.errorf("expected ] after list tail")
			}
			p.pos++
			return runtime.MkListTail(tail, elems...), nil
		default:
			return runtime.Any{}, p.errorf("expected , or ] in list")
		}
	}
}
