package kqml

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fdurupinar/bioagents/pkg/domain"
)

// Codec converts between wire text and performatives.
type Codec interface {
	// Parse reads exactly one performative from raw.
	// Malformed input yields a *domain.ParseError.
	Parse(raw string) (Performative, error)

	// Encode serialises a performative to its single-line wire form.
	Encode(p Performative) ([]byte, error)
}

// DefaultCodec is the s-expression codec used by the bridge.
var DefaultCodec Codec = SExprCodec{}

// SExprCodec implements Codec for parenthesised s-expressions.
type SExprCodec struct{}

// Parse implements Codec.
func (SExprCodec) Parse(raw string) (Performative, error) {
	r := &reader{src: []rune(raw)}
	r.skipSpace()
	if r.eof() {
		return Performative{}, r.fail("empty expression")
	}
	expr, err := r.read()
	if err != nil {
		return Performative{}, err
	}
	r.skipSpace()
	if !r.eof() {
		return Performative{}, r.fail("unexpected trailing input")
	}
	list, ok := expr.(*List)
	if !ok {
		return Performative{}, r.fail("performative must be a list")
	}
	p, ok := FromList(list)
	if !ok {
		return Performative{}, r.fail("performative must start with a verb")
	}
	return p, nil
}

// Encode implements Codec.
func (SExprCodec) Encode(p Performative) ([]byte, error) {
	if p.Verb() == "" {
		return nil, fmt.Errorf("encode: performative has no verb")
	}
	return []byte(p.String()), nil
}

// reader is a recursive-descent parser over runes.
type reader struct {
	src []rune
	pos int
	raw string
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) fail(reason string) error {
	if r.raw == "" {
		r.raw = string(r.src)
	}
	return &domain.ParseError{Input: r.raw, Offset: r.pos, Reason: reason}
}

func (r *reader) skipSpace() {
	for !r.eof() && unicode.IsSpace(r.src[r.pos]) {
		r.pos++
	}
}

func (r *reader) read() (Expr, error) {
	r.skipSpace()
	if r.eof() {
		return nil, r.fail("unexpected end of input")
	}
	switch c := r.src[r.pos]; c {
	case '(':
		return r.readList()
	case ')':
		return nil, r.fail("unbalanced ')'")
	case '"':
		return r.readString()
	default:
		return r.readSymbol(), nil
	}
}

func (r *reader) readList() (Expr, error) {
	r.pos++ // '('
	var items []Expr
	for {
		r.skipSpace()
		if r.eof() {
			return nil, r.fail("unterminated list")
		}
		if r.src[r.pos] == ')' {
			r.pos++
			return &List{items: items}, nil
		}
		item, err := r.read()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (r *reader) readString() (Expr, error) {
	r.pos++ // opening quote
	var sb strings.Builder
	for !r.eof() {
		c := r.src[r.pos]
		r.pos++
		switch c {
		case '"':
			return String(sb.String()), nil
		case '\\':
			if r.eof() {
				return nil, r.fail("dangling escape")
			}
			next := r.src[r.pos]
			r.pos++
			switch next {
			case 'n':
				sb.WriteRune('\n')
			case 'r':
				sb.WriteRune('\r')
			default:
				sb.WriteRune(next)
			}
		default:
			sb.WriteRune(c)
		}
	}
	return nil, r.fail("unterminated string")
}

func (r *reader) readSymbol() Expr {
	start := r.pos
	for !r.eof() {
		c := r.src[r.pos]
		if unicode.IsSpace(c) || c == '(' || c == ')' || c == '"' {
			break
		}
		r.pos++
	}
	return Symbol(r.src[start:r.pos])
}
