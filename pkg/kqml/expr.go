package kqml

import (
	"strings"
)

// Expr is one node of a performative expression.
type Expr interface {
	// String returns the wire form of the expression.
	String() string
	isExpr()
}

// Symbol is a bare atom such as tell, :content or &key.
type Symbol string

// String is a double-quoted string literal (unescaped value).
type String string

func (s Symbol) String() string { return string(s) }
func (Symbol) isExpr()          {}

func (s String) String() string { return quote(string(s)) }
func (String) isExpr()          {}

// List is an immutable parenthesised sequence of expressions.
type List struct {
	items []Expr
}

// NewList builds a list from the given items. The slice is copied.
func NewList(items ...Expr) *List {
	cp := make([]Expr, len(items))
	copy(cp, items)
	return &List{items: cp}
}

func (*List) isExpr() {}

// Len returns the number of items.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the i-th item or nil when out of range.
func (l *List) At(i int) Expr {
	if l == nil || i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Items returns a copy of the list items.
func (l *List) Items() []Expr {
	if l == nil {
		return nil
	}
	cp := make([]Expr, len(l.items))
	copy(cp, l.items)
	return cp
}

// Head returns the leading symbol, or "" when the list is empty or starts
// with something other than a symbol.
func (l *List) Head() string {
	if sym, ok := l.At(0).(Symbol); ok {
		return string(sym)
	}
	return ""
}

// Get looks up the value following :key. Keyword matching ignores case
// and an optional leading colon in key.
func (l *List) Get(key string) (Expr, bool) {
	idx := l.keywordIndex(key)
	if idx < 0 || idx+1 >= l.Len() {
		return nil, false
	}
	return l.items[idx+1], true
}

// GetString returns the textual value of :key. Strings are returned
// unescaped; symbols are returned verbatim.
func (l *List) GetString(key string) (string, bool) {
	v, ok := l.Get(key)
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case String:
		return string(val), true
	case Symbol:
		return string(val), true
	}
	return "", false
}

// GetList returns the value of :key when it is a list.
func (l *List) GetList(key string) (*List, bool) {
	v, ok := l.Get(key)
	if !ok {
		return nil, false
	}
	list, ok := v.(*List)
	return list, ok
}

// With returns a copy of the list where :key is set to value. An existing
// keyword keeps its position; a new one is appended.
func (l *List) With(key string, value Expr) *List {
	items := l.Items()
	if idx := l.keywordIndex(key); idx >= 0 {
		if idx+1 < len(items) {
			items[idx+1] = value
		} else {
			items = append(items, value)
		}
		return &List{items: items}
	}
	items = append(items, Symbol(keyword(key)), value)
	return &List{items: items}
}

func (l *List) String() string {
	var sb strings.Builder
	l.write(&sb)
	return sb.String()
}

func (l *List) write(sb *strings.Builder) {
	sb.WriteByte('(')
	for i, item := range l.Items() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if sub, ok := item.(*List); ok {
			sub.write(sb)
			continue
		}
		sb.WriteString(item.String())
	}
	sb.WriteByte(')')
}

func (l *List) keywordIndex(key string) int {
	want := keyword(key)
	// Position 0 is the head; keywords can only follow it.
	for i := 1; i < l.Len(); i++ {
		if sym, ok := l.items[i].(Symbol); ok && strings.EqualFold(string(sym), want) {
			return i
		}
	}
	return -1
}

func keyword(key string) string {
	if strings.HasPrefix(key, ":") {
		return key
	}
	return ":" + key
}

func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
