package kqml

import "strings"

// Performative is a message unit: an intent verb followed by keyword
// arguments, e.g. (tell :content (spoken :what "hello")).
type Performative struct {
	list *List
}

// NewPerformative starts a performative with the given verb.
func NewPerformative(verb string) Performative {
	return Performative{list: NewList(Symbol(verb))}
}

// FromList wraps a parsed list. The head must be a symbol.
func FromList(l *List) (Performative, bool) {
	if l.Head() == "" {
		return Performative{}, false
	}
	return Performative{list: l}, true
}

// Verb returns the intent verb as written on the wire.
func (p Performative) Verb() string {
	return p.list.Head()
}

// Is reports whether the verb matches, ignoring case.
func (p Performative) Is(verb string) bool {
	return strings.EqualFold(p.Verb(), verb)
}

// Get returns the value of a keyword argument.
func (p Performative) Get(key string) (Expr, bool) {
	return p.list.Get(key)
}

// GetString returns the textual value of a keyword argument.
func (p Performative) GetString(key string) (string, bool) {
	return p.list.GetString(key)
}

// Content returns the nested :content list, if present.
func (p Performative) Content() (*List, bool) {
	return p.list.GetList("content")
}

// With returns a new performative with :key set to value.
func (p Performative) With(key string, value Expr) Performative {
	return Performative{list: p.list.With(key, value)}
}

// List exposes the underlying expression.
func (p Performative) List() *List {
	return p.list
}

func (p Performative) String() string {
	if p.list == nil {
		return "()"
	}
	return p.list.String()
}
