package domain

import (
	"errors"
	"fmt"
)

// ErrUnitTooLarge is returned when a single protocol unit exceeds the framer limit.
var ErrUnitTooLarge = errors.New("protocol unit exceeds size limit")

// TransportError is a failure of the underlying connection.
// A connect failure is fatal for the process; a receive failure ends the session.
type TransportError struct {
	Op   string // connect, send, receive
	Addr string
	Err  error
}

func (e *TransportError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transport %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError is a malformed performative expression. It is local to one unit.
type ParseError struct {
	Input  string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Reason)
}

// DecodeError is a malformed statement collection. It is local to one message.
type DecodeError struct {
	Index  int // statement index, -1 for the collection itself
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("statement %d: %s", e.Index, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("decode: %s: %v", msg, e.Err)
	}
	return "decode: " + msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TranslationError is a fact list the diagram translator cannot render.
type TranslationError struct {
	Reason string
	Err    error
}

func (e *TranslationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("translate: %s: %v", e.Reason, e.Err)
	}
	return "translate: " + e.Reason
}

func (e *TranslationError) Unwrap() error { return e.Err }

// ErrCacheMiss is returned by diagram caches when no document is stored under a key.
var ErrCacheMiss = errors.New("diagram cache miss")
