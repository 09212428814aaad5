package domain

import (
	"context"
	"time"
)

// SkipReason explains why an inbound unit produced no outbound work.
type SkipReason string

const (
	SkipParse     SkipReason = "parse"
	SkipDecode    SkipReason = "decode"
	SkipTranslate SkipReason = "translate"
	SkipOversize  SkipReason = "oversize"
	SkipSend      SkipReason = "send"
)

// StateEvent is emitted on every session state transition.
type StateEvent struct {
	Timestamp time.Time    `json:"timestamp"`
	SessionID string       `json:"session_id"`
	From      SessionState `json:"from"`
	To        SessionState `json:"to"`
}

// ReceiveEvent is emitted for every complete inbound unit, before parsing.
type ReceiveEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Bytes     int       `json:"bytes"`
}

// DispatchEvent is emitted when a content variant has been handled.
type DispatchEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	SessionID string        `json:"session_id"`
	Verb      string        `json:"verb"`
	Kind      ContentKind   `json:"kind"`
	Duration  time.Duration `json:"duration"`
}

// SkipEvent is emitted when a unit or message is dropped locally.
type SkipEvent struct {
	Timestamp time.Time  `json:"timestamp"`
	SessionID string     `json:"session_id"`
	Reason    SkipReason `json:"reason"`
	Err       error      `json:"-"`
}

// SendEvent is emitted after an outbound expression was written (or failed).
type SendEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"`
	Bytes     int       `json:"bytes"`
	Err       error     `json:"-"`
}

// LifecycleHooks defines callbacks for session observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnStateChange func(context.Context, *StateEvent)
	OnReceive     func(context.Context, *ReceiveEvent)
	OnDispatch    func(context.Context, *DispatchEvent)
	OnSkip        func(context.Context, *SkipEvent)
	OnSend        func(context.Context, *SendEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStateChange: chain(h.OnStateChange, other.OnStateChange),
		OnReceive:     chain(h.OnReceive, other.OnReceive),
		OnDispatch:    chain(h.OnDispatch, other.OnDispatch),
		OnSkip:        chain(h.OnSkip, other.OnSkip),
		OnSend:        chain(h.OnSend, other.OnSend),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
