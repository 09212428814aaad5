package session

import (
	"context"
	"errors"
	"net"
)

// receiveOutcome classifies a read error once, so the loop can switch on it.
type receiveOutcome int

const (
	// outcomeTransient: the read expired without data; keep listening.
	outcomeTransient receiveOutcome = iota
	// outcomeInterrupted: the context was cancelled; stop cleanly.
	outcomeInterrupted
	// outcomeFatal: the connection is broken or closed by the peer.
	outcomeFatal
)

func (o receiveOutcome) String() string {
	switch o {
	case outcomeTransient:
		return "transient"
	case outcomeInterrupted:
		return "interrupted"
	default:
		return "fatal"
	}
}

func classifyReceive(ctx context.Context, err error) receiveOutcome {
	// Cancellation closes the connection, so whatever the read returned
	// afterwards is a consequence of the interrupt.
	if ctx.Err() != nil {
		return outcomeInterrupted
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return outcomeTransient
	}
	return outcomeFatal
}
