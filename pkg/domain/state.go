package domain

// SessionState is the lifecycle position of a bridge session.
type SessionState string

const (
	StateConnecting  SessionState = "connecting"  // Dialing the message bus
	StateHandshaking SessionState = "handshaking" // Sending register/subscribe/ready
	StateListening   SessionState = "listening"   // Receive loop running
	StateTerminated  SessionState = "terminated"  // Sink state, connection closed
)

// Ordinal returns a stable numeric value for the state, used by gauges.
func (s SessionState) Ordinal() float64 {
	switch s {
	case StateConnecting:
		return 0
	case StateHandshaking:
		return 1
	case StateListening:
		return 2
	case StateTerminated:
		return 3
	default:
		return -1
	}
}

// IsTerminal reports whether no further transition is possible.
func (s SessionState) IsTerminal() bool {
	return s == StateTerminated
}
