/*
Package session implements the bridge session: one connection to the agent
message bus, the startup handshake, and the receive/dispatch loop.

A Session moves through Connecting → Handshaking → Listening → Terminated.
Connect dials the bus and sends the handshake without waiting for any
acknowledgment. Run then reads from the connection, frames the byte stream
into newline-terminated units, and dispatches each unit in order on the
same goroutine. Partial units are kept until a later read completes them.

Errors raised while handling one unit (malformed expression, bad statement
payload, untranslatable facts, failed send) are logged and contained to
that unit. Only receive failures end the session. Cancelling the context
passed to Run closes the connection and makes Run return nil.
*/
package session
