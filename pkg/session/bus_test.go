package session_test

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/fdurupinar/bioagents/pkg/session"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

// fakeBus is a loopback stand-in for the message bus. It accepts one
// connection, records every line the bridge writes, and lets the test
// write raw bytes back.
type fakeBus struct {
	listener net.Listener
	accepted chan net.Conn
	lines    chan string

	mu   sync.Mutex
	conn net.Conn
	done chan struct{}
}

func startBus(t *testing.T) *fakeBus {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	bus := &fakeBus{
		listener: listener,
		accepted: make(chan net.Conn, 1),
		lines:    make(chan string, 64),
		done:     make(chan struct{}),
	}

	go func() {
		defer close(bus.done)
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		bus.mu.Lock()
		bus.conn = conn
		bus.mu.Unlock()
		bus.accepted <- conn

		scanner := bufio.NewScanner(conn)
		scanner.Buffer(make([]byte, 64*1024), 16<<20)
		for scanner.Scan() {
			bus.lines <- scanner.Text()
		}
	}()

	t.Cleanup(func() {
		listener.Close()
		bus.mu.Lock()
		if bus.conn != nil {
			bus.conn.Close()
		}
		bus.mu.Unlock()
		<-bus.done
	})
	return bus
}

func (b *fakeBus) config() session.Config {
	addr := b.listener.Addr().(*net.TCPAddr)
	return session.Config{Host: addr.IP.String(), Port: addr.Port}
}

func (b *fakeBus) peer(t *testing.T) net.Conn {
	t.Helper()
	select {
	case conn := <-b.accepted:
		b.accepted <- conn
		return conn
	case <-time.After(waitTimeout):
		t.Fatal("bridge never connected")
		return nil
	}
}

func (b *fakeBus) write(t *testing.T, data string) {
	t.Helper()
	_, err := b.peer(t).Write([]byte(data))
	require.NoError(t, err)
}

func (b *fakeBus) expectLine(t *testing.T) string {
	t.Helper()
	select {
	case line := <-b.lines:
		return line
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for a line from the bridge")
		return ""
	}
}

func (b *fakeBus) expectNoLine(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case line := <-b.lines:
		t.Fatalf("unexpected line from the bridge: %s", line)
	case <-time.After(wait):
	}
}

// skipHandshake drains the handshake lines.
func (b *fakeBus) skipHandshake(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		b.expectLine(t)
	}
}
