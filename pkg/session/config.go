package session

import (
	"net"
	"strconv"
	"time"
)

const (
	DefaultHost           = "localhost"
	DefaultPort           = 6200
	DefaultReadBufferSize = 1000000
	DefaultMaxUnitSize    = 16 << 20
)

// Config holds the connection and protocol settings of a Session.
type Config struct {
	// Host and Port locate the message bus.
	Host string
	Port int

	// Name is the module name sent in (register :name ...).
	Name string

	// ReadBufferSize is the size of each socket read.
	ReadBufferSize int

	// MaxUnitSize bounds a single newline-terminated unit. Longer units are dropped.
	MaxUnitSize int

	// ReadTimeout, if positive, bounds each read. Expired reads are retried.
	ReadTimeout time.Duration

	// RelaySpoken sends the composed spoken acknowledgment. Off by default:
	// the acknowledgment is built but never written.
	RelaySpoken bool

	// StartConversation sends (tell :content (start-conversation)) after the handshake.
	StartConversation bool
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = DefaultReadBufferSize
	}
	if c.MaxUnitSize <= 0 {
		c.MaxUnitSize = DefaultMaxUnitSize
	}
	return c
}
