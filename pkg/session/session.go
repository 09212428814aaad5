package session

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fdurupinar/bioagents/internal/logging"
	"github.com/fdurupinar/bioagents/pkg/composer"
	"github.com/fdurupinar/bioagents/pkg/diagram"
	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/fdurupinar/bioagents/pkg/kqml"
	"github.com/fdurupinar/bioagents/pkg/ports"
	"github.com/fdurupinar/bioagents/pkg/statements"
	"github.com/google/uuid"
)

// SpeechHandler receives every utterance relayed by a spoken message.
type SpeechHandler func(ctx context.Context, text string)

// Session owns one connection to the message bus.
// It is created once per process and never reused after Terminated.
type Session struct {
	cfg        Config
	id         string
	codec      kqml.Codec
	decoder    statements.Decoder
	translator diagram.Translator
	dialer     ports.Dialer
	hooks      domain.LifecycleHooks
	speech     SpeechHandler
	logger     *slog.Logger

	mu    sync.Mutex
	state domain.SessionState
	conn  net.Conn

	closeOnce  sync.Once
	utterances atomic.Int64
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithCodec replaces the performative codec.
func WithCodec(codec kqml.Codec) Option {
	return func(s *Session) {
		s.codec = codec
	}
}

// WithDecoder replaces the statement decoder.
func WithDecoder(decoder statements.Decoder) Option {
	return func(s *Session) {
		s.decoder = decoder
	}
}

// WithTranslator replaces the diagram translator (default: SBGN-ML).
func WithTranslator(translator diagram.Translator) Option {
	return func(s *Session) {
		s.translator = translator
	}
}

// WithDialer replaces the dialer used by Connect.
func WithDialer(dialer ports.Dialer) Option {
	return func(s *Session) {
		s.dialer = dialer
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithSpeechHandler registers a callback for relayed utterances.
func WithSpeechHandler(handler SpeechHandler) Option {
	return func(s *Session) {
		s.speech = handler
	}
}

// WithID overrides the generated session id (used in logs and events).
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// New creates a Session in the Connecting state. No I/O happens until Connect.
func New(cfg Config, opts ...Option) *Session {
	s := &Session{
		cfg:        cfg.withDefaults(),
		id:         uuid.NewString(),
		codec:      kqml.DefaultCodec,
		decoder:    statements.Default,
		translator: diagram.SBGN{},
		dialer:     &net.Dialer{},
		state:      domain.StateConnecting,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session_id", s.id, "peer", s.cfg.Addr())
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state. Safe for concurrent use.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UtteranceCount returns the number of spoken messages handled so far.
func (s *Session) UtteranceCount() int64 {
	return s.utterances.Load()
}

// Connect dials the bus and sends the handshake.
// On success the session is Listening; on failure it is Terminated and the
// returned error is a *domain.TransportError.
func (s *Session) Connect(ctx context.Context) error {
	if state := s.State(); state != domain.StateConnecting {
		return fmt.Errorf("session: connect in state %s", state)
	}

	s.logger.Info("connecting to message bus")
	conn, err := s.dialer.DialContext(ctx, "tcp", s.cfg.Addr())
	if err != nil {
		s.setState(ctx, domain.StateTerminated)
		return &domain.TransportError{Op: "connect", Addr: s.cfg.Addr(), Err: err}
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	s.setState(ctx, domain.StateHandshaking)

	handshake := composer.Handshake(s.cfg.Name)
	if s.cfg.StartConversation {
		handshake = append(handshake, composer.StartConversation())
	}
	for _, p := range handshake {
		if err := s.send(ctx, "handshake", p); err != nil {
			s.Close()
			return err
		}
	}

	s.setState(ctx, domain.StateListening)
	s.logger.Info("handshake sent", "messages", len(handshake))
	return nil
}

// Run reads and dispatches until the connection fails or ctx is cancelled.
// It returns nil on cancellation and a *domain.TransportError otherwise.
// The connection is closed and the session Terminated when Run returns.
func (s *Session) Run(ctx context.Context) error {
	if state := s.State(); state != domain.StateListening {
		return fmt.Errorf("session: run in state %s", state)
	}
	defer s.Close()

	// A blocked Read only returns once the connection is closed.
	stop := context.AfterFunc(ctx, s.Close)
	defer stop()

	framer := newLineFramer(s.cfg.MaxUnitSize)
	buf := make([]byte, s.cfg.ReadBufferSize)

	for {
		if ctx.Err() != nil {
			s.logger.Info("session interrupted")
			return nil
		}
		if s.cfg.ReadTimeout > 0 {
			_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		}

		n, err := s.conn.Read(buf)
		if n > 0 {
			units, dropped := framer.Feed(buf[:n])
			for i := 0; i < dropped; i++ {
				s.skip(ctx, domain.SkipOversize, domain.ErrUnitTooLarge)
			}
			for _, unit := range units {
				_ = s.Dispatch(ctx, unit)
			}
		}
		if err == nil {
			continue
		}

		switch outcome := classifyReceive(ctx, err); outcome {
		case outcomeTransient:
			continue
		case outcomeInterrupted:
			s.logger.Info("session interrupted")
			return nil
		default:
			if pending := framer.Pending(); pending > 0 {
				s.logger.Warn("discarding incomplete unit", "bytes", pending)
			}
			s.logger.Error("receive failed", "error", err)
			return &domain.TransportError{Op: "receive", Addr: s.cfg.Addr(), Err: err}
		}
	}
}

// Close closes the connection and moves the session to Terminated.
// It is idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()
		if conn != nil {
			if err := conn.Close(); err != nil {
				s.logger.Debug("close connection", "error", err)
			}
		}
		s.setState(context.Background(), domain.StateTerminated)
	})
}

// send encodes p and writes it followed by a newline.
func (s *Session) send(ctx context.Context, kind string, p kqml.Performative) error {
	data, err := s.codec.Encode(p)
	if err != nil {
		s.emitSend(ctx, kind, 0, err)
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		err := &domain.TransportError{Op: "send", Addr: s.cfg.Addr(), Err: net.ErrClosed}
		s.emitSend(ctx, kind, 0, err)
		return err
	}

	n, err := conn.Write(data)
	if err != nil {
		err = &domain.TransportError{Op: "send", Addr: s.cfg.Addr(), Err: err}
	}
	s.emitSend(ctx, kind, n, err)
	if err == nil {
		s.logger.Debug("message sent", "kind", kind, "bytes", n)
	}
	return err
}

func (s *Session) setState(ctx context.Context, to domain.SessionState) {
	s.mu.Lock()
	from := s.state
	s.state = to
	s.mu.Unlock()

	if from == to {
		return
	}
	s.logger.Debug("session state changed", "from", from, "to", to)
	if s.hooks.OnStateChange != nil {
		s.hooks.OnStateChange(ctx, &domain.StateEvent{
			Timestamp: time.Now(),
			SessionID: s.id,
			From:      from,
			To:        to,
		})
	}
}

func (s *Session) skip(ctx context.Context, reason domain.SkipReason, err error) {
	s.logger.Warn("message skipped", "reason", reason, "error", err)
	if s.hooks.OnSkip != nil {
		s.hooks.OnSkip(ctx, &domain.SkipEvent{
			Timestamp: time.Now(),
			SessionID: s.id,
			Reason:    reason,
			Err:       err,
		})
	}
}

func (s *Session) emitSend(ctx context.Context, kind string, n int, err error) {
	if s.hooks.OnSend != nil {
		s.hooks.OnSend(ctx, &domain.SendEvent{
			Timestamp: time.Now(),
			SessionID: s.id,
			Kind:      kind,
			Bytes:     n,
			Err:       err,
		})
	}
}
