package subscription

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/EckmanTechLLC/flux-go/pkg/log"
	"github.com/EckmanTechLLC/flux-go/pkg/state"
	"github.com/EckmanTechLLC/flux-go/pkg/transport"
	"github.com/EckmanTechLLC/flux-go/pkg/wire"
)

// Session errors.
var (
	ErrMissingBaseURL = errors.New("session base URL is required")
	ErrAlreadyOpen    = errors.New("session already opened")
	ErrNotOpen        = errors.New("session not open")
	ErrSessionClosed  = errors.New("session closed")
)

// DefaultReceiveTimeout is the bounded per-receive wait used between
// cancellation checks.
const DefaultReceiveTimeout = time.Second

// DisconnectError is the terminal error when the connection fails during
// streaming. Frames tells an operator whether the peer disconnected after
// a period of normal streaming or dropped the session before delivering
// anything, which is diagnosed differently from a peer that was never
// reachable (see transport.ErrUnreachable from Open).
type DisconnectError struct {
	// Frames is the number of frames delivered before the failure.
	Frames uint64

	// Err is the underlying transport error.
	Err error
}

// Error describes the disconnect.
func (e *DisconnectError) Error() string {
	if e.Frames == 0 {
		return fmt.Sprintf("connection lost before any frame arrived: %v", e.Err)
	}
	return fmt.Sprintf("connection lost after %d frames: %v", e.Frames, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *DisconnectError) Unwrap() error { return e.Err }

// Config configures a subscription session.
type Config struct {
	// BaseURL is the service address (scheme + host + port). Required.
	BaseURL string

	// EntityID narrows the subscription to a single entity. Empty
	// subscribes to all entities. The scope is fixed for the lifetime
	// of the session.
	EntityID string

	// ReceiveTimeout is the bounded per-receive wait (default: 1s).
	// It caps cancellation latency; an elapsed interval is invisible
	// to the caller.
	ReceiveTimeout time.Duration

	// Transport configures connection establishment.
	Transport transport.Config

	// Logger receives protocol events. Nil disables logging.
	Logger log.Logger
}

// Session is one subscription to the Flux state stream. A session serves
// a single logical consumer; run independent sessions for concurrent
// subscriptions. Close may be called from any goroutine.
type Session struct {
	id     string
	config Config
	client *transport.Client
	logger log.Logger
	cache  *state.Cache

	mu      sync.Mutex
	st      State
	conn    *transport.Conn
	lastErr error

	received atomic.Uint64

	closeOnce sync.Once
	closed    chan struct{}
}

// NewSession creates a session in the DISCONNECTED state.
func NewSession(config Config) (*Session, error) {
	if config.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if config.ReceiveTimeout == 0 {
		config.ReceiveTimeout = DefaultReceiveTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}

	return &Session{
		id:     uuid.NewString(),
		config: config,
		client: transport.NewClient(config.Transport),
		logger: logger,
		cache:  state.NewCache(),
		st:     StateDisconnected,
		closed: make(chan struct{}),
	}, nil
}

// ID returns the session identifier stamped on log events.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// Cache returns the session's reconciliation cache. The cache is private
// to this session and is cleared when the session closes; read it from
// the consuming goroutine only.
func (s *Session) Cache() *state.Cache { return s.cache }

// Received returns the number of frames delivered so far.
func (s *Session) Received() uint64 { return s.received.Load() }

// Open connects to the service and sends the subscribe frame. It does
// not retry: a refused or unresolvable address reports
// transport.ErrUnreachable, an elapsed connect deadline reports
// transport.ErrConnectTimeout, and the caller decides whether to open a
// new session.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.st != StateDisconnected {
		st := s.st
		s.mu.Unlock()
		if st.terminal() {
			return ErrSessionClosed
		}
		return ErrAlreadyOpen
	}
	s.setStateLocked(StateConnecting, "open")
	s.mu.Unlock()

	conn, err := s.client.Connect(ctx, s.config.BaseURL)
	if err != nil {
		s.fail(err, "connect")
		return err
	}

	s.mu.Lock()
	if s.st != StateConnecting {
		// Closed while the dial was in flight.
		s.mu.Unlock()
		conn.Close()
		return ErrSessionClosed
	}
	s.conn = conn
	s.setStateLocked(StateSubscribing, "connected")
	s.mu.Unlock()

	frame, err := wire.EncodeSubscribe(s.config.EntityID)
	if err != nil {
		s.fail(err, "encode subscribe")
		return err
	}
	if err := conn.Send(frame); err != nil {
		s.fail(err, "send subscribe")
		return err
	}
	s.logFrame(log.DirectionOut, log.CategoryHandshake, frame, "")

	return nil
}

// Next returns the next inbound message in arrival order. Snapshot and
// update frames are applied to the session cache before Next returns;
// unrecognized frames are returned as-is and leave the cache untouched.
//
// Next blocks until a frame arrives, the context is cancelled, the
// session is closed, or the connection fails. Idle receive timeouts are
// absorbed internally. Cancelling the context closes the session.
func (s *Session) Next(ctx context.Context) (wire.Message, error) {
	for {
		s.mu.Lock()
		switch s.st {
		case StateDisconnected, StateConnecting:
			s.mu.Unlock()
			return nil, ErrNotOpen
		case StateClosing, StateClosed:
			s.mu.Unlock()
			return nil, ErrSessionClosed
		case StateFailed:
			err := s.lastErr
			s.mu.Unlock()
			return nil, err
		}
		conn := s.conn
		s.mu.Unlock()

		if err := ctx.Err(); err != nil {
			s.Close()
			return nil, err
		}

		data, err := conn.Receive(s.config.ReceiveTimeout)
		if errors.Is(err, transport.ErrReceiveTimeout) {
			// Benign idle tick; loop to check for cancellation.
			continue
		}
		if err != nil {
			select {
			case <-s.closed:
				return nil, ErrSessionClosed
			default:
			}
			discErr := &DisconnectError{Frames: s.received.Load(), Err: err}
			s.fail(discErr, "receive")
			return nil, discErr
		}

		s.mu.Lock()
		if s.st == StateSubscribing {
			s.setStateLocked(StateStreaming, "first frame")
		}
		s.mu.Unlock()

		msg := wire.DecodeMessage(data)
		switch m := msg.(type) {
		case wire.Snapshot:
			s.cache.Apply(m.Entity)
		case wire.Update:
			s.cache.Apply(m.Entity)
		case wire.Unrecognized:
			// Passed through opaquely; the cache is not touched.
		}

		s.received.Add(1)
		s.logFrame(log.DirectionIn, log.CategoryFrame, data, msg.Type().String())
		return msg, nil
	}
}

// Run drains the session through handler until the context is cancelled,
// the session is closed, or an error occurs. A cooperative shutdown
// (Close or context cancellation) returns nil; a handler error closes
// the session and is returned.
func (s *Session) Run(ctx context.Context, handler func(wire.Message) error) error {
	for {
		msg, err := s.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrSessionClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if err := handler(msg); err != nil {
			s.Close()
			return err
		}
	}
}

// Close closes the session and releases the connection. It is idempotent
// and safe to call from any goroutine; a pending Next unblocks promptly.
// Notifications already emitted are not rescinded, but the cache is
// discarded.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)

		s.mu.Lock()
		if s.st.terminal() {
			s.mu.Unlock()
			return
		}
		s.setStateLocked(StateClosing, "close requested")
		conn := s.conn
		s.mu.Unlock()

		if conn != nil {
			err = conn.Close()
		}
		s.cache.Clear()

		s.mu.Lock()
		s.setStateLocked(StateClosed, "")
		s.mu.Unlock()
	})
	return err
}

// fail records a terminal failure. Later Next calls return the error.
func (s *Session) fail(err error, reason string) {
	s.mu.Lock()
	if s.st.terminal() {
		s.mu.Unlock()
		return
	}
	s.lastErr = err
	s.setStateLocked(StateFailed, reason)
	conn := s.conn
	s.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	s.logError(err, reason)
}

// setStateLocked transitions the state and logs the change. Callers hold mu.
func (s *Session) setStateLocked(next State, reason string) {
	old := s.st
	s.st = next
	s.logger.Log(s.baseEvent(log.LayerSession, log.CategoryState, log.Event{
		StateChange: &log.StateChangeEvent{
			OldState: old.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	}))
}

func (s *Session) logFrame(dir log.Direction, category log.Category, payload []byte, kind string) {
	frame := log.NewFrameEvent(payload)
	frame.Kind = kind
	event := s.baseEvent(log.LayerTransport, category, log.Event{Frame: frame})
	event.Direction = dir
	s.logger.Log(event)
}

func (s *Session) logError(err error, reason string) {
	s.logger.Log(s.baseEvent(log.LayerSession, log.CategoryError, log.Event{
		Error: &log.ErrorEventData{Message: err.Error(), Context: reason},
	}))
}

func (s *Session) baseEvent(layer log.Layer, category log.Category, event log.Event) log.Event {
	event.Timestamp = time.Now()
	event.SessionID = s.id
	event.Layer = layer
	event.Category = category
	event.Target = s.config.BaseURL
	event.EntityID = s.config.EntityID
	return event
}
