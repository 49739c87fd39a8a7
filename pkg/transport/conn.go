package transport

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// closeGracePeriod bounds the close handshake write on Close.
const closeGracePeriod = time.Second

// Conn is an established subscription connection. It is exclusively owned
// by one session: Send and Receive each expect a single caller.
type Conn struct {
	ws *websocket.Conn

	// frames carries inbound frames from the read loop to Receive.
	// The loop closes it when reading fails.
	frames chan []byte

	// readErr holds the classified terminal read error, set before
	// frames is closed.
	readErrMu sync.Mutex
	readErr   error

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeCh   chan struct{}
}

func newConn(ws *websocket.Conn) *Conn {
	c := &Conn{
		ws:      ws,
		frames:  make(chan []byte),
		closeCh: make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// readLoop pulls frames off the wire for the lifetime of the connection.
// Any read error is terminal for a WebSocket connection, so the loop
// records it and stops.
func (c *Conn) readLoop() {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.setReadErr(c.classifyReadError(err))
			close(c.frames)
			return
		}

		select {
		case c.frames <- data:
		case <-c.closeCh:
			return
		}
	}
}

func (c *Conn) setReadErr(err error) {
	c.readErrMu.Lock()
	defer c.readErrMu.Unlock()
	if c.readErr == nil {
		c.readErr = err
	}
}

func (c *Conn) readError() error {
	c.readErrMu.Lock()
	defer c.readErrMu.Unlock()
	if c.readErr == nil {
		return ErrConnectionClosed
	}
	return c.readErr
}

// classifyReadError maps a terminal read error onto ErrConnectionClosed,
// keeping the peer's close reason when one was sent.
func (c *Conn) classifyReadError(err error) error {
	select {
	case <-c.closeCh:
		// We initiated the close; the read error is just fallout.
		return ErrConnectionClosed
	default:
	}

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return fmt.Errorf("peer closed the connection: %w", ErrConnectionClosed)
	}
	return fmt.Errorf("connection lost: %v: %w", err, ErrConnectionClosed)
}

// Send writes one frame to the service.
func (c *Conn) Send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	select {
	case <-c.closeCh:
		return ErrConnectionClosed
	default:
	}

	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("send failed: %v: %w", err, ErrConnectionClosed)
	}
	return nil
}

// Receive waits up to timeout for the next inbound frame. An elapsed
// timeout returns ErrReceiveTimeout and is not a connection failure; it
// exists so the caller can check for cancellation between frames. A
// closed or failed connection returns an error wrapping
// ErrConnectionClosed.
func (c *Conn) Receive(timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case data, ok := <-c.frames:
		if !ok {
			return nil, c.readError()
		}
		return data, nil
	case <-timer.C:
		return nil, ErrReceiveTimeout
	case <-c.closeCh:
		return nil, ErrConnectionClosed
	}
}

// Close closes the connection, attempting a clean WebSocket close
// handshake first. Safe to call more than once; it also unblocks any
// pending Receive.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)

		// Best effort: tell the peer before dropping the socket.
		deadline := time.Now().Add(closeGracePeriod)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)

		err = c.ws.Close()
	})
	return err
}
