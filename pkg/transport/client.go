package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Transport errors.
var (
	ErrUnreachable       = errors.New("service unreachable")
	ErrConnectTimeout    = errors.New("connect timed out")
	ErrReceiveTimeout    = errors.New("receive timed out")
	ErrConnectionClosed  = errors.New("connection closed")
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
)

// Defaults applied by NewClient.
const (
	// DefaultConnectTimeout bounds the dial and WebSocket handshake.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultMaxMessageSize caps a single inbound frame (1 MiB).
	DefaultMaxMessageSize = 1 << 20

	// SubscribePath is the subscription endpoint suffix.
	SubscribePath = "/api/ws"
)

// Config configures a subscription transport client.
type Config struct {
	// ConnectTimeout bounds connection establishment (default: 10s).
	ConnectTimeout time.Duration

	// MaxMessageSize is the maximum inbound frame size (default: 1 MiB).
	MaxMessageSize int64

	// Header is sent with the WebSocket handshake request.
	Header http.Header
}

// Client dials subscription connections to a Flux service.
type Client struct {
	config Config
}

// NewClient creates a client, applying defaults for zero config fields.
func NewClient(config Config) *Client {
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = DefaultConnectTimeout
	}
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = DefaultMaxMessageSize
	}
	return &Client{config: config}
}

// Endpoint derives the subscription endpoint from the service base URL:
// the scheme maps http→ws and https→wss (ws/wss pass through) and the
// SubscribePath suffix is appended.
func Endpoint(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + SubscribePath
	return u.String(), nil
}

// Connect establishes a subscription connection to the service at
// baseURL. Dial failures are classified: a refused or unresolvable
// address wraps ErrUnreachable, an elapsed connect deadline wraps
// ErrConnectTimeout. No retries are attempted.
func (c *Client) Connect(ctx context.Context, baseURL string) (*Conn, error) {
	endpoint, err := Endpoint(baseURL)
	if err != nil {
		return nil, err
	}

	dialer := &websocket.Dialer{
		HandshakeTimeout: c.config.ConnectTimeout,
	}

	ws, resp, err := dialer.DialContext(ctx, endpoint, c.config.Header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, classifyDialError(endpoint, err)
	}

	ws.SetReadLimit(c.config.MaxMessageSize)
	return newConn(ws), nil
}

// classifyDialError maps a dial failure onto the transport taxonomy,
// keeping the underlying cause in the message.
func classifyDialError(endpoint string, err error) error {
	if isTimeout(err) {
		return fmt.Errorf("connecting to %s: %v: %w", endpoint, err, ErrConnectTimeout)
	}
	return fmt.Errorf("connecting to %s: %v: %w", endpoint, err, ErrUnreachable)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
