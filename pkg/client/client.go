package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/EckmanTechLLC/flux-go/pkg/event"
	"github.com/EckmanTechLLC/flux-go/pkg/state"
)

// Client errors.
var (
	ErrMissingBaseURL = errors.New("base URL is required")
	ErrEmptyEntityID  = errors.New("entity ID is required")
	ErrNotFound       = errors.New("entity not found")
	ErrUnreachable    = errors.New("service unreachable")
	ErrTimeout        = errors.New("request timed out")
)

const (
	// DefaultTimeout bounds a single request end to end.
	DefaultTimeout = 10 * time.Second

	eventsPath   = "/api/events"
	entitiesPath = "/api/state/entities"
)

// maxErrorBody caps how much of an error response body is captured.
const maxErrorBody = 64 << 10

// ServerError reports a non-2xx response from the service. Detail is
// the response body: indented JSON when the body is valid JSON,
// otherwise the raw text. The body is never discarded.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server error: status %d", e.Status)
	}
	return fmt.Sprintf("server error: status %d: %s", e.Status, e.Detail)
}

// Config configures a Client.
type Config struct {
	// Timeout bounds each request (default: 10s). Per-call contexts
	// may impose a shorter deadline.
	Timeout time.Duration

	// HTTPClient is the underlying client. The default derives one
	// from Timeout.
	HTTPClient *http.Client
}

// Client talks to the HTTP endpoints of a Flux service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the service at baseURL, applying defaults
// for zero config fields.
func New(baseURL string, config Config) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}, nil
}

// Publish sends an event to the service and returns its acknowledgement.
func (c *Client) Publish(ctx context.Context, evt *event.Event) (event.PublishAck, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return event.PublishAck{}, fmt.Errorf("encoding event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+eventsPath, bytes.NewReader(body))
	if err != nil {
		return event.PublishAck{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var ack event.PublishAck
	if err := c.do(req, &ack); err != nil {
		return event.PublishAck{}, err
	}
	return ack, nil
}

// Entity returns the current snapshot of a single entity. A 404
// response reports ErrNotFound. The ID is sent verbatim, so namespaced
// IDs like "building-a/sensor-1" address the namespaced entity.
func (c *Client) Entity(ctx context.Context, id string) (state.Entity, error) {
	if id == "" {
		return state.Entity{}, ErrEmptyEntityID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+entitiesPath+"/"+id, nil)
	if err != nil {
		return state.Entity{}, err
	}

	var entity state.Entity
	if err := c.do(req, &entity); err != nil {
		var srvErr *ServerError
		if errors.As(err, &srvErr) && srvErr.Status == http.StatusNotFound {
			return state.Entity{}, fmt.Errorf("entity %q: %w", id, ErrNotFound)
		}
		return state.Entity{}, err
	}
	return entity, nil
}

// Entities returns snapshots of all entities known to the service.
func (c *Client) Entities(ctx context.Context) ([]state.Entity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+entitiesPath, nil)
	if err != nil {
		return nil, err
	}

	var entities []state.Entity
	if err := c.do(req, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

// do executes the request and decodes a 2xx response body into out.
// Non-2xx responses become *ServerError; transport failures are
// classified as ErrTimeout or ErrUnreachable.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return classifyRequestError(req.URL.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{
			Status: resp.StatusCode,
			Detail: readErrorDetail(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", req.URL, err)
	}
	return nil
}

// readErrorDetail captures the response body for a ServerError,
// indenting it when it is JSON.
func readErrorDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(body) == 0 {
		return ""
	}
	if json.Valid(body) {
		var buf bytes.Buffer
		if json.Indent(&buf, body, "", "  ") == nil {
			return buf.String()
		}
	}
	return string(bytes.TrimSpace(body))
}

// classifyRequestError maps a request failure onto the client taxonomy,
// keeping the underlying cause in the message.
func classifyRequestError(target string, err error) error {
	if isTimeout(err) {
		return fmt.Errorf("requesting %s: %v: %w", target, err, ErrTimeout)
	}
	return fmt.Errorf("requesting %s: %v: %w", target, err, ErrUnreachable)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
