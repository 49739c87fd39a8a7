package event

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/EckmanTechLLC/flux-go/pkg/property"
)

// Validation errors.
var (
	ErrEmptyStream   = errors.New("event stream must not be empty")
	ErrEmptySource   = errors.New("event source must not be empty")
	ErrEmptyEntityID = errors.New("event entity ID must not be empty")
)

// Event is a publishable Flux event envelope. Build it with Build; the
// struct is not meant to be modified afterward.
type Event struct {
	// Stream is the logical namespace the event is published under.
	Stream string

	// Source identifies the producer.
	Source string

	// Timestamp is the send time in Unix epoch milliseconds,
	// assigned at build time.
	Timestamp int64

	// EntityID names the entity the event describes.
	EntityID string

	// Properties is the property set carried by the event. May be empty.
	Properties property.Map

	// Key is an optional ordering/grouping hint. Empty means absent.
	Key string

	// Schema is an optional metadata tag. Empty means absent.
	Schema string
}

// Option customizes an event at build time.
type Option func(*Event)

// WithKey sets the optional ordering/grouping key.
func WithKey(key string) Option {
	return func(e *Event) { e.Key = key }
}

// WithSchema sets the optional schema metadata tag.
func WithSchema(schema string) Option {
	return func(e *Event) { e.Schema = schema }
}

// Build assembles an event, validating the required fields and stamping
// the current wall-clock time. The properties map is copied, never
// retained or mutated.
func Build(stream, source, entityID string, props property.Map, opts ...Option) (*Event, error) {
	if stream == "" {
		return nil, ErrEmptyStream
	}
	if source == "" {
		return nil, ErrEmptySource
	}
	if entityID == "" {
		return nil, ErrEmptyEntityID
	}

	e := &Event{
		Stream:     stream,
		Source:     source,
		Timestamp:  time.Now().UnixMilli(),
		EntityID:   entityID,
		Properties: props.Clone(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// wireEvent is the JSON shape of the ingestion API.
type wireEvent struct {
	Stream    string      `json:"stream"`
	Source    string      `json:"source"`
	Timestamp int64       `json:"timestamp"`
	Payload   wirePayload `json:"payload"`
	Key       string      `json:"key,omitempty"`
	Schema    string      `json:"schema,omitempty"`
}

type wirePayload struct {
	EntityID   string       `json:"entity_id"`
	Properties property.Map `json:"properties"`
}

// MarshalJSON encodes the event in the ingestion wire form. Encoding is a
// pure function of the event value.
func (e *Event) MarshalJSON() ([]byte, error) {
	props := e.Properties
	if props == nil {
		props = property.Map{}
	}
	return json.Marshal(wireEvent{
		Stream:    e.Stream,
		Source:    e.Source,
		Timestamp: e.Timestamp,
		Payload: wirePayload{
			EntityID:   e.EntityID,
			Properties: props,
		},
		Key:    e.Key,
		Schema: e.Schema,
	})
}

// PublishAck is the service response to a successful publish.
type PublishAck struct {
	// EventID is the identifier the service assigned to the event.
	EventID string `json:"eventId"`

	// Stream echoes the stream the event was published under.
	Stream string `json:"stream"`
}
