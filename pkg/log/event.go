package log

import "time"

// MaxPayloadCapture is the largest frame payload copied into an event.
// Longer payloads are truncated and flagged.
const MaxPayloadCapture = 1024

// Event is one protocol log record. CBOR encoding uses integer keys for
// compactness.
type Event struct {
	// Timestamp is when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the subscription session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates message flow, for frame events.
	Direction Direction `cbor:"3,keyasint"`

	// Layer is where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"5,keyasint"`

	// Target is the service base URL the session points at.
	Target string `cbor:"6,keyasint,omitempty"`

	// EntityID is the configured entity filter, if any.
	EntityID string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (at most one is set).
	Frame       *FrameEvent       `cbor:"8,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"9,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"10,keyasint,omitempty"`
}

// FrameEvent describes a frame sent or received.
type FrameEvent struct {
	// Size is the full frame size in bytes.
	Size int `cbor:"1,keyasint"`

	// Truncated reports whether Payload was cut at MaxPayloadCapture.
	Truncated bool `cbor:"2,keyasint"`

	// Payload is the frame content, possibly truncated.
	Payload []byte `cbor:"3,keyasint,omitempty"`

	// Kind is the classified message kind for inbound frames
	// (SNAPSHOT, UPDATE, UNRECOGNIZED), empty for outbound.
	Kind string `cbor:"4,keyasint,omitempty"`
}

// NewFrameEvent captures a frame payload, truncating long ones.
func NewFrameEvent(payload []byte) *FrameEvent {
	fe := &FrameEvent{Size: len(payload)}
	if len(payload) > MaxPayloadCapture {
		fe.Truncated = true
		payload = payload[:MaxPayloadCapture]
	}
	fe.Payload = append([]byte(nil), payload...)
	return fe
}

// StateChangeEvent describes a session state transition.
type StateChangeEvent struct {
	OldState string `cbor:"1,keyasint"`
	NewState string `cbor:"2,keyasint"`
	Reason   string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData describes an error at any layer.
type ErrorEventData struct {
	Message string `cbor:"1,keyasint"`
	Context string `cbor:"2,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an inbound frame.
	DirectionIn Direction = 0
	// DirectionOut indicates an outbound frame.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerTransport is the WebSocket/HTTP layer (raw frames).
	LayerTransport Layer = 0
	// LayerSession is the subscription session layer.
	LayerSession Layer = 1
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerSession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryConnection covers connect and disconnect events.
	CategoryConnection Category = 0
	// CategoryHandshake covers the subscribe handshake.
	CategoryHandshake Category = 1
	// CategoryFrame covers frames sent and received.
	CategoryFrame Category = 2
	// CategoryState covers session state transitions.
	CategoryState Category = 3
	// CategoryError covers errors at any layer.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryConnection:
		return "CONNECTION"
	case CategoryHandshake:
		return "HANDSHAKE"
	case CategoryFrame:
		return "FRAME"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
