package wire

import "github.com/EckmanTechLLC/flux-go/pkg/state"

// Frame type tags used on the wire.
const (
	TypeSubscribe = "subscribe"
	TypeSnapshot  = "snapshot"
	TypeUpdate    = "update"
)

// MessageType identifies the kind of an inbound message.
type MessageType uint8

const (
	// MessageUnrecognized is a frame that could not be interpreted.
	MessageUnrecognized MessageType = iota

	// MessageSnapshot is a full-state snapshot for one entity.
	MessageSnapshot

	// MessageUpdate is an incremental state change for one entity.
	MessageUpdate
)

// String returns the message type name.
func (t MessageType) String() string {
	switch t {
	case MessageSnapshot:
		return "SNAPSHOT"
	case MessageUpdate:
		return "UPDATE"
	case MessageUnrecognized:
		return "UNRECOGNIZED"
	default:
		return "UNKNOWN"
	}
}

// Message is an inbound subscription frame. Exactly three types implement
// it: Snapshot, Update, and Unrecognized.
type Message interface {
	// Type returns the message kind.
	Type() MessageType

	// message restricts implementations to this package.
	message()
}

// Snapshot carries the full current state of one entity, sent once per
// entity in scope immediately after the subscribe handshake.
type Snapshot struct {
	Entity state.Entity
}

// Type returns MessageSnapshot.
func (Snapshot) Type() MessageType { return MessageSnapshot }

func (Snapshot) message() {}

// Update carries an incremental state change for one entity. The property
// set is complete; it fully replaces the previous state for that entity.
type Update struct {
	Entity state.Entity
}

// Type returns MessageUpdate.
func (Update) Type() MessageType { return MessageUpdate }

func (Update) message() {}

// Unrecognized is a frame that failed to parse as JSON or whose type tag
// named no known kind. The raw payload is preserved for caller-level
// handling and logging.
type Unrecognized struct {
	Raw []byte
}

// Type returns MessageUnrecognized.
func (Unrecognized) Type() MessageType { return MessageUnrecognized }

func (Unrecognized) message() {}

// Compile-time sum membership checks.
var (
	_ Message = Snapshot{}
	_ Message = Update{}
	_ Message = Unrecognized{}
)
