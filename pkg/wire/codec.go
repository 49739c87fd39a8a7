package wire

import (
	"encoding/json"

	"github.com/EckmanTechLLC/flux-go/pkg/state"
)

// SubscribeRequest is the single outbound handshake frame of a session.
type SubscribeRequest struct {
	Type string `json:"type"`

	// EntityID narrows the subscription to one entity. Empty subscribes
	// to all entities and is omitted from the frame.
	EntityID string `json:"entityId,omitempty"`
}

// EncodeSubscribe builds the subscribe frame. An empty entityID requests
// all entities.
func EncodeSubscribe(entityID string) ([]byte, error) {
	return json.Marshal(SubscribeRequest{Type: TypeSubscribe, EntityID: entityID})
}

// inboundFrame is the envelope shape probed during classification.
type inboundFrame struct {
	Type   string          `json:"type"`
	Entity json.RawMessage `json:"entity"`
}

// DecodeMessage classifies an inbound frame. It never fails: malformed
// JSON, an unknown type tag, or an undecodable entity all yield an
// Unrecognized message carrying the raw payload.
func DecodeMessage(data []byte) Message {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return Unrecognized{Raw: data}
	}

	switch frame.Type {
	case TypeSnapshot:
		entity, ok := decodeEntity(frame.Entity)
		if !ok {
			return Unrecognized{Raw: data}
		}
		return Snapshot{Entity: entity}
	case TypeUpdate:
		entity, ok := decodeEntity(frame.Entity)
		if !ok {
			return Unrecognized{Raw: data}
		}
		return Update{Entity: entity}
	default:
		return Unrecognized{Raw: data}
	}
}

func decodeEntity(raw json.RawMessage) (state.Entity, bool) {
	if len(raw) == 0 {
		return state.Entity{}, false
	}
	var e state.Entity
	if err := json.Unmarshal(raw, &e); err != nil {
		return state.Entity{}, false
	}
	return e, true
}
