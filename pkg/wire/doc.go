// Package wire defines the JSON frame types of the Flux subscription
// protocol.
//
// # Outbound
//
// A session sends exactly one subscribe request after the WebSocket
// handshake:
//
//	{"type":"subscribe"}
//	{"type":"subscribe","entityId":"sensor-1"}
//
// # Inbound
//
// Inbound frames are classified into a closed set of message kinds:
//
//   - Snapshot: {"type":"snapshot","entity":{...}} — the full current
//     state of one entity, sent once per entity in scope after the
//     handshake or on resync.
//   - Update: {"type":"update","entity":{...}} — a complete replacement
//     property set for one entity following a prior snapshot.
//   - Unrecognized: anything else. Frames that fail to parse as JSON, or
//     whose type field is neither "snapshot" nor "update", are passed
//     through opaquely, never dropped silently. One bad frame must not
//     terminate an otherwise healthy stream, so classification never
//     returns an error.
//
// Message is a sum type: a switch over the three concrete kinds is
// exhaustive, keeping "unknown frame shape" a representable state rather
// than a runtime failure.
package wire
