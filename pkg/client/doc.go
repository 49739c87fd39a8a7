// Package client implements the HTTP surface of a Flux service: event
// publishing and entity state queries.
//
// # Operations
//
// Publish POSTs an event built with pkg/event to /api/events and returns
// the service acknowledgement. Entity and Entities GET entity snapshots
// from /api/state/entities. Entity IDs are treated as opaque strings;
// namespaced IDs such as "building-a/sensor-1" are passed through
// verbatim.
//
// # Errors
//
// Failures are classified: ErrUnreachable for refused or unresolvable
// addresses, ErrTimeout for an elapsed request deadline, ErrNotFound for
// a 404 on a single-entity query, and *ServerError for every other
// non-2xx response. ServerError carries the HTTP status and the response
// body, pretty-printed when it is JSON. No operation retries.
package client
