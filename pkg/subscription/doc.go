// Package subscription implements the Flux subscription session: a
// persistent connection yielding a cancellable stream of typed
// state-change notifications.
//
// # Lifecycle
//
// A session moves through a fixed set of states:
//
//	DISCONNECTED → CONNECTING → SUBSCRIBING → STREAMING → CLOSING → CLOSED
//
// with FAILED terminal from CONNECTING, SUBSCRIBING, or STREAMING. Open
// derives the WebSocket endpoint from the configured base URL, connects
// with a bounded timeout, and sends exactly one subscribe frame. The
// subscription scope (all entities, or one) is fixed for the session
// lifetime; changing it means closing and opening a new session.
//
// # Streaming
//
// Next returns inbound frames one at a time, classified as snapshot,
// update, or unrecognized, in strict arrival order. Snapshot and update
// frames are reconciled into the session's private cache before Next
// returns, so reading the cache after a notification always observes that
// notification applied. Both frame kinds replace the cached property set
// wholesale; there is no partial merge.
//
// An idle receive interval elapsing with no frame is not an error and is
// never surfaced; Next just checks for cancellation and keeps waiting.
// Worst-case cancellation latency is one receive-timeout interval
// (default one second), though closing the session unblocks a pending
// receive immediately.
//
// # Failure
//
// The session never retries. A failed connect reports unreachable or
// timed out; a transport failure during streaming reports how many frames
// were delivered first, so a peer that was never reachable and a peer
// that disconnected mid-stream are distinguishable. The caller decides
// whether to open a new session.
//
// Sessions share no state. Run independent sessions on separate
// goroutines for concurrent subscriptions.
package subscription
