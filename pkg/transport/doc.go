// Package transport provides the WebSocket transport under a subscription
// session.
//
// The transport layer handles:
//   - Deriving the subscription endpoint from the service base URL
//     (http→ws, https→wss, path suffix /api/ws)
//   - Dialing with a bounded connect timeout, classifying failures as
//     unreachable versus timed out
//   - Frame send/receive with a bounded per-receive wait
//   - Deterministic close
//
// # Receive Model
//
// A connection runs one internal read loop that delivers inbound frames to
// Receive callers. Receive blocks for at most the given timeout and returns
// ErrReceiveTimeout when no frame arrived; the caller treats that as a
// benign tick, not a failure. Closing the connection unblocks any pending
// Receive immediately, so cancellation latency is bounded by one timeout
// interval at worst.
//
// A Conn is exclusively owned by its session and must not be shared.
package transport
