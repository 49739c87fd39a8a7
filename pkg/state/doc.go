// Package state models the entities served by Flux and the per-session
// reconciliation cache.
//
// Entities are owned and versioned by the service; this library only ever
// holds read-only copies. A Cache keeps the latest known copy per entity ID
// for the duration of one subscription session. Every applied message is a
// complete property set for that entity at that instant: the cache performs
// full replacement, last write wins, and never merges partial property sets.
//
// A Cache is private to one session and is discarded when the session
// closes. It is not a durable store and must not be relied upon across
// session restarts. Sessions never share a cache.
package state
