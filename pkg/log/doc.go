// Package log records structured protocol events from the Flux client.
//
// The library never prints; it emits Events describing connection state
// changes, frames in and out, and errors, and applications choose a sink:
//
//   - FileLogger writes a compact CBOR stream suitable for later analysis.
//   - SlogAdapter forwards events to a log/slog logger for development.
//   - MultiLogger fans out to several sinks at once.
//   - NoopLogger (or a nil logger) disables logging entirely.
//
// Reader decodes a CBOR event stream back, optionally filtered by session,
// direction, layer, category, or time range.
//
// Events carry the session UUID so streams from concurrent sessions can be
// separated after the fact.
package log
