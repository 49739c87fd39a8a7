// Package format renders subscription messages and entity snapshots as
// text for logs and CLIs.
//
// Rendering is pure: no I/O, no colors, no locale handling. Property
// maps are rendered in sorted key order so output is deterministic.
// Updates render as a bracketed timestamp line, snapshots with a
// [SNAPSHOT] prefix and the property set as JSON, and unrecognized
// frames as indented JSON when the payload parses, raw text otherwise.
package format
