// Package event builds the envelopes published to Flux.
//
// An Event is an immutable record assembled once per publish call: logical
// stream, producer source, entity ID, a property map, and optional ordering
// key and schema tag. The timestamp is stamped from the wall clock at build
// time and is never supplied by the caller.
//
// # Wire Form
//
// Events serialize to the shape the Flux ingestion API expects:
//
//	{
//	  "stream":    "sensors",
//	  "source":    "demo",
//	  "timestamp": 1704067200000,
//	  "payload":   {"entity_id": "sensor-1", "properties": {...}},
//	  "key":       "...",        // only when set
//	  "schema":    "..."         // only when set
//	}
//
// Field names and casing are dictated by the service: the publish payload
// uses entity_id while entity responses elsewhere use id. Absent key and
// schema are omitted entirely, never sent as null.
package event
