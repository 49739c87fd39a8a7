// Package property defines the typed property values exchanged with Flux.
//
// Flux entities carry a flat map of named properties. On the wire a property
// value is an arbitrary JSON value; in this library it is a Value, a tagged
// union over null, boolean, number (float64), string, and structured JSON
// (objects and arrays).
//
// # Token Decoding
//
// Producers commonly supply properties as textual key=value tokens. The
// decoding rule is fixed and applied identically at every call site:
//
//  1. Split the token on the first "=" only. A token without "=" is a
//     format error.
//  2. Attempt a strict JSON parse of the value text.
//  3. On parse failure, keep the original text as a string value. The
//     fallback is the designed behavior, not an error.
//
// So "temperature=22.5" decodes to the number 22.5, "active=true" to the
// boolean true, and "status=online" to the string "online".
package property
