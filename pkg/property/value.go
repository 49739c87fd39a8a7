package property

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindNull is an explicit JSON null.
	KindNull Kind = iota

	// KindBool is a JSON boolean.
	KindBool

	// KindNumber is a JSON number (double precision).
	KindNumber

	// KindString is a plain string.
	KindString

	// KindJSON is a structured JSON value (object or array).
	KindJSON
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindBool:
		return "BOOL"
	case KindNumber:
		return "NUMBER"
	case KindString:
		return "STRING"
	case KindJSON:
		return "JSON"
	default:
		return "UNKNOWN"
	}
}

// Value is a single property value: a tagged union over null, boolean,
// number, string, and structured JSON. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	j    any
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a numeric value.
func Number(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// JSON returns a structured value holding the given decoded JSON
// (map[string]any or []any as produced by encoding/json).
func JSON(v any) Value {
	return Value{kind: KindJSON, j: v}
}

// Kind returns the variant held by the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean variant. ok is false for other kinds.
func (v Value) AsBool() (b bool, ok bool) {
	return v.b, v.kind == KindBool
}

// AsNumber returns the numeric variant. ok is false for other kinds.
func (v Value) AsNumber() (n float64, ok bool) {
	return v.n, v.kind == KindNumber
}

// AsString returns the string variant. ok is false for other kinds.
func (v Value) AsString() (s string, ok bool) {
	return v.s, v.kind == KindString
}

// AsJSON returns the structured variant. ok is false for other kinds.
func (v Value) AsJSON() (j any, ok bool) {
	return v.j, v.kind == KindJSON
}

// Interface returns the underlying value as the natural Go type:
// nil, bool, float64, string, map[string]any, or []any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindJSON:
		return v.j
	default:
		return nil
	}
}

// Equal reports whether two values hold the same kind and content.
// Structured values are compared deeply.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	case KindJSON:
		return reflect.DeepEqual(v.j, other.j)
	default:
		return false
	}
}

// String renders the value for display. Numbers use the shortest
// representation, structured values render as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindNumber:
		return trimFloat(v.n)
	case KindString:
		return v.s
	case KindJSON:
		data, err := json.Marshal(v.j)
		if err != nil {
			return fmt.Sprintf("%v", v.j)
		}
		return string(data)
	default:
		return "unknown"
	}
}

// trimFloat formats a float the way encoding/json does, so display and
// wire forms agree (22.5 not 22.500000, 45 not 45.000000).
func trimFloat(n float64) string {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Sprintf("%v", n)
	}
	return string(data)
}

// MarshalJSON encodes the underlying value.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a JSON value into the matching variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = fromDecoded(raw)
	return nil
}

// fromDecoded classifies a value produced by encoding/json.
func fromDecoded(raw any) Value {
	switch val := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case string:
		return String(val)
	default:
		return JSON(val)
	}
}

// Map is a set of named property values, keyed by property name.
type Map map[string]Value

// Clone returns a shallow copy of the map. A nil map clones to an empty map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports whether two maps hold the same keys and values.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
