package property

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatError reports a malformed key=value token. It is a caller input
// error: immediate, local, never retried.
type FormatError struct {
	// Token is the offending input.
	Token string
}

// Error describes the malformed token.
func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid property format %q: expected key=value", e.Token)
}

// Decode converts value text into a typed Value. The text is first parsed
// as a strict JSON value; on any parse failure the original text is kept
// as a string value. The fallback is never an error.
func Decode(text string) Value {
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return String(text)
	}
	return fromDecoded(raw)
}

// ParseToken splits a key=value token and decodes the value part.
// The split is on the first "=" only, so a value may itself contain "=".
// A token without a separator returns a *FormatError.
func ParseToken(token string) (string, Value, error) {
	key, rest, found := strings.Cut(token, "=")
	if !found {
		return "", Value{}, &FormatError{Token: token}
	}
	return key, Decode(rest), nil
}

// ParseTokens decodes a list of key=value tokens into a Map.
// Later tokens overwrite earlier ones with the same key.
func ParseTokens(tokens []string) (Map, error) {
	props := make(Map, len(tokens))
	for _, token := range tokens {
		key, value, err := ParseToken(token)
		if err != nil {
			return nil, err
		}
		props[key] = value
	}
	return props, nil
}
