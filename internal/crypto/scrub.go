package crypto

import "strings"

// RedactionMarker replaces any value stored under a credential-shaped key.
const RedactionMarker = "[REDACTED]"

// sensitiveKeyFragments are matched against lower-cased object keys.
var sensitiveKeyFragments = []string{
	"token",
	"secret",
	"password",
	"authorization",
	"api_key",
	"apikey",
}

// ScrubTokens recursively redacts credential-shaped fields from a JSON-like
// value (maps, slices, scalars). It must run over every raw external payload
// before the payload is persisted or logged: vendor API responses sometimes
// echo credentials back and this is the last line of defense.
//
// The input is never modified; maps and slices are copied. Running the scrub
// twice yields the same result.
func ScrubTokens(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		scrubbed := make(map[string]interface{}, len(v))
		for key, val := range v {
			if isSensitiveKey(key) {
				scrubbed[key] = RedactionMarker
				continue
			}
			scrubbed[key] = ScrubTokens(val)
		}
		return scrubbed
	case []interface{}:
		scrubbed := make([]interface{}, len(v))
		for i, val := range v {
			scrubbed[i] = ScrubTokens(val)
		}
		return scrubbed
	default:
		// Scalars and nil pass through unchanged
		return value
	}
}

func isSensitiveKey(key string) bool {
	lowered := strings.ToLower(key)
	for _, fragment := range sensitiveKeyFragments {
		if strings.Contains(lowered, fragment) {
			return true
		}
	}
	return false
}
