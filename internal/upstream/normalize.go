package upstream

import (
	"bytes"
	"encoding/json"
)

// maxUnwrapDepth bounds how many data envelopes are peeled. The backend nests
// payloads inconsistently (`data.data` vs `data`); two levels covers every
// observed shape.
const maxUnwrapDepth = 2

// normalizePayload strips the backend's success envelopes so callers always
// decode the same shape regardless of which handler produced the response.
// Shape ambiguity stops here; it never reaches the view-model layer.
func normalizePayload(raw []byte) []byte {
	current := bytes.TrimSpace(raw)
	for i := 0; i < maxUnwrapDepth; i++ {
		inner, ok := unwrapOnce(current)
		if !ok {
			break
		}
		current = inner
	}
	return current
}

func unwrapOnce(raw []byte) ([]byte, bool) {
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, false
	}
	data, ok := envelope["data"]
	if !ok || len(data) == 0 {
		return nil, false
	}
	// Envelopes carry at most the payload plus success/message chrome; a
	// "data" key sitting next to domain fields is part of the payload itself.
	for key := range envelope {
		switch key {
		case "data", "success", "message", "status":
		default:
			return nil, false
		}
	}
	return bytes.TrimSpace(data), true
}
