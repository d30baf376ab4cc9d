package javascript

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ObjectKeys returns the keys of a JSON object in document order. Decoding
// into a Go map loses that order. A null or empty document yields no keys.
func ObjectKeys(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// StringMap decodes a JSON object of strings, returning its keys in document
// order alongside the values.
func StringMap(raw json.RawMessage) ([]string, map[string]string, error) {
	keys, err := ObjectKeys(raw)
	if err != nil || len(keys) == 0 {
		return nil, nil, err
	}
	var values map[string]string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}
