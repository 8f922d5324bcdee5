package node

import (
	"bytes"
	"encoding/json"
)

// Encode renders v as indented JSON without HTML escaping. Values that
// cannot be encoded produce an error string rather than a panic.
func Encode(v any) string {
	data, err := marshal(v)
	if err != nil {
		return "encode error: " + err.Error()
	}
	return string(data)
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses JSON text into v.
func Decode(text string, v any) error {
	return json.Unmarshal([]byte(text), v)
}
