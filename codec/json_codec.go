package codec

import (
	"encoding/json"
	"fmt"
)

// JSONCodec handles stores that wrap their string results as JSON.
// A JSON string is unquoted; any other JSON value is shown as raw text.
type JSONCodec struct{}

func (c *JSONCodec) Decode(body []byte) (string, error) {
	if !json.Valid(body) {
		return "", fmt.Errorf("codec: invalid JSON body")
	}
	var text string
	if err := json.Unmarshal(body, &text); err != nil {
		return string(body), nil
	}
	return text, nil
}

func (c *JSONCodec) Type() CodecType {
	return CodecTypeJSON
}
