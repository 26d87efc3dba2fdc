package protocol

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrUnknownMessageType is returned for values that are not protocol messages
var ErrUnknownMessageType = errors.New("unknown message type")

// Marshal serializes a message to JSON
func Marshal(v any) ([]byte, error) {
	switch v.(type) {
	case *Request, *Snapshot, *Advice, *Error:
		return json.Marshal(v)
	default:
		return nil, ErrUnknownMessageType
	}
}

// Unmarshal deserializes JSON data into a message
func Unmarshal(data []byte, v any) error {
	switch v.(type) {
	case *Request, *Snapshot, *Advice, *Error:
		return json.Unmarshal(data, v)
	default:
		return ErrUnknownMessageType
	}
}

// PeekType returns the type field of an encoded message
func PeekType(data []byte) (string, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", fmt.Errorf("decoding message type: %w", err)
	}
	if envelope.Type == "" {
		return "", fmt.Errorf("message has no type")
	}
	return envelope.Type, nil
}
