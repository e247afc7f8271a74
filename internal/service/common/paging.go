package common

import (
	"encoding/base64"
	"fmt"
)

// EncodePageToken converts raw paging state to a URL-safe API token.
func EncodePageToken(state []byte) string {
	if len(state) == 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(state)
}

// DecodePageToken decodes an API token back to paging state bytes.
func DecodePageToken(token string) ([]byte, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode page token: %w", err)
	}
	return data, nil
}
