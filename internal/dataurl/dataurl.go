// Package dataurl encodes and decodes the self-contained data URI payloads
// the reporting backend uses for annotated images and generated documents.
package dataurl

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encode wraps raw bytes in a base64 data URI with the given MIME type
func Encode(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// Decode splits a data URI into its MIME type and decoded payload
func Decode(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}

	header, encoded, found := strings.Cut(uri, ",")
	if !found {
		return "", nil, fmt.Errorf("malformed data URI: missing payload separator")
	}

	mimeType := strings.TrimPrefix(header, "data:")
	mimeType = strings.TrimSuffix(mimeType, ";base64")

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("malformed data URI payload: %w", err)
	}

	return mimeType, data, nil
}

// ImageExt returns the file extension for an image data URI, defaulting to
// jpeg when the header names no known type
func ImageExt(uri string) string {
	header, _, _ := strings.Cut(uri, ",")
	if strings.Contains(header, "png") {
		return "png"
	}
	return "jpeg"
}
