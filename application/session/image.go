package session

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/png" // screenshot payloads are PNG
	"os"
)

// Image wraps a raw screenshot byte buffer. The buffer is kept exactly
// as the transport produced it; decoding is on demand.
type Image struct {
	data []byte
}

// NewImage wraps raw image bytes.
func NewImage(data []byte) *Image {
	return &Image{data: data}
}

// Bytes returns the raw buffer.
func (i *Image) Bytes() []byte {
	return i.data
}

// Base64 returns the buffer re-encoded to base64.
func (i *Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.data)
}

// Decode parses the buffer through the stdlib image registry.
func (i *Image) Decode() (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(i.data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Save writes the raw buffer to path, as-is.
func (i *Image) Save(path string) error {
	if err := os.WriteFile(path, i.data, 0644); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
