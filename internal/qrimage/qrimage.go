// Package qrimage renders sealed EMV-QR payloads as PNG images.
package qrimage

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"

	"github.com/aayushgelal/emvqr"
)

// DefaultSize is the image width and height in pixels.
const DefaultSize = 256

// PNG encodes payload at medium error correction. Payloads whose CRC does
// not verify are refused.
func PNG(payload string, size int) ([]byte, error) {
	if err := emvqr.VerifyCRC(payload); err != nil {
		return nil, fmt.Errorf("refusing to render payload: %w", err)
	}
	if size <= 0 {
		size = DefaultSize
	}
	return qr.Encode(payload, qr.Medium, size)
}

// WriteFile renders payload to a PNG file at path.
func WriteFile(path, payload string, size int) error {
	if err := emvqr.VerifyCRC(payload); err != nil {
		return fmt.Errorf("refusing to render payload: %w", err)
	}
	if size <= 0 {
		size = DefaultSize
	}
	if err := qr.WriteFile(payload, qr.Medium, size, path); err != nil {
		return fmt.Errorf("failed to write QR image %s: %w", path, err)
	}
	return nil
}
