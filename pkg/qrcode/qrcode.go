package qrcode

import (
	"encoding/base64"
	"fmt"

	skipqr "github.com/skip2/go-qrcode"
)

// DefaultSize is used when a caller passes a zero or negative size.
const DefaultSize = 256

// Generate renders content as a PNG QR code, size pixels square, with
// medium error correction.
func Generate(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := skipqr.Encode(content, skipqr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

// GenerateBase64Image renders content as a QR code and returns it as a
// data: URI suitable for direct embedding in an <img> src attribute.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
