// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package qrgen

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the rendered PNG edge in pixels, sized for phone cameras
// pointed at a projector.
const qrSize = 320

// DataURL renders url as a PNG QR code and returns it as a data URL the
// frontend can drop into an <img> src.
func DataURL(url string) (string, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("qr generation failed: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
