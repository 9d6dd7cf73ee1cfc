// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package qrgen renders join URLs as QR code data URLs.

The single entry point wraps skip2/go-qrcode:

	dataURL, err := qrgen.DataURL(joinURL)

The result is a base64 PNG data URL cached per session and regenerated
lazily on session lookup.
*/
package qrgen
