// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package middleware provides HTTP helpers shared by every handler:
// request logging, JSON response encoding, structured error responses,
// body parsing, CORS for the configured client origin, and client IP
// extraction behind proxies.
//
// ErrorResponse always carries a machine-readable error code alongside
// the human message so the client can branch on failures without
// string matching.
package middleware
