// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers implements the REST surface: session lifecycle,
// score keeping, and quiz content loading. Real-time interaction
// (subscribe, join, vote) lives in package realtime; handlers that
// mutate a session push the change to its WebSocket rooms through the
// Broadcaster.
package handlers
