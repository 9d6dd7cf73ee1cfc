// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Ask the Audience server.

Ask the Audience is a live polling tool for in-person events: a host
creates a session, the room joins by 6-digit code or QR, and everyone
votes A-D on the current question with results streaming back to the
host in real time.

# Starting the Server

Settings come from a .env file, environment variables, or CLI flags:

	go run . -p 3001 -origin http://localhost:5173

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 3001)
  - CLIENT_ORIGIN (-origin): Allowed browser origin and join URL base
  - ATA_AUDIENCE_CAP (-cap): Audience member soft cap (default: 35)
  - SUPABASE_URL / SUPABASE_ANON_KEY: Quiz content source; quiz
    loading is disabled when unset
  - ATA_QUIZ_TIMEOUT (-quiz-timeout): Quiz fetch deadline
  - ATA_ENABLE_HMAC / ATA_HMAC_SECRET: Sign issued voter tokens
  - ATA_ENABLE_RATE_LIMIT: Per-IP join/vote rate limiting

# Architecture

The server keeps all session state in memory and is organized around
dependency injection:

  - session: Sessions, rounds, tallies, scores, and the quiz cursor
  - realtime: WebSocket hub with host and audience rooms per session
  - handlers: REST handlers for lifecycle, scoring, and quiz loading
  - quizstore: Quiz content fetched from a Supabase PostgREST source
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Wire types for REST and WebSocket messages
  - auth: Join codes, voter tokens, and token signing
  - ratelimit: Per-IP operation limiter
  - qrgen: Join QR codes as data URLs
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
