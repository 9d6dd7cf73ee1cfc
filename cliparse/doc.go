// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment.

Flags take precedence over environment variables; sensible defaults cover
local development:

  - PORT (-p): server port (default 3001)
  - CLIENT_ORIGIN (-origin): frontend origin for CORS and join links
    (default http://localhost:5173)
  - ATA_AUDIENCE_CAP (-cap): max audience members per session (default 35)
  - SUPABASE_URL (-supabase-url), SUPABASE_ANON_KEY (-supabase-key):
    quiz content store; optional, quiz loading is unavailable without them
  - ATA_QUIZ_TIMEOUT (-quiz-timeout): content lookup timeout (default 5s)

Hardening scaffolds are env-only and off by default:

  - ATA_ENABLE_HMAC + ATA_HMAC_SECRET: client-ack signature enforcement
  - ATA_ENABLE_RATE_LIMIT: per-IP soft rate limiting on join/vote
*/
package cliparse
