// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ratelimit provides a soft per-IP, per-operation rate limiter for
the WebSocket join/vote handlers.

Each ip:op pair gets its own token bucket (golang.org/x/time/rate) with a
budget of roughly 20 operations per 10 seconds. The limiter is a
hardening scaffold: it stays disabled unless ATA_ENABLE_RATE_LIMIT is
set, and a disabled limiter allows everything.

Idle buckets are pruned opportunistically once the map grows past a
threshold, keeping memory bounded for long-running processes.
*/
package ratelimit
