// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package realtime fans session state out over WebSockets.
//
// Every session has two rooms. Host connections subscribe with
// host:subscribe and receive state:update frames carrying the full
// snapshot, live tally included. Audience connections enter with
// audience:join and receive audience:state frames that omit the tally
// until the host chooses to show results.
//
// Joins and votes get direct join:ack / vote:ack replies in addition
// to any room broadcast, so a client knows the fate of its own
// request even when the room state looks unchanged.
//
// The hub never blocks on a slow consumer: each connection has a
// bounded outbound buffer and is disconnected when the buffer fills.
package realtime
