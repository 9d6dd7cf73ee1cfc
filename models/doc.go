// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and wire types for the API.

# Vocabulary

Option letters and team identifiers are fixed:

	OptionA..OptionD = "A".."D"
	TeamA, TeamB     = "A", "B"

ValidOption and ValidTeam check membership.

# State views

Two views of a session travel over the WebSocket channel:

  - StateSnapshot: full host view (tally, scores, audience count,
    question, reveal)
  - AudienceState: reduced audience view (round id, voting flag, scores,
    reset sequence, question, reveal)

Per-option correctness flags are never part of either view; reveal
information is delivered as a derived set of correct letters in
RevealView once the host reveals.

# WebSocket protocol

Clients send ClientMessage envelopes distinguished by Type (Msg*
constants). The server broadcasts StateUpdateMessage to the host room and
AudienceStateMessage to the audience room, and replies directly with
JoinAckMessage / VoteAckMessage.

# Error codes

Failures are reported with stable machine codes (Code* constants) in
ErrorResponse bodies and in the Error field of ack messages. Codes are
only ever sent to the acting client.
*/
package models
