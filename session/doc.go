// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session holds the core state machine: sessions, rounds, the quiz
cursor, and the vote admission pipeline.

# Ownership

Store is the single process-wide registry (session code -> *Session). All
mutable state lives behind it; no other package mutates sessions or rounds
directly. Each Session serializes its own mutations with one mutex, so
concurrent votes, resets, and round changes can never lose updates. The
lock is never held across I/O: quiz content is fetched first, then applied
with LoadQuiz in one atomic step.

# Rounds

A Round maps client acks to chosen letters and keeps derived tally
counters. Invariants:

  - at most one ledger entry per ack
  - tally counters always sum to the ledger size
  - resetSeq strictly increases on every in-place reset

Rounds are kept when the host rewinds; revisiting a round id exposes its
original ledger.

# Vote admission

Session.SubmitVote applies checks in a fixed short-circuit order: voting
open -> round current -> ack known -> option valid -> not already voted.
The first failure wins and maps to a stable wire code via ErrorCode.

# Quiz cursor

Cursor overlays quiz questions on the round lifecycle: NextRound/PrevRound
move it in lockstep (clamped at either end) and clear any reveal. Reveal
letters are always derived from the current question's correctness flags,
never stored. Without a cursor the standalone question snapshot, when set,
drives the same outward view.
*/
package session
