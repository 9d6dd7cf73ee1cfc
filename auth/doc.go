// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth issues identifiers and signs client acks.

# Identifiers

Two kinds of identifiers exist, both from crypto/rand:

  - Session codes: 6-digit numeric, human-typeable. The space is small,
    so the session store checks for collisions and retries.
  - Client acks: 128-bit hex tokens, one per audience member. Large
    enough that guessing one within an event's duration is infeasible.

Generators only return fresh values; recording them is the caller's job.

# Ack signing

AckSigner provides HMAC-SHA256 signing of client acks:

	signer, _ := auth.NewAckSigner(secret)
	sig := signer.Sign(ack)
	ok := signer.Verify(ack, sig)

Signature enforcement is disabled by default and switched on via
configuration (see cliparse).
*/
package auth
