// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// sessionCodeSpace is the number of distinct 6-digit codes (100000-999999).
const sessionCodeSpace = 900000

// GenerateSessionCode creates a 6-digit numeric session code. The space is
// small enough to type from a projector slide; callers must check for
// collisions against live sessions and retry.
func GenerateSessionCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(sessionCodeSpace))
	if err != nil {
		return "", fmt.Errorf("failed to generate session code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// GenerateClientAck creates a 128-bit random hex token identifying one
// audience member. Clients persist it locally and replay it on reconnect
// so a page reload does not grant a second vote.
func GenerateClientAck() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate client ack: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// AckSigner signs and verifies client acks with HMAC-SHA256. Signing is an
// optional hardening layer; the server only enforces it when configured to.
type AckSigner struct {
	secret []byte
}

// NewAckSigner creates a signer for the given secret. An empty secret is
// replaced with a random per-process one, which invalidates signatures
// across restarts.
func NewAckSigner(secret string) (*AckSigner, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate signing secret: %w", err)
		}
	}
	return &AckSigner{secret: key}, nil
}

// Sign returns the hex HMAC-SHA256 signature of ack.
func (s *AckSigner) Sign(ack string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(ack))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether sig is a valid signature for ack.
func (s *AckSigner) Verify(ack, sig string) bool {
	expected := s.Sign(ack)
	return hmac.Equal([]byte(sig), []byte(expected))
}
