// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strconv"
	"testing"
)

func TestGenerateSessionCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateSessionCode()
		if err != nil {
			t.Fatalf("GenerateSessionCode failed: %v", err)
		}
		if len(code) != 6 {
			t.Errorf("Expected 6-digit code, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Errorf("Code %q is not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Errorf("Code %d outside expected range", n)
		}
	}
}

func TestGenerateClientAck(t *testing.T) {
	ack, err := GenerateClientAck()
	if err != nil {
		t.Fatalf("GenerateClientAck failed: %v", err)
	}
	if len(ack) != 32 {
		t.Errorf("Expected 32 hex chars (128 bits), got %d: %q", len(ack), ack)
	}
	for _, c := range ack {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Errorf("Ack contains non-hex character %q", c)
		}
	}
}

func TestGenerateClientAckUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ack, err := GenerateClientAck()
		if err != nil {
			t.Fatalf("GenerateClientAck failed: %v", err)
		}
		if seen[ack] {
			t.Fatalf("Duplicate ack generated: %q", ack)
		}
		seen[ack] = true
	}
}

func TestAckSignerSignVerify(t *testing.T) {
	signer, err := NewAckSigner("test-secret")
	if err != nil {
		t.Fatalf("NewAckSigner failed: %v", err)
	}

	ack := "deadbeefdeadbeefdeadbeefdeadbeef"
	sig := signer.Sign(ack)

	if !signer.Verify(ack, sig) {
		t.Error("Valid signature failed verification")
	}
	if signer.Verify(ack, sig+"00") {
		t.Error("Tampered signature passed verification")
	}
	if signer.Verify("other-ack", sig) {
		t.Error("Signature for different ack passed verification")
	}
}

func TestAckSignerDeterministic(t *testing.T) {
	signer, err := NewAckSigner("test-secret")
	if err != nil {
		t.Fatalf("NewAckSigner failed: %v", err)
	}
	if signer.Sign("abc") != signer.Sign("abc") {
		t.Error("Same input produced different signatures")
	}
}

func TestAckSignerRandomSecret(t *testing.T) {
	// Empty secret gets a random per-process one; signatures still verify
	// within the same signer but differ across signers.
	a, err := NewAckSigner("")
	if err != nil {
		t.Fatalf("NewAckSigner failed: %v", err)
	}
	b, err := NewAckSigner("")
	if err != nil {
		t.Fatalf("NewAckSigner failed: %v", err)
	}

	ack := "cafebabe"
	if !a.Verify(ack, a.Sign(ack)) {
		t.Error("Random-secret signer failed to verify its own signature")
	}
	if a.Sign(ack) == b.Sign(ack) {
		t.Error("Two random-secret signers produced identical signatures")
	}
}
