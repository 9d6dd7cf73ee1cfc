// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ratelimit

import "testing"

func TestDisabledAllowsEverything(t *testing.T) {
	l := New(false)
	for i := 0; i < 1000; i++ {
		if !l.Allow("10.0.0.1", "vote") {
			t.Fatal("Disabled limiter blocked a request")
		}
	}
}

func TestBurstThenBlock(t *testing.T) {
	l := New(true)
	allowed := 0
	for i := 0; i < defaultBurst*2; i++ {
		if l.Allow("10.0.0.1", "vote") {
			allowed++
		}
	}
	if allowed < defaultBurst {
		t.Errorf("Expected at least the burst of %d allowed, got %d", defaultBurst, allowed)
	}
	if allowed >= defaultBurst*2 {
		t.Error("Limiter never blocked despite exceeding the burst")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(true)
	for i := 0; i < defaultBurst*2; i++ {
		l.Allow("10.0.0.1", "vote")
	}
	// A different IP and a different op each get their own budget.
	if !l.Allow("10.0.0.2", "vote") {
		t.Error("Different IP should have its own bucket")
	}
	if !l.Allow("10.0.0.1", "join") {
		t.Error("Different op should have its own bucket")
	}
}
