// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Roughly 20 operations per 10 seconds per ip:op key.
const (
	defaultRate  = rate.Limit(2)
	defaultBurst = 20
)

// Buckets idle longer than this are pruned once the map grows large.
const (
	idleCutoff     = 5 * time.Minute
	pruneThreshold = 1024
)

// Limiter applies a soft per-IP, per-operation rate limit. Disabled
// limiters allow everything, which is the default posture.
type Limiter struct {
	enabled bool
	limit   rate.Limit
	burst   int

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func New(enabled bool) *Limiter {
	return &Limiter{
		enabled: enabled,
		limit:   defaultRate,
		burst:   defaultBurst,
		buckets: make(map[string]*bucket),
	}
}

// Allow reports whether ip may perform op right now.
func (l *Limiter) Allow(ip, op string) bool {
	if !l.enabled {
		return true
	}

	key := ip + ":" + op
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
		if len(l.buckets) > pruneThreshold {
			l.pruneLocked(now)
		}
	}
	b.lastSeen = now
	return b.lim.Allow()
}

func (l *Limiter) pruneLocked(now time.Time) {
	cutoff := now.Add(-idleCutoff)
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}
