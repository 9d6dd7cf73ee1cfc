// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sync"

	"github.com/danielhkuo/ask-the-audience/auth"
)

// Store is the process-wide session registry. Sessions live until the
// process ends; there is no expiry path, an accepted tradeoff for
// short-lived events. The store's lock covers only the registry map;
// per-session state has its own mutex.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session under a fresh 6-digit code, retrying on
// the rare collision with a live session.
func (st *Store) Create(mode string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for {
		code, err := auth.GenerateSessionCode()
		if err != nil {
			return nil, err
		}
		if _, taken := st.sessions[code]; taken {
			continue
		}
		s := newSession(code, mode)
		st.sessions[code] = s
		return s, nil
	}
}

// Get looks up a session by code.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Remove drops a session from the registry. Unused by the server itself
// but kept for operational tooling and tests.
func (st *Store) Remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
