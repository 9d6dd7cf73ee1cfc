// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"log/slog"
	"sync"

	"github.com/danielhkuo/ask-the-audience/auth"
	"github.com/danielhkuo/ask-the-audience/cliparse"
	"github.com/danielhkuo/ask-the-audience/models"
	"github.com/danielhkuo/ask-the-audience/ratelimit"
	"github.com/danielhkuo/ask-the-audience/session"
)

// Hub tracks which connections belong to which session room and fans
// state out to them. Sessions own their own state; the hub only routes.
//
// Each session has two rooms: the host room receives full StateSnapshot
// broadcasts including the live tally, the audience room receives the
// reduced AudienceState that never leaks per-round counts before the
// host shows them.
type Hub struct {
	store   *session.Store
	cfg     cliparse.Config
	limiter *ratelimit.Limiter
	signer  *auth.AckSigner

	mu       sync.RWMutex
	hosts    map[string]map[*client]bool
	audience map[string]map[*client]bool
}

func NewHub(store *session.Store, cfg cliparse.Config, limiter *ratelimit.Limiter, signer *auth.AckSigner) *Hub {
	return &Hub{
		store:    store,
		cfg:      cfg,
		limiter:  limiter,
		signer:   signer,
		hosts:    make(map[string]map[*client]bool),
		audience: make(map[string]map[*client]bool),
	}
}

// AudienceCount reports live audience connections for a session.
func (h *Hub) AudienceCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.audience[sessionID])
}

// BroadcastHost pushes the current full snapshot to every host
// connection of the session.
func (h *Hub) BroadcastHost(sess *session.Session) {
	snap := sess.Snapshot(h.AudienceCount(sess.ID))
	msg := models.StateUpdateMessage{Type: models.MsgStateUpdate, StateSnapshot: snap}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.hosts[sess.ID] {
		if !c.enqueue(msg) {
			h.dropLocked(c)
		}
	}
}

// BroadcastAudience pushes the reduced audience view to every audience
// connection of the session.
func (h *Hub) BroadcastAudience(sess *session.Session) {
	msg := models.AudienceStateMessage{Type: models.MsgAudienceState, AudienceState: sess.AudienceState()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.audience[sess.ID] {
		if !c.enqueue(msg) {
			h.dropLocked(c)
		}
	}
}

// BroadcastAll updates both rooms.
func (h *Hub) BroadcastAll(sess *session.Session) {
	h.BroadcastHost(sess)
	h.BroadcastAudience(sess)
}

// registerHost binds the connection to the session's host room, leaving
// any room it previously occupied first. Returns the prior binding so
// the caller can refresh the old session's audience count.
func (h *Hub) registerHost(c *client, sessionID string) (prevSessionID string, prevAudience bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	prevSessionID, prevAudience = c.sessionID, c.role == roleAudience
	h.unbindLocked(c)
	c.sessionID = sessionID
	c.role = roleHost
	if h.hosts[sessionID] == nil {
		h.hosts[sessionID] = make(map[*client]bool)
	}
	h.hosts[sessionID][c] = true
	return prevSessionID, prevAudience
}

// registerAudience binds the connection to the session's audience room,
// leaving any room it previously occupied first. Only called after a
// successful join, so a rejected connection never inflates the audience
// count. Returns the prior binding so the caller can refresh the old
// session's audience count.
func (h *Hub) registerAudience(c *client, sessionID, ack string) (prevSessionID string, prevAudience bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	prevSessionID, prevAudience = c.sessionID, c.role == roleAudience
	h.unbindLocked(c)
	c.sessionID = sessionID
	c.role = roleAudience
	c.clientAck = ack
	if h.audience[sessionID] == nil {
		h.audience[sessionID] = make(map[*client]bool)
	}
	h.audience[sessionID][c] = true
	return prevSessionID, prevAudience
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	wasAudience := c.role == roleAudience
	sessionID := c.sessionID
	h.dropLocked(c)
	h.mu.Unlock()

	// An audience departure changes the count shown to the host.
	if wasAudience && sessionID != "" {
		if sess, err := h.store.Get(sessionID); err == nil {
			h.BroadcastHost(sess)
		}
	}
}

// unbindLocked removes the client from whatever room it currently
// occupies, leaving the connection itself alive. Caller holds h.mu.
// Reports whether the client was actually in a room.
func (h *Hub) unbindLocked(c *client) bool {
	var room map[*client]bool
	switch c.role {
	case roleHost:
		room = h.hosts[c.sessionID]
	case roleAudience:
		room = h.audience[c.sessionID]
	}
	if room == nil || !room[c] {
		return false
	}
	delete(room, c)
	if len(room) == 0 {
		switch c.role {
		case roleHost:
			delete(h.hosts, c.sessionID)
		case roleAudience:
			delete(h.audience, c.sessionID)
		}
	}
	return true
}

// dropLocked removes the client from its room and tears its connection
// down. Caller holds h.mu. Idempotent: a client already removed (or
// never registered) is just closed.
func (h *Hub) dropLocked(c *client) {
	if h.unbindLocked(c) {
		slog.Info("connection dropped", "conn", c.id, "session", c.sessionID)
	}
	c.close()
}
