// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/danielhkuo/ask-the-audience/middleware"
	"github.com/danielhkuo/ask-the-audience/models"
	"github.com/danielhkuo/ask-the-audience/session"
)

// ServeWS upgrades an HTTP request to a WebSocket connection and starts
// its pumps. The connection is unbound until its first host:subscribe
// or successful audience:join.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// Non-browser clients send no Origin header.
			return origin == "" || origin == h.cfg.ClientOrigin
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
		ip:   middleware.GetClientIP(r),
	}
	slog.Info("websocket connected", "conn", c.id, "ip", c.ip)

	go c.writePump()
	c.readPump()
}

// handleMessage dispatches one inbound envelope. Host operations act on
// the session the connection subscribed to; audience operations carry
// their own session id until the connection is bound by a join.
func (h *Hub) handleMessage(c *client, data []byte) {
	var msg models.ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		slog.Info("unparseable message", "conn", c.id, "error", err)
		return
	}

	switch msg.Type {
	case models.MsgHostSubscribe:
		h.handleHostSubscribe(c, msg)
	case models.MsgSetVoting:
		h.withHostSession(c, func(sess *session.Session) {
			if msg.VotingOpen == nil {
				return
			}
			sess.SetVoting(*msg.VotingOpen)
			h.BroadcastAll(sess)
		})
	case models.MsgNextRound:
		h.withHostSession(c, func(sess *session.Session) {
			sess.NextRound()
			h.BroadcastAll(sess)
		})
	case models.MsgPrevRound:
		h.withHostSession(c, func(sess *session.Session) {
			sess.PrevRound()
			h.BroadcastAll(sess)
		})
	case models.MsgResetRound:
		h.withHostSession(c, func(sess *session.Session) {
			sess.ResetCurrentRound()
			h.BroadcastAll(sess)
		})
	case models.MsgReveal:
		h.withHostSession(c, func(sess *session.Session) {
			if err := sess.Reveal(); err != nil {
				slog.Info("reveal ignored", "conn", c.id, "error", err)
				return
			}
			h.BroadcastAll(sess)
		})
	case models.MsgAudienceJoin:
		h.handleAudienceJoin(c, msg)
	case models.MsgAudienceVote:
		h.handleAudienceVote(c, msg)
	default:
		slog.Info("unknown message type", "conn", c.id, "type", msg.Type)
	}
}

func (h *Hub) handleHostSubscribe(c *client, msg models.ClientMessage) {
	sess, err := h.store.Get(msg.SessionID)
	if err != nil {
		slog.Info("host subscribe to missing session", "conn", c.id, "session", msg.SessionID)
		return
	}
	prevID, prevAudience := h.registerHost(c, sess.ID)

	// Direct snapshot so the host renders without waiting for the next
	// state change.
	snap := sess.Snapshot(h.AudienceCount(sess.ID))
	h.sendOrDrop(c, models.StateUpdateMessage{Type: models.MsgStateUpdate, StateSnapshot: snap})
	h.refreshLeftRoom(prevID, prevAudience)
}

func (h *Hub) handleAudienceJoin(c *client, msg models.ClientMessage) {
	if !h.limiter.Allow(c.ip, "join") {
		h.sendOrDrop(c, models.JoinAckMessage{Type: models.MsgJoinAck, Error: models.CodeRateLimited})
		return
	}

	sess, err := h.store.Get(msg.SessionID)
	if err != nil {
		h.sendOrDrop(c, models.JoinAckMessage{Type: models.MsgJoinAck, Error: models.CodeNotFound})
		return
	}

	presented := msg.ClientAck
	if presented != "" && h.cfg.EnableHMAC && !h.signer.Verify(presented, msg.Sig) {
		// A bad signature on a presented ack is treated as no ack at
		// all rather than a hard failure: the client just joins fresh.
		presented = ""
	}

	info, err := sess.Join(presented, h.cfg.AudienceCap)
	if err != nil {
		h.sendOrDrop(c, models.JoinAckMessage{Type: models.MsgJoinAck, Error: session.ErrorCode(err)})
		return
	}

	prevID, prevAudience := h.registerAudience(c, sess.ID, info.ClientAck)

	ack := models.JoinAckMessage{
		Type:       models.MsgJoinAck,
		ClientAck:  info.ClientAck,
		RoundID:    info.RoundID,
		VotingOpen: info.VotingOpen,
		HasVoted:   info.HasVoted,
		ResetSeq:   info.ResetSeq,
	}
	if h.cfg.EnableHMAC {
		ack.Sig = h.signer.Sign(info.ClientAck)
	}
	h.sendOrDrop(c, ack)

	// Send the full audience view too so a joiner sees the current
	// question immediately, then let the host see the new count.
	h.sendOrDrop(c, models.AudienceStateMessage{Type: models.MsgAudienceState, AudienceState: sess.AudienceState()})
	h.BroadcastHost(sess)
	if prevID != sess.ID {
		h.refreshLeftRoom(prevID, prevAudience)
	}
}

// refreshLeftRoom updates the host display of a session an audience
// member just moved away from, so its live count drops immediately.
func (h *Hub) refreshLeftRoom(prevSessionID string, prevAudience bool) {
	if !prevAudience || prevSessionID == "" {
		return
	}
	if sess, err := h.store.Get(prevSessionID); err == nil {
		h.BroadcastHost(sess)
	}
}

func (h *Hub) handleAudienceVote(c *client, msg models.ClientMessage) {
	if !h.limiter.Allow(c.ip, "vote") {
		h.sendOrDrop(c, models.VoteAckMessage{Type: models.MsgVoteAck, Error: models.CodeRateLimited})
		return
	}

	ack := msg.ClientAck
	if ack == "" {
		ack = c.clientAck
	}
	if h.cfg.EnableHMAC && !h.signer.Verify(ack, msg.Sig) {
		h.sendOrDrop(c, models.VoteAckMessage{Type: models.MsgVoteAck, Error: models.CodeBadSig})
		return
	}

	sessionID := msg.SessionID
	if sessionID == "" {
		sessionID = c.sessionID
	}
	sess, err := h.store.Get(sessionID)
	if err != nil {
		h.sendOrDrop(c, models.VoteAckMessage{Type: models.MsgVoteAck, Error: models.CodeNotFound})
		return
	}

	if err := sess.SubmitVote(msg.RoundID, ack, msg.Option); err != nil {
		h.sendOrDrop(c, models.VoteAckMessage{Type: models.MsgVoteAck, Error: session.ErrorCode(err)})
		return
	}

	h.sendOrDrop(c, models.VoteAckMessage{Type: models.MsgVoteAck, OK: true})
	h.BroadcastHost(sess)
}

// withHostSession runs fn against the session the host connection is
// subscribed to. Operations from unsubscribed connections are ignored.
func (h *Hub) withHostSession(c *client, fn func(*session.Session)) {
	if c.role != roleHost || c.sessionID == "" {
		slog.Info("host operation from unsubscribed connection", "conn", c.id)
		return
	}
	sess, err := h.store.Get(c.sessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			slog.Error("session lookup failed", "error", err, "session", c.sessionID)
		}
		return
	}
	fn(sess)
}

// sendOrDrop enqueues a direct reply, disconnecting the client when its
// buffer is full.
func (h *Hub) sendOrDrop(c *client, v any) {
	if c.enqueue(v) {
		return
	}
	h.mu.Lock()
	h.dropLocked(c)
	h.mu.Unlock()
}
