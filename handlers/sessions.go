// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ask-the-audience/cliparse"
	"github.com/danielhkuo/ask-the-audience/middleware"
	"github.com/danielhkuo/ask-the-audience/models"
	"github.com/danielhkuo/ask-the-audience/qrgen"
	"github.com/danielhkuo/ask-the-audience/session"
)

// Broadcaster pushes state changes made over REST out to the session's
// WebSocket rooms. Satisfied by realtime.Hub.
type Broadcaster interface {
	BroadcastHost(sess *session.Session)
	BroadcastAudience(sess *session.Session)
	BroadcastAll(sess *session.Session)
}

type SessionHandler struct {
	store *session.Store
	cfg   cliparse.Config
	hub   Broadcaster
}

func NewSessionHandler(store *session.Store, cfg cliparse.Config, hub Broadcaster) *SessionHandler {
	return &SessionHandler{store: store, cfg: cfg, hub: hub}
}

// CreateSession handles POST /api/session
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	// An empty body is fine; the session defaults to quiz mode.
	if r.ContentLength > 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeBadRequest, "Invalid JSON")
			return
		}
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ModeQuiz
	}
	if mode != models.ModeQuiz && mode != models.ModeSimple {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeBadRequest, "mode must be quiz or simple")
		return
	}

	sess, err := h.store.Create(mode)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.CodeInternal, "Failed to create session")
		return
	}

	resp, err := h.sessionResponse(sess)
	if err != nil {
		slog.Error("failed to encode join QR", "error", err, "session", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.CodeInternal, "Failed to create session")
		return
	}

	slog.Info("session created", "session", sess.ID, "mode", mode)
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// GetSession handles GET /api/session/:id
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	resp, err := h.sessionResponse(sess)
	if err != nil {
		slog.Error("failed to encode join QR", "error", err, "session", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.CodeInternal, "Failed to load session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ResetRound handles POST /api/session/:id/reset
func (h *SessionHandler) ResetRound(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	roundID, tally, resetSeq := sess.ResetCurrentRound()
	h.hub.BroadcastAll(sess)

	slog.Info("round reset", "session", sess.ID, "round", roundID)
	middleware.JSONResponse(w, http.StatusOK, models.ResetRoundResponse{
		RoundID:  roundID,
		Tally:    tally,
		ResetSeq: resetSeq,
	})
}

// Score handles POST /api/session/:id/score
func (h *SessionHandler) Score(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req models.ScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeBadRequest, "Invalid JSON")
		return
	}

	scores, awards, err := sess.AwardPoint(req.Team, req.Award)
	if err != nil {
		if errors.Is(err, session.ErrBadTeam) {
			middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeBadTeam, "team must be A or B")
			return
		}
		slog.Error("failed to award point", "error", err, "session", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.CodeInternal, "Failed to update score")
		return
	}

	h.hub.BroadcastAll(sess)
	middleware.JSONResponse(w, http.StatusOK, models.ScoreResponse{
		Scores:      scores,
		RoundAwards: awards,
	})
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.PathValue("id")
	sess, err := h.store.Get(id)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Session not found")
		return nil, false
	}
	return sess, true
}

// sessionResponse builds the create/get payload, generating and caching
// the join QR the first time it is needed.
func (h *SessionHandler) sessionResponse(sess *session.Session) (models.SessionResponse, error) {
	joinURL := h.cfg.ClientOrigin + "/join/" + sess.ID

	qr := sess.QRDataURL()
	if qr == "" {
		var err error
		qr, err = qrgen.DataURL(joinURL)
		if err != nil {
			return models.SessionResponse{}, err
		}
		sess.SetQRDataURL(qr)
	}

	return models.SessionResponse{
		SessionID: sess.ID,
		JoinURL:   joinURL,
		QRDataURL: qr,
		Mode:      sess.Mode,
	}, nil
}
