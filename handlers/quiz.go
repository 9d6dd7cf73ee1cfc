// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ask-the-audience/middleware"
	"github.com/danielhkuo/ask-the-audience/models"
	"github.com/danielhkuo/ask-the-audience/quizstore"
	"github.com/danielhkuo/ask-the-audience/session"
)

// QuizSource fetches prepared quiz content by share code. Satisfied by
// quizstore.Client.
type QuizSource interface {
	Configured() bool
	FetchQuiz(ctx context.Context, code string) (quizstore.Quiz, error)
}

type QuizHandler struct {
	store *session.Store
	quiz  QuizSource
	hub   Broadcaster
}

func NewQuizHandler(store *session.Store, quiz QuizSource, hub Broadcaster) *QuizHandler {
	return &QuizHandler{store: store, quiz: quiz, hub: hub}
}

// ValidateQuiz handles POST /api/quiz/validate
func (h *QuizHandler) ValidateQuiz(w http.ResponseWriter, r *http.Request) {
	code, ok := h.parseCode(w, r)
	if !ok {
		return
	}

	quiz, ok := h.fetch(w, r, code)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ValidateQuizResponse{
		OK:            true,
		Title:         quiz.Title,
		QuestionCount: len(quiz.Questions),
	})
}

// LoadQuiz handles POST /api/session/:id/loadQuiz
func (h *QuizHandler) LoadQuiz(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, err := h.store.Get(id)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Session not found")
		return
	}

	code, ok := h.parseCode(w, r)
	if !ok {
		return
	}

	// The fetch runs before the session is touched, so a slow or
	// failing source never holds a session lock.
	quiz, ok := h.fetch(w, r, code)
	if !ok {
		return
	}

	if err := sess.LoadQuiz(quiz.Questions); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeEmptyQuiz, "Quiz has no usable questions")
		return
	}

	h.hub.BroadcastAll(sess)
	slog.Info("quiz loaded", "session", sess.ID, "code", code, "questions", len(quiz.Questions))

	middleware.JSONResponse(w, http.StatusOK, models.LoadQuizResponse{
		Question:      sess.AudienceState().Question,
		QuestionCount: len(quiz.Questions),
	})
}

func (h *QuizHandler) parseCode(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req models.QuizCodeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeBadRequest, "Invalid JSON")
		return "", false
	}
	if req.Code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeBadRequest, "code is required")
		return "", false
	}
	return req.Code, true
}

// fetch retrieves the quiz and writes the appropriate error response on
// failure, mapping source conditions to distinct status codes so the
// host UI can tell "bad code" from "source down".
func (h *QuizHandler) fetch(w http.ResponseWriter, r *http.Request, code string) (quizstore.Quiz, bool) {
	if !h.quiz.Configured() {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, models.CodeQuizUnavailable, "Quiz source is not configured")
		return quizstore.Quiz{}, false
	}

	quiz, err := h.quiz.FetchQuiz(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, quizstore.ErrNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, models.CodeQuizNotFound, "No quiz with that code")
		case errors.Is(err, quizstore.ErrTimeout):
			middleware.ErrorResponse(w, http.StatusGatewayTimeout, models.CodeQuizTimeout, "Quiz source timed out")
		default:
			slog.Error("quiz fetch failed", "error", err, "code", code)
			middleware.ErrorResponse(w, http.StatusBadGateway, models.CodeQuizUnavailable, "Quiz source is unreachable")
		}
		return quizstore.Quiz{}, false
	}
	return quiz, true
}
