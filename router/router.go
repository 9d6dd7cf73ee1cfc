// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ask-the-audience/cliparse"
	"github.com/danielhkuo/ask-the-audience/handlers"
	"github.com/danielhkuo/ask-the-audience/middleware"
	"github.com/danielhkuo/ask-the-audience/realtime"
	"github.com/danielhkuo/ask-the-audience/session"
)

func NewRouter(store *session.Store, cfg cliparse.Config, hub *realtime.Hub, quiz handlers.QuizSource) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(store, cfg, hub)
	quizHandler := handlers.NewQuizHandler(store, quiz, hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session lifecycle (host operations)
	mux.HandleFunc("POST /api/session", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /api/session/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("POST /api/session/{id}/reset", middleware.WithLogging(sessionHandler.ResetRound))
	mux.HandleFunc("POST /api/session/{id}/score", middleware.WithLogging(sessionHandler.Score))

	// Quiz content
	mux.HandleFunc("POST /api/quiz/validate", middleware.WithLogging(quizHandler.ValidateQuiz))
	mux.HandleFunc("POST /api/session/{id}/loadQuiz", middleware.WithLogging(quizHandler.LoadQuiz))

	// Real-time rooms
	mux.HandleFunc("GET /ws", hub.ServeWS)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ask-the-audience API v1"))
	})

	return middleware.CORS(cfg.ClientOrigin, mux)
}
