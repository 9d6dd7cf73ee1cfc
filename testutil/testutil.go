// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/danielhkuo/ask-the-audience/auth"
	"github.com/danielhkuo/ask-the-audience/cliparse"
	"github.com/danielhkuo/ask-the-audience/quizstore"
	"github.com/danielhkuo/ask-the-audience/ratelimit"
	"github.com/danielhkuo/ask-the-audience/realtime"
	"github.com/danielhkuo/ask-the-audience/session"
)

// GetTestConfig returns a config suitable for tests: hardening
// scaffolds off, defaults everywhere else.
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3001,
		ClientOrigin: "http://localhost:5173",
		AudienceCap:  cliparse.DefaultAudienceCap,
		QuizTimeout:  time.Second,
	}
}

// NewHub wires a hub with a fresh store, a disabled rate limiter, and
// a random-secret signer.
func NewHub(t *testing.T, cfg cliparse.Config) (*realtime.Hub, *session.Store) {
	t.Helper()
	signer, err := auth.NewAckSigner(cfg.HMACSecret)
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}
	store := session.NewStore()
	return realtime.NewHub(store, cfg, ratelimit.New(cfg.EnableRateLimit), signer), store
}

// StubQuizSource satisfies handlers.QuizSource with canned content.
type StubQuizSource struct {
	Available bool
	Quiz      quizstore.Quiz
	Err       error
}

func (s *StubQuizSource) Configured() bool { return s.Available }

func (s *StubQuizSource) FetchQuiz(context.Context, string) (quizstore.Quiz, error) {
	if s.Err != nil {
		return quizstore.Quiz{}, s.Err
	}
	return s.Quiz, nil
}
