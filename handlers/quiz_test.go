// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielhkuo/ask-the-audience/models"
	"github.com/danielhkuo/ask-the-audience/quizstore"
	"github.com/danielhkuo/ask-the-audience/session"
)

func sampleQuiz() quizstore.Quiz {
	return quizstore.Quiz{
		Title: "General Knowledge",
		Questions: []session.Question{
			{
				PhaseTitle: "Round One",
				Text:       "Largest planet?",
				Options: []session.QuizOption{
					{Text: "Jupiter", Correct: true},
					{Text: "Saturn"},
					{Text: "Mars"},
					{Text: "Venus"},
				},
			},
			{
				PhaseTitle: "Round One",
				Text:       "Smallest planet?",
				Options: []session.QuizOption{
					{Text: "Mercury", Correct: true},
					{Text: "Pluto"},
				},
			},
		},
	}
}

func newQuizHandler(src *fakeQuizSource) (*QuizHandler, *session.Store, *fakeBroadcaster) {
	store := session.NewStore()
	hub := &fakeBroadcaster{}
	return NewQuizHandler(store, src, hub), store, hub
}

func TestValidateQuiz(t *testing.T) {
	handler, _, _ := newQuizHandler(&fakeQuizSource{configured: true, quiz: sampleQuiz()})

	w := postJSON(t, handler.ValidateQuiz, "/api/quiz/validate", "", models.QuizCodeRequest{Code: "TRIV1"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.ValidateQuizResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if !resp.OK {
		t.Error("Expected ok")
	}
	if resp.Title != "General Knowledge" {
		t.Errorf("Unexpected title %q", resp.Title)
	}
	if resp.QuestionCount != 2 {
		t.Errorf("Expected 2 questions, got %d", resp.QuestionCount)
	}
}

func TestValidateQuizNotConfigured(t *testing.T) {
	handler, _, _ := newQuizHandler(&fakeQuizSource{configured: false})

	w := postJSON(t, handler.ValidateQuiz, "/api/quiz/validate", "", models.QuizCodeRequest{Code: "TRIV1"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503, got %d", w.Code)
	}
	var resp models.ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error != models.CodeQuizUnavailable {
		t.Errorf("Expected quiz_source_unavailable, got %q", resp.Error)
	}
}

func TestValidateQuizErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unknown code", quizstore.ErrNotFound, http.StatusNotFound, models.CodeQuizNotFound},
		{"slow source", quizstore.ErrTimeout, http.StatusGatewayTimeout, models.CodeQuizTimeout},
		{"source down", quizstore.ErrUnavailable, http.StatusBadGateway, models.CodeQuizUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _, _ := newQuizHandler(&fakeQuizSource{configured: true, err: tt.err})
			w := postJSON(t, handler.ValidateQuiz, "/api/quiz/validate", "", models.QuizCodeRequest{Code: "TRIV1"})
			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
			var resp models.ErrorResponse
			json.NewDecoder(w.Body).Decode(&resp)
			if resp.Error != tt.wantCode {
				t.Errorf("Expected %q, got %q", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestValidateQuizMissingCode(t *testing.T) {
	handler, _, _ := newQuizHandler(&fakeQuizSource{configured: true, quiz: sampleQuiz()})

	w := postJSON(t, handler.ValidateQuiz, "/api/quiz/validate", "", models.QuizCodeRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestLoadQuiz(t *testing.T) {
	handler, store, hub := newQuizHandler(&fakeQuizSource{configured: true, quiz: sampleQuiz()})
	sess, _ := store.Create("quiz")

	w := postJSON(t, handler.LoadQuiz, "/api/session/"+sess.ID+"/loadQuiz", sess.ID, models.QuizCodeRequest{Code: "TRIV1"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.LoadQuizResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Question == nil {
		t.Fatal("Expected the first question in the response")
	}
	if resp.Question.Text != "Largest planet?" {
		t.Errorf("Unexpected first question %q", resp.Question.Text)
	}
	if resp.QuestionCount != 2 {
		t.Errorf("Expected 2 questions, got %d", resp.QuestionCount)
	}
	if hub.hostPushes == 0 || hub.audiencePushes == 0 {
		t.Error("Loading a quiz should broadcast to both rooms")
	}

	snap := sess.Snapshot(0)
	if snap.Question == nil || !snap.Question.HasCorrect {
		t.Error("Host snapshot should flag that a correct answer exists")
	}
}

func TestLoadQuizSessionNotFound(t *testing.T) {
	handler, _, _ := newQuizHandler(&fakeQuizSource{configured: true, quiz: sampleQuiz()})

	w := postJSON(t, handler.LoadQuiz, "/api/session/000000/loadQuiz", "000000", models.QuizCodeRequest{Code: "TRIV1"})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestLoadQuizEmpty(t *testing.T) {
	handler, store, _ := newQuizHandler(&fakeQuizSource{configured: true, quiz: quizstore.Quiz{Title: "Empty"}})
	sess, _ := store.Create("quiz")

	w := postJSON(t, handler.LoadQuiz, "/api/session/"+sess.ID+"/loadQuiz", sess.ID, models.QuizCodeRequest{Code: "EMPTY"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	var resp models.ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error != models.CodeEmptyQuiz {
		t.Errorf("Expected empty_quiz, got %q", resp.Error)
	}
}
