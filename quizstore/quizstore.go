// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quizstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/danielhkuo/ask-the-audience/session"
)

var (
	ErrNotConfigured = errors.New("quiz source not configured")
	ErrNotFound      = errors.New("quiz code not found")
	ErrTimeout       = errors.New("quiz source timed out")
	ErrUnavailable   = errors.New("quiz source unreachable")
)

// maxOptions caps how many options one question carries on the wire.
const maxOptions = 4

// Quiz is the compiled content for one quiz code: phases flattened into
// one ordered question list, ready for session.LoadQuiz.
type Quiz struct {
	Title     string
	Questions []session.Question
}

// Client talks to the content store over its PostgREST interface. It is
// safe for concurrent use and never called while a session lock is held.
type Client struct {
	baseURL string
	anonKey string
	timeout time.Duration
	http    *http.Client
}

func New(baseURL, anonKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		timeout: timeout,
		http:    &http.Client{},
	}
}

// Configured reports whether a content store has been set up at all,
// letting callers distinguish "not configured" from "unreachable".
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.anonKey != ""
}

// PostgREST nested-select rows

type quizRow struct {
	Title  string     `json:"title"`
	Phases []phaseRow `json:"phases"`
}

type phaseRow struct {
	Title     string        `json:"title"`
	Position  int           `json:"position"`
	Questions []questionRow `json:"questions"`
}

type questionRow struct {
	Text     string      `json:"text"`
	Note     string      `json:"note"`
	Position int         `json:"position"`
	Options  []optionRow `json:"options"`
}

type optionRow struct {
	Text      string `json:"text"`
	AudioURL  string `json:"audio_url"`
	IsCorrect bool   `json:"is_correct"`
	Position  int    `json:"position"`
}

const quizSelect = "title,phases(title,position,questions(text,note,position,options(text,audio_url,is_correct,position)))"

// FetchQuiz resolves code through the content store and compiles the
// result. The request is bounded by the configured timeout so a stuck
// store surfaces ErrTimeout instead of hanging the host.
func (c *Client) FetchQuiz(ctx context.Context, code string) (Quiz, error) {
	if !c.Configured() {
		return Quiz{}, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/rest/v1/quizzes?code=eq.%s&select=%s",
		c.baseURL, url.QueryEscape(code), url.QueryEscape(quizSelect))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quiz{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Quiz{}, fmt.Errorf("%w after %v", ErrTimeout, c.timeout)
		}
		return Quiz{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quiz{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var rows []quizRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return Quiz{}, fmt.Errorf("%w: bad response: %v", ErrUnavailable, err)
	}
	if len(rows) == 0 {
		return Quiz{}, ErrNotFound
	}
	return compile(rows[0]), nil
}

// compile flattens phases into one ordered question list. Phases,
// questions, and options each carry a position column; the store does
// not guarantee row order.
func compile(row quizRow) Quiz {
	phases := row.Phases
	sort.SliceStable(phases, func(i, j int) bool { return phases[i].Position < phases[j].Position })

	quiz := Quiz{Title: row.Title}
	for _, phase := range phases {
		questions := phase.Questions
		sort.SliceStable(questions, func(i, j int) bool { return questions[i].Position < questions[j].Position })
		for _, q := range questions {
			options := q.Options
			sort.SliceStable(options, func(i, j int) bool { return options[i].Position < options[j].Position })
			if len(options) > maxOptions {
				options = options[:maxOptions]
			}
			compiled := session.Question{
				PhaseTitle: phase.Title,
				Text:       q.Text,
				Note:       q.Note,
			}
			for _, o := range options {
				compiled.Options = append(compiled.Options, session.QuizOption{
					Text:    o.Text,
					Audio:   o.AudioURL,
					Correct: o.IsCorrect,
				})
			}
			quiz.Questions = append(quiz.Questions, compiled)
		}
	}
	return quiz
}
