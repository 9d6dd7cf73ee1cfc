// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "github.com/danielhkuo/ask-the-audience/models"

// QuizOption is one answer option as compiled from the content store.
type QuizOption struct {
	Text    string
	Audio   string
	Correct bool
}

func (o QuizOption) usable() bool {
	return o.Text != "" || o.Audio != ""
}

// Question is one compiled quiz question with up to four options.
type Question struct {
	PhaseTitle string
	Text       string
	Note       string
	Options    []QuizOption
}

func (q Question) usable() bool {
	for _, o := range q.Options {
		if o.usable() {
			return true
		}
	}
	return false
}

// noReveal marks a cursor with no revealed question.
const noReveal = -1

// Cursor points into an ordered list of pre-loaded questions. The cursor
// moves in lockstep with round changes; any movement clears the reveal.
// Methods assume the owning session's mutex is held.
type Cursor struct {
	questions []Question
	index     int
	revealed  int
}

func newCursor(questions []Question) *Cursor {
	return &Cursor{questions: questions, revealed: noReveal}
}

func (c *Cursor) current() Question {
	return c.questions[c.index]
}

// advance moves to the next question, clamped to the last one. Clamped or
// not, the reveal is cleared.
func (c *Cursor) advance() {
	if c.index < len(c.questions)-1 {
		c.index++
	}
	c.revealed = noReveal
}

// rewind moves to the previous question, clamped to the first one, and
// clears the reveal.
func (c *Cursor) rewind() {
	if c.index > 0 {
		c.index--
	}
	c.revealed = noReveal
}

func (c *Cursor) reveal() {
	c.revealed = c.index
}

func (c *Cursor) clearReveal() {
	c.revealed = noReveal
}

// revealActive reports whether the reveal applies to the current question.
func (c *Cursor) revealActive() bool {
	return c.revealed == c.index
}

// correctLetters derives the set of letters flagged correct on the current
// question. Never stored; always recomputed from the flags.
func (c *Cursor) correctLetters() []string {
	letters := []string{}
	for i, o := range c.current().Options {
		if i >= len(models.OptionLetters) {
			break
		}
		if o.Correct {
			letters = append(letters, models.OptionLetters[i])
		}
	}
	return letters
}

// questionView builds the outward-facing form of q: option text and audio
// only, padded to four options, correctness reduced to a single derived
// hasCorrect bit when includeHasCorrect is set (host view).
func questionView(q Question, includeHasCorrect bool) *models.QuestionView {
	view := &models.QuestionView{
		PhaseTitle: q.PhaseTitle,
		Text:       q.Text,
		Note:       q.Note,
		Options:    make([]models.OptionView, len(models.OptionLetters)),
	}
	for i, o := range q.Options {
		if i >= len(models.OptionLetters) {
			break
		}
		view.Options[i] = models.OptionView{Text: o.Text, Audio: o.Audio}
		if o.Correct && includeHasCorrect {
			view.HasCorrect = true
		}
	}
	return view
}
