// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"

	"github.com/danielhkuo/ask-the-audience/models"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrVotingClosed = errors.New("voting is closed")
	ErrStaleRound   = errors.New("stale round id")
	ErrUnknownAck   = errors.New("unknown client ack")
	ErrBadOption    = errors.New("invalid option letter")
	ErrAlreadyVoted = errors.New("already voted this round")
	ErrSessionFull  = errors.New("session is full")
	ErrBadTeam      = errors.New("invalid team")
	ErrEmptyQuiz    = errors.New("quiz has no usable questions")
	ErrNoQuiz       = errors.New("no quiz loaded")
)

// ErrorCode maps a session error to its wire code. Unrecognized errors map
// to the generic internal code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return models.CodeNotFound
	case errors.Is(err, ErrVotingClosed):
		return models.CodeVotingClosed
	case errors.Is(err, ErrStaleRound):
		return models.CodeStaleRound
	case errors.Is(err, ErrUnknownAck):
		return models.CodeUnknownAck
	case errors.Is(err, ErrBadOption):
		return models.CodeBadOption
	case errors.Is(err, ErrAlreadyVoted):
		return models.CodeAlreadyVoted
	case errors.Is(err, ErrSessionFull):
		return models.CodeSessionFull
	case errors.Is(err, ErrBadTeam):
		return models.CodeBadTeam
	case errors.Is(err, ErrEmptyQuiz):
		return models.CodeEmptyQuiz
	case errors.Is(err, ErrNoQuiz):
		return models.CodeNoQuiz
	}
	return models.CodeInternal
}
