// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "github.com/danielhkuo/ask-the-audience/models"

// Round is one voting period's ledger: who voted for what, plus derived
// tally counters and the per-team award flags. All methods assume the
// owning session's mutex is held; rounds are never shared across sessions.
type Round struct {
	byAck    map[string]string
	tally    models.Tally
	awards   models.RoundAwards
	resetSeq int
}

func newRound() *Round {
	return &Round{byAck: make(map[string]string)}
}

// recordVote inserts ack's vote for option. At most one entry per ack; the
// tally counter moves in the same step so it always equals the ledger size.
func (r *Round) recordVote(ack, option string) error {
	if !models.ValidOption(option) {
		return ErrBadOption
	}
	if _, voted := r.byAck[ack]; voted {
		return ErrAlreadyVoted
	}
	r.byAck[ack] = option
	switch option {
	case models.OptionA:
		r.tally.A++
	case models.OptionB:
		r.tally.B++
	case models.OptionC:
		r.tally.C++
	case models.OptionD:
		r.tally.D++
	}
	return nil
}

// reset clears the ledger and tally and bumps resetSeq. Award flags are
// deliberately untouched; granted points survive a re-vote.
func (r *Round) reset() {
	r.byAck = make(map[string]string)
	r.tally = models.Tally{}
	r.resetSeq++
}

func (r *Round) hasVoted(ack string) bool {
	_, ok := r.byAck[ack]
	return ok
}

func (r *Round) voterCount() int {
	return len(r.byAck)
}

func (r *Round) awardFor(team string) bool {
	if team == models.TeamA {
		return r.awards.A
	}
	return r.awards.B
}

func (r *Round) setAward(team string, on bool) {
	if team == models.TeamA {
		r.awards.A = on
	} else {
		r.awards.B = on
	}
}
