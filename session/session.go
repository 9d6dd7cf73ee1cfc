// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sync"
	"time"

	"github.com/danielhkuo/ask-the-audience/auth"
	"github.com/danielhkuo/ask-the-audience/models"
)

// Session is one live polling event. A single mutex serializes every
// mutation and snapshot; operations never block on I/O while holding it.
type Session struct {
	ID        string
	CreatedAt time.Time
	Mode      string

	mu         sync.Mutex
	votingOpen bool
	roundID    int
	acks       map[string]struct{}
	rounds     map[int]*Round
	scores     models.Scores
	quiz       *Cursor

	// question is the standalone current-question snapshot used when no
	// cursor drives the view.
	question *Question

	// qrDataURL caches the lazily generated QR image for the join URL.
	qrDataURL string
}

func newSession(id, mode string) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		Mode:      mode,
		roundID:   1,
		acks:      make(map[string]struct{}),
		rounds:    make(map[int]*Round),
	}
	s.rounds[1] = newRound()
	return s
}

// currentRoundLocked returns the round for the current roundID, creating
// it if absent. Idempotent per round id; revisited rounds keep their state.
func (s *Session) currentRoundLocked() *Round {
	r, ok := s.rounds[s.roundID]
	if !ok {
		r = newRound()
		s.rounds[s.roundID] = r
	}
	return r
}

// SetVoting opens or closes voting for the current round.
func (s *Session) SetVoting(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votingOpen = open
}

// NextRound advances to a fresh round with voting closed. A quiz cursor,
// when present, advances with it (clamped to the last question) and any
// reveal is cleared.
func (s *Session) NextRound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roundID++
	s.votingOpen = false
	s.currentRoundLocked()
	if s.quiz != nil {
		s.quiz.advance()
	}
}

// PrevRound steps back one round with voting closed; no-op on round 1.
// The round left behind keeps its ledger and tally in case it is revisited.
func (s *Session) PrevRound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roundID <= 1 {
		return
	}
	s.roundID--
	s.votingOpen = false
	s.currentRoundLocked()
	if s.quiz != nil {
		s.quiz.rewind()
	}
}

// ResetCurrentRound clears the current round's votes without changing the
// round id and clears any reveal. Returns the post-reset round id, tally,
// and reset sequence for the caller's response and for the audience
// broadcast that unlocks client-side vote locks.
func (s *Session) ResetCurrentRound() (roundID int, tally models.Tally, resetSeq int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.currentRoundLocked()
	r.reset()
	if s.quiz != nil {
		s.quiz.clearReveal()
	}
	return s.roundID, r.tally, r.resetSeq
}

// AwardPoint toggles the current round's award flag for team, or sets it
// explicitly when explicit is non-nil (idempotent set). The cumulative
// score follows the flip: +1 on grant, -1 floored at zero on revoke.
func (s *Session) AwardPoint(team string, explicit *bool) (models.Scores, models.RoundAwards, error) {
	if !models.ValidTeam(team) {
		return models.Scores{}, models.RoundAwards{}, ErrBadTeam
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.currentRoundLocked()

	current := r.awardFor(team)
	want := !current
	if explicit != nil {
		want = *explicit
	}
	if want == current {
		return s.scores, r.awards, nil
	}

	r.setAward(team, want)
	delta := 1
	if !want {
		delta = -1
	}
	if team == models.TeamA {
		s.scores.A = max(0, s.scores.A+delta)
	} else {
		s.scores.B = max(0, s.scores.B+delta)
	}
	return s.scores, r.awards, nil
}

// Reveal discloses the current quiz question's correct options. Valid only
// when a quiz cursor exists.
func (s *Session) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quiz == nil {
		return ErrNoQuiz
	}
	s.quiz.reveal()
	return nil
}

// LoadQuiz installs a quiz cursor at the first question with no reveal and
// snapshots the current question. Questions must already be compiled; the
// content fetch happens outside the session lock.
func (s *Session) LoadQuiz(questions []Question) error {
	if len(questions) == 0 {
		return ErrEmptyQuiz
	}
	for _, q := range questions {
		if !q.usable() {
			return ErrEmptyQuiz
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quiz = newCursor(questions)
	first := questions[0]
	s.question = &first
	return nil
}

// SubmitVote runs the admission pipeline for one vote. Checks run in a
// fixed order and the first failure wins: voting open, round current, ack
// recognized, option valid, not already voted.
func (s *Session) SubmitVote(roundID int, ack, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.votingOpen {
		return ErrVotingClosed
	}
	if roundID != s.roundID {
		return ErrStaleRound
	}
	if _, known := s.acks[ack]; !known {
		return ErrUnknownAck
	}
	return s.currentRoundLocked().recordVote(ack, option)
}

// JoinInfo is what a joining audience member gets back.
type JoinInfo struct {
	ClientAck  string
	Rejoined   bool
	RoundID    int
	VotingOpen bool
	HasVoted   bool
	ResetSeq   int
}

// Join admits an audience member. A recognized presented ack rejoins
// idempotently (reloads never mint a second vote); otherwise a fresh ack
// is issued while the session is below cap. Rejoins always succeed, even
// past the cap.
func (s *Session) Join(presentedAck string, capacity int) (JoinInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.currentRoundLocked()

	if presentedAck != "" {
		if _, known := s.acks[presentedAck]; known {
			return JoinInfo{
				ClientAck:  presentedAck,
				Rejoined:   true,
				RoundID:    s.roundID,
				VotingOpen: s.votingOpen,
				HasVoted:   r.hasVoted(presentedAck),
				ResetSeq:   r.resetSeq,
			}, nil
		}
	}

	if len(s.acks) >= capacity {
		return JoinInfo{}, ErrSessionFull
	}

	ack, err := auth.GenerateClientAck()
	if err != nil {
		return JoinInfo{}, err
	}
	s.acks[ack] = struct{}{}
	return JoinInfo{
		ClientAck:  ack,
		RoundID:    s.roundID,
		VotingOpen: s.votingOpen,
		ResetSeq:   r.resetSeq,
	}, nil
}

// KnownAck reports whether ack has been issued by this session.
func (s *Session) KnownAck(ack string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.acks[ack]
	return ok
}

// viewLocked derives the outward question/reveal pair from the quiz cursor
// when present, else from the standalone question snapshot. One derivation
// for both modes keeps reveal handling out of every mutation.
func (s *Session) viewLocked(host bool) (*models.QuestionView, models.RevealView) {
	reveal := models.RevealView{CorrectLetters: []string{}}
	if s.quiz != nil {
		if s.quiz.revealActive() {
			reveal.Show = true
			reveal.CorrectLetters = s.quiz.correctLetters()
		}
		return questionView(s.quiz.current(), host), reveal
	}
	if s.question != nil {
		return questionView(*s.question, host), reveal
	}
	return nil, reveal
}

// Snapshot assembles the authoritative host view. audienceCount is the
// live connection count supplied by the transport layer.
func (s *Session) Snapshot(audienceCount int) models.StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.currentRoundLocked()
	question, reveal := s.viewLocked(true)
	return models.StateSnapshot{
		RoundID:       s.roundID,
		VotingOpen:    s.votingOpen,
		Tally:         r.tally,
		AudienceCount: audienceCount,
		Scores:        s.scores,
		RoundAwards:   r.awards,
		Question:      question,
		Reveal:        reveal,
	}
}

// AudienceState assembles the reduced audience view.
func (s *Session) AudienceState() models.AudienceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.currentRoundLocked()
	question, reveal := s.viewLocked(false)
	return models.AudienceState{
		RoundID:     s.roundID,
		VotingOpen:  s.votingOpen,
		Scores:      s.scores,
		RoundAwards: r.awards,
		ResetSeq:    r.resetSeq,
		Question:    question,
		Reveal:      reveal,
	}
}

// QRDataURL returns the cached QR image, if any.
func (s *Session) QRDataURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qrDataURL
}

// SetQRDataURL caches the generated QR image for later lookups.
func (s *Session) SetQRDataURL(dataURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.qrDataURL = dataURL
}
