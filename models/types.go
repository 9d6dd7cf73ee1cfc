package models

// Session modes
const (
	ModeSimple = "simple"
	ModeQuiz   = "quiz"
)

// Canonical option letters
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// OptionLetters lists the four canonical letters in display order.
var OptionLetters = []string{OptionA, OptionB, OptionC, OptionD}

// ValidOption reports whether letter is one of the four canonical options.
func ValidOption(letter string) bool {
	switch letter {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Team identifiers (exactly two)
const (
	TeamA = "A"
	TeamB = "B"
)

// ValidTeam reports whether team is one of the two canonical teams.
func ValidTeam(team string) bool {
	return team == TeamA || team == TeamB
}

// Wire error codes, returned to the acting client and never broadcast
const (
	CodeNotFound        = "not_found"
	CodeVotingClosed    = "voting_closed"
	CodeStaleRound      = "stale_round"
	CodeUnknownAck      = "unknown_ack"
	CodeBadOption       = "bad_option"
	CodeAlreadyVoted    = "already_voted"
	CodeSessionFull     = "full"
	CodeRateLimited     = "rate_limited"
	CodeBadSig          = "bad_sig"
	CodeBadTeam         = "bad_team"
	CodeEmptyQuiz       = "empty_quiz"
	CodeNoQuiz          = "no_quiz"
	CodeQuizUnavailable = "quiz_source_unavailable"
	CodeQuizTimeout     = "quiz_source_timeout"
	CodeQuizNotFound    = "quiz_not_found"
	CodeBadRequest      = "bad_request"
	CodeInternal        = "internal"
)

// WebSocket message types, client -> server
const (
	MsgHostSubscribe = "host:subscribe"
	MsgSetVoting     = "session:setVoting"
	MsgNextRound     = "session:nextRound"
	MsgPrevRound     = "session:prevRound"
	MsgResetRound    = "session:reset"
	MsgReveal        = "session:reveal"
	MsgAudienceJoin  = "audience:join"
	MsgAudienceVote  = "audience:vote"
)

// WebSocket message types, server -> client
const (
	MsgStateUpdate   = "state:update"
	MsgAudienceState = "audience:state"
	MsgJoinAck       = "join:ack"
	MsgVoteAck       = "vote:ack"
)

// Tally holds the per-option vote counters for one round.
type Tally struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
	D int `json:"D"`
}

// Total returns the number of votes across all four options.
func (t Tally) Total() int {
	return t.A + t.B + t.C + t.D
}

// Scores holds the cumulative team scores for a session.
type Scores struct {
	A int `json:"A"`
	B int `json:"B"`
}

// RoundAwards tracks whether each team has been granted this round's point.
type RoundAwards struct {
	A bool `json:"A"`
	B bool `json:"B"`
}

// OptionView is one answer option as sent to clients. Correctness flags
// are never included; reveal information travels separately.
type OptionView struct {
	Text  string `json:"text"`
	Audio string `json:"audio,omitempty"`
}

// QuestionView is the outward-facing form of the current question.
// HasCorrect tells the host UI that a reveal is possible without
// disclosing which options are correct.
type QuestionView struct {
	PhaseTitle string       `json:"phaseTitle,omitempty"`
	Text       string       `json:"text"`
	Note       string       `json:"note,omitempty"`
	Options    []OptionView `json:"options"`
	HasCorrect bool         `json:"hasCorrect,omitempty"`
}

// RevealView carries the reveal state for the current question.
type RevealView struct {
	Show           bool     `json:"show"`
	CorrectLetters []string `json:"correctLetters"`
}

// StateSnapshot is the full host-room view of a session.
type StateSnapshot struct {
	RoundID       int           `json:"roundId"`
	VotingOpen    bool          `json:"votingOpen"`
	Tally         Tally         `json:"tally"`
	AudienceCount int           `json:"audienceCount"`
	Scores        Scores        `json:"scores"`
	RoundAwards   RoundAwards   `json:"roundAwards"`
	Question      *QuestionView `json:"question,omitempty"`
	Reveal        RevealView    `json:"reveal"`
}

// AudienceState is the reduced audience-room view: just enough to vote.
// ResetSeq lets clients unlock their local per-round vote lock when the
// host clears the round without advancing it.
type AudienceState struct {
	RoundID     int           `json:"roundId"`
	VotingOpen  bool          `json:"votingOpen"`
	Scores      Scores        `json:"scores"`
	RoundAwards RoundAwards   `json:"roundAwards"`
	ResetSeq    int           `json:"resetSeq"`
	Question    *QuestionView `json:"question,omitempty"`
	Reveal      RevealView    `json:"reveal"`
}

// Request types

type CreateSessionRequest struct {
	Mode string `json:"mode"`
}

type ScoreRequest struct {
	Team string `json:"team"`
	// Award sets the flag explicitly instead of toggling when present.
	Award *bool `json:"award,omitempty"`
}

type QuizCodeRequest struct {
	Code string `json:"code"`
}

// Response types

type SessionResponse struct {
	SessionID string `json:"sessionId"`
	JoinURL   string `json:"joinUrl"`
	QRDataURL string `json:"qrDataUrl"`
	Mode      string `json:"mode"`
}

type ResetRoundResponse struct {
	RoundID  int   `json:"roundId"`
	Tally    Tally `json:"tally"`
	ResetSeq int   `json:"resetSeq"`
}

type ScoreResponse struct {
	Scores      Scores      `json:"scores"`
	RoundAwards RoundAwards `json:"roundAwards"`
}

type ValidateQuizResponse struct {
	OK            bool   `json:"ok"`
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
}

type LoadQuizResponse struct {
	Question      *QuestionView `json:"question"`
	QuestionCount int           `json:"questionCount"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WebSocket envelope, client -> server. Fields are populated per message
// type; unused fields stay at their zero value.
type ClientMessage struct {
	Type       string `json:"type"`
	SessionID  string `json:"sessionId,omitempty"`
	VotingOpen *bool  `json:"votingOpen,omitempty"`
	RoundID    int    `json:"roundId,omitempty"`
	Option     string `json:"option,omitempty"`
	ClientAck  string `json:"clientAck,omitempty"`
	Sig        string `json:"sig,omitempty"`
}

// StateUpdateMessage is the host-room broadcast.
type StateUpdateMessage struct {
	Type string `json:"type"`
	StateSnapshot
}

// AudienceStateMessage is the audience-room broadcast.
type AudienceStateMessage struct {
	Type string `json:"type"`
	AudienceState
}

// JoinAckMessage is the direct reply to audience:join.
type JoinAckMessage struct {
	Type       string `json:"type"`
	Error      string `json:"error,omitempty"`
	ClientAck  string `json:"clientAck,omitempty"`
	Sig        string `json:"sig,omitempty"`
	RoundID    int    `json:"roundId,omitempty"`
	VotingOpen bool   `json:"votingOpen,omitempty"`
	HasVoted   bool   `json:"hasVoted,omitempty"`
	ResetSeq   int    `json:"resetSeq,omitempty"`
}

// VoteAckMessage is the direct reply to audience:vote.
type VoteAckMessage struct {
	Type  string `json:"type"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
