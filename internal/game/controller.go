package game

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// NoAnswerText stands in for the lie of a player who never submitted one.
const NoAnswerText = "No Answer"

var (
	// ErrWrongPhase marks an operation attempted outside its valid phase.
	// Callers treat it as a stale or duplicate client message and drop it
	// silently.
	ErrWrongPhase = errors.New("operation not valid in current phase")

	// ErrNotInRoom marks a submission from a connection that is not a
	// player of the room.
	ErrNotInRoom = errors.New("player not in room")

	// ErrNoQuestions means the question pool cannot cover a single round.
	ErrNoQuestions = errors.New("no questions available")
)

// PhaseChange is broadcast whenever a timed phase begins.
type PhaseChange struct {
	Phase    Phase    `json:"phase"`
	Question string   `json:"question,omitempty"`
	Options  []Option `json:"options,omitempty"`
	Timer    int      `json:"timer"`
}

// RoundResults is broadcast when a round is scored.
type RoundResults struct {
	Phase          Phase                 `json:"phase"`
	RevealData     []RevealItem          `json:"revealData"`
	Players        []Player              `json:"players"`
	RoundBreakdown map[string]*Breakdown `json:"roundBreakdown"`
	Truth          string                `json:"truth"`
	QuestionText   string                `json:"questionText"`
}

// Advance is the outcome of moving past REVEAL: either the next round's
// phase change or the final standings.
type Advance struct {
	Next      *PhaseChange
	GameOver  bool
	Standings []Player
}

// StartGame builds the round queue from pool and begins round one. Valid
// only from LOBBY. The pool is copied, shuffled if configured, and truncated
// to the round count.
func (r *Room) StartGame(pool []Question, now time.Time) (PhaseChange, error) {
	if r.Phase != PhaseLobby {
		return PhaseChange{}, ErrWrongPhase
	}

	queue := append([]Question(nil), pool...)
	if r.Settings.Shuffle {
		rand.Shuffle(len(queue), func(i, j int) {
			queue[i], queue[j] = queue[j], queue[i]
		})
	}
	if len(queue) > r.Settings.Rounds {
		queue = queue[:r.Settings.Rounds]
	}
	if len(queue) == 0 {
		return PhaseChange{}, ErrNoQuestions
	}

	r.Queue = queue
	return r.beginRound(now), nil
}

// beginRound consumes one question from the queue, resets the per-round maps
// and enters WRITING. Callers guarantee the queue is non-empty.
func (r *Room) beginRound(now time.Time) PhaseChange {
	question := r.Queue[len(r.Queue)-1]
	r.Queue = r.Queue[:len(r.Queue)-1]

	r.CurrentQuestion = &question
	r.Lies = make(map[string]string)
	r.Votes = make(map[string]string)
	r.Bets = make(map[string]int)
	r.Penalties = make(map[string]int)
	r.ShuffledOptions = nil
	r.Phase = PhaseWriting
	r.PhaseStartedAt = now
	r.UpdatedAt = now

	return PhaseChange{
		Phase:    PhaseWriting,
		Question: question.Text,
		Timer:    RoundTimeLimitSeconds,
	}
}

// BeginVoting builds the shuffled option list and enters VOTING. Valid only
// from WRITING. Options are one truth plus one lie per current player, all
// lowercased so votes compare exactly against the canonical answer text.
func (r *Room) BeginVoting(now time.Time) (PhaseChange, error) {
	if r.Phase != PhaseWriting || r.CurrentQuestion == nil {
		return PhaseChange{}, ErrWrongPhase
	}

	options := make([]Option, 0, len(r.Players)+1)
	options = append(options, Option{
		Text: strings.ToLower(r.CurrentQuestion.Answer),
		Type: OptionTruth,
	})
	for _, p := range r.Players {
		lie := r.Lies[p.ID]
		if lie == "" {
			lie = NoAnswerText
		}
		options = append(options, Option{
			Text:     strings.ToLower(lie),
			Type:     OptionLie,
			AuthorID: p.ID,
		})
	}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	r.ShuffledOptions = options
	r.Phase = PhaseVoting
	r.PhaseStartedAt = now
	r.UpdatedAt = now

	return PhaseChange{
		Phase:    PhaseVoting,
		Question: r.CurrentQuestion.Text,
		Options:  options,
		Timer:    RoundTimeLimitSeconds,
	}, nil
}

// FinishRound scores the round, builds the reveal sequence and enters
// REVEAL. Valid only from VOTING.
func (r *Room) FinishRound(now time.Time) (RoundResults, error) {
	if r.Phase != PhaseVoting || r.CurrentQuestion == nil {
		return RoundResults{}, ErrWrongPhase
	}

	breakdown := r.scoreRound()
	revealData := r.buildRevealData()

	r.Phase = PhaseReveal
	r.UpdatedAt = now

	return RoundResults{
		Phase:          PhaseReveal,
		RevealData:     revealData,
		Players:        r.PlayerList(),
		RoundBreakdown: breakdown,
		Truth:          r.CurrentQuestion.Answer,
		QuestionText:   r.CurrentQuestion.Text,
	}, nil
}

// AdvanceOrEnd moves past REVEAL: into the next round while questions
// remain, into GAME_OVER otherwise. Valid only from REVEAL.
func (r *Room) AdvanceOrEnd(now time.Time) (Advance, error) {
	if r.Phase != PhaseReveal {
		return Advance{}, ErrWrongPhase
	}

	if len(r.Queue) > 0 {
		change := r.beginRound(now)
		return Advance{Next: &change}, nil
	}

	r.Phase = PhaseGameOver
	r.CurrentQuestion = nil
	r.UpdatedAt = now

	standings := r.PlayerList()
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})

	return Advance{GameOver: true, Standings: standings}, nil
}
