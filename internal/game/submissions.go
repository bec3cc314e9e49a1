package game

import "time"

// Progress reports how many of the room's players have submitted in the
// current phase.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// SubmissionResult is returned from a recorded lie or vote. Done means every
// current player has submitted and the phase should advance.
type SubmissionResult struct {
	Done     bool
	Progress Progress
}

// RecordLie stores a player's lie during WRITING. Resubmitting replaces the
// earlier text; it never duplicates the entry. Lateness is charged before
// the lie is stored.
func (r *Room) RecordLie(playerID, text string, now time.Time) (SubmissionResult, error) {
	if r.Phase != PhaseWriting {
		return SubmissionResult{}, ErrWrongPhase
	}
	if r.FindPlayer(playerID) == nil {
		return SubmissionResult{}, ErrNotInRoom
	}

	r.chargePenalty(playerID, now, PenaltyPerSecondWriting)
	r.Lies[playerID] = text
	r.UpdatedAt = now

	return r.submissionResult(len(r.Lies)), nil
}

// RecordVote stores a player's vote during VOTING. The bet is kept only when
// betting is enabled; negative bets collapse to zero. The server never caps
// a bet at the player's score, the client is trusted to.
func (r *Room) RecordVote(playerID, vote string, bet int, now time.Time) (SubmissionResult, error) {
	if r.Phase != PhaseVoting {
		return SubmissionResult{}, ErrWrongPhase
	}
	if r.FindPlayer(playerID) == nil {
		return SubmissionResult{}, ErrNotInRoom
	}

	r.chargePenalty(playerID, now, PenaltyPerSecondVoting)
	r.Votes[playerID] = vote
	if r.Settings.Betting {
		if bet < 0 {
			bet = 0
		}
		r.Bets[playerID] = bet
	}
	r.UpdatedAt = now

	return r.submissionResult(len(r.Votes)), nil
}

// RemovePlayer drops a player and purges their per-round entries. After a
// removal the caller must re-check SubmissionsComplete: losing the last
// holdout finishes the phase exactly as their submission would have.
func (r *Room) RemovePlayer(playerID string, now time.Time) bool {
	index := -1
	for i, p := range r.Players {
		if p.ID == playerID {
			index = i
			break
		}
	}
	if index == -1 {
		return false
	}

	r.Players = append(r.Players[:index], r.Players[index+1:]...)
	delete(r.Lies, playerID)
	delete(r.Votes, playerID)
	delete(r.Bets, playerID)
	delete(r.Penalties, playerID)
	r.UpdatedAt = now

	return true
}

// SubmissionsComplete reports whether every current player has submitted for
// the phase in progress. Always false outside WRITING and VOTING, and for
// an empty room.
func (r *Room) SubmissionsComplete() bool {
	if len(r.Players) == 0 {
		return false
	}
	switch r.Phase {
	case PhaseWriting:
		return len(r.Lies) >= len(r.Players)
	case PhaseVoting:
		return len(r.Votes) >= len(r.Players)
	}
	return false
}

// CurrentProgress is the submission count for the phase in progress.
func (r *Room) CurrentProgress() Progress {
	switch r.Phase {
	case PhaseWriting:
		return Progress{Current: len(r.Lies), Total: len(r.Players)}
	case PhaseVoting:
		return Progress{Current: len(r.Votes), Total: len(r.Players)}
	}
	return Progress{Total: len(r.Players)}
}

func (r *Room) submissionResult(submitted int) SubmissionResult {
	return SubmissionResult{
		Done:     submitted >= len(r.Players),
		Progress: Progress{Current: submitted, Total: len(r.Players)},
	}
}
