package game

import "strings"

const (
	PointsCorrect = 1000
	PointsFool    = 500
)

// Breakdown is the per-player ledger for one scored round. Total is always
// the sum of the four deltas; PenaltyDelta and BetDelta can be negative, and
// a cumulative score has no floor.
type Breakdown struct {
	CorrectPoints int `json:"correctPoints"`
	FoolingPoints int `json:"foolingPoints"`
	BetDelta      int `json:"betDelta"`
	PenaltyDelta  int `json:"penaltyDelta"`
	Total         int `json:"total"`
}

// scoreRound applies the round's deltas to every player's cumulative score
// and returns the per-player breakdown. Order of application per player:
// lateness penalty, correctness with its bet, then the fooling bonus. The
// fooling pass is a pairwise comparison over the room, fine at
// human-playable sizes.
func (r *Room) scoreRound() map[string]*Breakdown {
	truth := strings.ToLower(r.CurrentQuestion.Answer)

	breakdown := make(map[string]*Breakdown, len(r.Players))
	for _, p := range r.Players {
		breakdown[p.ID] = &Breakdown{}
	}

	for _, p := range r.Players {
		stats := breakdown[p.ID]

		if penalty := r.Penalties[p.ID]; penalty > 0 {
			p.Score -= penalty
			stats.PenaltyDelta -= penalty
		}

		vote, voted := r.Votes[p.ID]
		bet := r.Bets[p.ID]
		if voted && vote == truth {
			p.Score += PointsCorrect
			stats.CorrectPoints += PointsCorrect
			if r.Settings.Betting && bet > 0 {
				p.Score += bet
				stats.BetDelta += bet
			}
		} else if bet > 0 {
			// A bet on a wrong option is lost outright.
			p.Score -= bet
			stats.BetDelta -= bet
		}

		// One bonus per fooled voter, uncapped.
		myLie := strings.ToLower(r.Lies[p.ID])
		if myLie != "" {
			for _, other := range r.Players {
				if other.ID == p.ID {
					continue
				}
				if r.Votes[other.ID] == myLie {
					p.Score += PointsFool
					stats.FoolingPoints += PointsFool
				}
			}
		}

		stats.Total = stats.CorrectPoints + stats.FoolingPoints + stats.BetDelta + stats.PenaltyDelta
	}

	return breakdown
}
