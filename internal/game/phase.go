package game

// Phase is the current stage of a room's round cycle.
type Phase string

const (
	PhaseLobby    Phase = "LOBBY"     // Waiting for players to join
	PhaseWriting  Phase = "WRITING"   // Players writing lies for the current question
	PhaseVoting   Phase = "VOTING"    // Players voting on the shuffled options
	PhaseReveal   Phase = "REVEAL"    // Host walking through the reveal cards
	PhaseGameOver Phase = "GAME_OVER" // Terminal; a new room is needed to play again
)

func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo reports whether moving from p to target is a legal edge.
// REVEAL branches: another round if questions remain, GAME_OVER otherwise.
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseLobby:   {PhaseWriting},
		PhaseWriting: {PhaseVoting},
		PhaseVoting:  {PhaseReveal},
		PhaseReveal:  {PhaseWriting, PhaseGameOver},
	}

	for _, next := range validTransitions[p] {
		if next == target {
			return true
		}
	}
	return false
}
