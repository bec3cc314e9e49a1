package server

import "fibbing-server/internal/game"

// Event names form a closed set per direction so the dispatch switch can be
// exhaustive instead of shape-checking payloads at runtime.

// Client → server.
const (
	EventPing              = "ping"
	EventCreateRoom        = "create_room"
	EventJoinRoom          = "join_room"
	EventStartGame         = "start_game"
	EventSubmitLie         = "submit_lie"
	EventSubmitVote        = "submit_vote"
	EventNextRound         = "next_round"
	EventTriggerNextReveal = "trigger_next_reveal"
)

// Server → client.
const (
	EventPong           = "pong"
	EventJoinedSuccess  = "joined_success"
	EventUpdatePlayers  = "update_players"
	EventPhaseChange    = "phase_change"
	EventUpdateProgress = "update_progress"
	EventRoundResults   = "round_results"
	EventNextRevealCard = "next_reveal_card"
	EventGameOver       = "game_over"
	EventErrorMessage   = "error_message"
)

// ============================================================================
// CREATE ROOM (create_room)
// ============================================================================
type CreateRoomRequest struct {
	PlayerName string         `json:"playerName"`
	Settings   *game.Settings `json:"settings"`
}

// ============================================================================
// JOIN ROOM (join_room)
// ============================================================================
type JoinRoomRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

// ============================================================================
// ROOM-CODE ONLY (start_game, next_round, trigger_next_reveal)
// ============================================================================
type RoomCodeRequest struct {
	RoomCode string `json:"roomCode"`
}

// ============================================================================
// SUBMIT LIE (submit_lie)
// ============================================================================
type SubmitLieRequest struct {
	RoomCode string `json:"roomCode"`
	Lie      string `json:"lie"`
}

// ============================================================================
// SUBMIT VOTE (submit_vote)
// ============================================================================
type SubmitVoteRequest struct {
	RoomCode string `json:"roomCode"`
	Vote     string `json:"vote"`
	Bet      int    `json:"bet"`
}

// ============================================================================
// JOINED SUCCESS (joined_success)
// ============================================================================
type JoinedSuccess struct {
	RoomCode string        `json:"roomCode"`
	PlayerID string        `json:"playerId"`
	IsHost   bool          `json:"isHost"`
	Color    string        `json:"color,omitempty"`
	Settings game.Settings `json:"settings"`
}
