package server

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/coder/websocket"

	"fibbing-server/internal/game"
)

// The handlers below are the bridge between named wire events and the game
// rules. User input errors come back as error_message; anything the rules
// reject as wrong-phase, wrong-caller or unknown-room is a silent no-op
// because it only ever arrives from stale or duplicate client messages.

func (s *Server) handleCreateRoom(socket *websocket.Conn, ctx context.Context, connectionID string, payload json.RawMessage) {
	var req CreateRoomRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		s.sendError(socket, ctx, "Invalid create_room payload")
		return
	}

	if err := ValidatePlayerName(req.PlayerName); err != nil {
		s.sendError(socket, ctx, err.Error())
		return
	}

	settings := game.DefaultSettings()
	if req.Settings != nil {
		settings = req.Settings.Normalize()
	}

	room := s.roomManager.CreateRoom(connectionID, req.PlayerName, settings)
	s.connectionManager.SetMembership(connectionID, room.Code, true)

	log.Printf("Room %s created by %s", room.Code, connectionID)

	response := ServerMessage{
		Type: EventJoinedSuccess,
		Payload: JoinedSuccess{
			RoomCode: room.Code,
			PlayerID: connectionID,
			IsHost:   true,
			Settings: room.Settings,
		},
	}
	if err := s.sendMessage(socket, ctx, response); err != nil {
		log.Printf("Failed to send joined_success: %v", err)
		return
	}

	room.Lock()
	players := room.PlayerList()
	recipients := s.roomRecipients(room)
	room.Unlock()

	s.broadcast(recipients, EventUpdatePlayers, players)
}

func (s *Server) handleJoinRoom(socket *websocket.Conn, ctx context.Context, connectionID string, payload json.RawMessage) {
	var req JoinRoomRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		s.sendError(socket, ctx, "Invalid join_room payload")
		return
	}

	room, player, err := s.roomManager.JoinRoom(req.RoomCode, connectionID, req.PlayerName)
	if err != nil {
		s.sendError(socket, ctx, err.Error())
		return
	}

	s.connectionManager.SetMembership(connectionID, room.Code, false)

	response := ServerMessage{
		Type: EventJoinedSuccess,
		Payload: JoinedSuccess{
			RoomCode: room.Code,
			PlayerID: connectionID,
			IsHost:   false,
			Color:    player.Color,
			Settings: room.Settings,
		},
	}
	if err := s.sendMessage(socket, ctx, response); err != nil {
		log.Printf("Failed to send joined_success: %v", err)
		return
	}

	room.Lock()
	players := room.PlayerList()
	recipients := s.roomRecipients(room)
	room.Unlock()

	s.broadcast(recipients, EventUpdatePlayers, players)
}

func (s *Server) handleStartGame(connectionID string, payload json.RawMessage) {
	var req RoomCodeRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	room, err := s.roomManager.GetRoom(req.RoomCode)
	if err != nil {
		return
	}

	room.Lock()
	if room.HostID != connectionID {
		room.Unlock()
		return
	}

	change, err := room.StartGame(game.DefaultQuestions(), time.Now())
	if err != nil {
		room.Unlock()
		return
	}
	recipients := s.roomRecipients(room)
	room.Unlock()

	log.Printf("Room %s started: %d rounds", room.Code, room.Settings.Rounds)
	s.broadcast(recipients, EventPhaseChange, change)
}

func (s *Server) handleSubmitLie(connectionID string, payload json.RawMessage) {
	var req SubmitLieRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	room, err := s.roomManager.GetRoom(req.RoomCode)
	if err != nil {
		return
	}

	now := time.Now()

	room.Lock()
	result, err := room.RecordLie(connectionID, req.Lie, now)
	if err != nil {
		room.Unlock()
		return
	}

	if !result.Done {
		recipients := s.roomRecipients(room)
		room.Unlock()
		s.broadcast(recipients, EventUpdateProgress, result.Progress)
		return
	}

	change, err := room.BeginVoting(now)
	recipients := s.roomRecipients(room)
	room.Unlock()

	if err != nil {
		return
	}
	s.broadcast(recipients, EventPhaseChange, change)
}

func (s *Server) handleSubmitVote(connectionID string, payload json.RawMessage) {
	var req SubmitVoteRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	room, err := s.roomManager.GetRoom(req.RoomCode)
	if err != nil {
		return
	}

	now := time.Now()

	room.Lock()
	result, err := room.RecordVote(connectionID, req.Vote, req.Bet, now)
	if err != nil {
		room.Unlock()
		return
	}

	if !result.Done {
		recipients := s.roomRecipients(room)
		room.Unlock()
		s.broadcast(recipients, EventUpdateProgress, result.Progress)
		return
	}

	results, err := room.FinishRound(now)
	recipients := s.roomRecipients(room)
	room.Unlock()

	if err != nil {
		return
	}
	s.broadcast(recipients, EventRoundResults, results)
}

func (s *Server) handleNextRound(connectionID string, payload json.RawMessage) {
	var req RoomCodeRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	room, err := s.roomManager.GetRoom(req.RoomCode)
	if err != nil {
		return
	}

	room.Lock()
	if room.HostID != connectionID {
		room.Unlock()
		return
	}

	advance, err := room.AdvanceOrEnd(time.Now())
	recipients := s.roomRecipients(room)
	room.Unlock()

	if err != nil {
		return
	}

	if advance.GameOver {
		s.broadcast(recipients, EventGameOver, advance.Standings)
		s.recordMatch(room.Code, advance.Standings)
		return
	}
	s.broadcast(recipients, EventPhaseChange, *advance.Next)
}

func (s *Server) handleTriggerNextReveal(connectionID string, payload json.RawMessage) {
	var req RoomCodeRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	room, err := s.roomManager.GetRoom(req.RoomCode)
	if err != nil {
		return
	}

	// The server holds no reveal cursor. The advance signal is relayed to
	// every connection uniformly so host and players stay on the same card.
	room.Lock()
	hostOK := room.HostID == connectionID && room.Phase == game.PhaseReveal
	recipients := s.roomRecipients(room)
	room.Unlock()

	if !hostOK {
		return
	}
	s.broadcast(recipients, EventNextRevealCard, struct{}{})
}

// handleDisconnect tears down whatever the closed connection was attached
// to. Host loss ends the session for everyone immediately; a player loss can
// complete the phase their submission was holding up.
func (s *Server) handleDisconnect(connectionID string) {
	membership, ok := s.connectionManager.RemoveConnection(connectionID)
	if !ok {
		return
	}

	room, err := s.roomManager.GetRoom(membership.RoomCode)
	if err != nil {
		return
	}

	if membership.IsHost {
		room.Lock()
		recipients := s.roomRecipients(room)
		room.Unlock()

		log.Printf("Host left room %s, destroying it", room.Code)
		s.broadcast(recipients, EventErrorMessage, "Host disconnected. The game has ended.")
		s.broadcast(recipients, EventGameOver, []game.Player{})
		s.roomManager.DestroyRoom(room.Code)
		return
	}

	now := time.Now()

	room.Lock()
	if !room.RemovePlayer(connectionID, now) {
		room.Unlock()
		return
	}

	players := room.PlayerList()
	empty := room.Empty()
	phase := room.Phase
	progress := room.CurrentProgress()
	completed := room.SubmissionsComplete()

	var change game.PhaseChange
	var results game.RoundResults
	advanceErr := error(nil)
	if completed {
		switch phase {
		case game.PhaseWriting:
			change, advanceErr = room.BeginVoting(now)
		case game.PhaseVoting:
			results, advanceErr = room.FinishRound(now)
		}
	}
	recipients := s.roomRecipients(room)
	room.Unlock()

	s.broadcast(recipients, EventUpdatePlayers, players)

	if empty {
		log.Printf("Room %s is empty, destroying it", room.Code)
		s.roomManager.DestroyRoom(room.Code)
		return
	}

	if phase == game.PhaseWriting || phase == game.PhaseVoting {
		s.broadcast(recipients, EventUpdateProgress, progress)
	}

	if completed && advanceErr == nil {
		switch phase {
		case game.PhaseWriting:
			s.broadcast(recipients, EventPhaseChange, change)
		case game.PhaseVoting:
			s.broadcast(recipients, EventRoundResults, results)
		}
	}
}

// recordMatch writes the final standings to the history store. Failures are
// logged and never affect the game itself.
func (s *Server) recordMatch(roomCode string, standings []game.Player) {
	if s.historyStore == nil {
		return
	}

	if err := s.historyStore.SaveMatch(roomCode, standings); err != nil {
		log.Printf("Failed to record match %s: %v", roomCode, err)
	}
}
