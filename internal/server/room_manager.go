package server

import (
	"errors"
	"strings"
	"sync"

	"fibbing-server/internal/game"
)

// RoomManager owns the mapping from room code to live room. Nothing outside
// it creates or destroys rooms, and a destroyed room's code immediately
// becomes available again.
type RoomManager struct {
	rooms     map[string]*game.Room
	usedCodes map[string]bool
	mu        sync.RWMutex
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms:     make(map[string]*game.Room),
		usedCodes: make(map[string]bool),
	}
}

// CreateRoom makes a room with a fresh unique code and the caller as host.
// The host owns the room but is not a player; participants arrive through
// JoinRoom.
func (rm *RoomManager) CreateRoom(hostID, hostName string, settings game.Settings) *game.Room {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	code := GenerateRoomCode(rm.usedCodes)
	rm.usedCodes[code] = true

	room := game.NewRoom(code, hostID, hostName, settings)
	rm.rooms[code] = room
	return room
}

func (rm *RoomManager) GetRoom(code string) (*game.Room, error) {
	code = NormalizeRoomCode(code)

	rm.mu.RLock()
	room, exists := rm.rooms[code]
	rm.mu.RUnlock()

	if !exists {
		return nil, errors.New("ROOM_NOT_FOUND: Room not found")
	}
	return room, nil
}

// JoinRoom adds a player to a lobby. Joining fails, with a message the
// client surfaces, when the room is missing, the game already started, the
// name is out of bounds, or the name is taken (case-insensitively).
func (rm *RoomManager) JoinRoom(code, playerID, playerName string) (*game.Room, *game.Player, error) {
	room, err := rm.GetRoom(code)
	if err != nil {
		return nil, nil, err
	}

	playerName = strings.TrimSpace(playerName)
	if err := ValidatePlayerName(playerName); err != nil {
		return nil, nil, err
	}

	room.Lock()
	defer room.Unlock()

	if room.Phase != game.PhaseLobby {
		return nil, nil, errors.New("GAME_ALREADY_STARTED: Game already in progress")
	}
	if room.HasName(playerName) {
		return nil, nil, errors.New("NAME_TAKEN: Name already taken")
	}

	player := room.AddPlayer(playerID, playerName)
	return room, player, nil
}

// DestroyRoom removes a room and frees its code. Idempotent.
func (rm *RoomManager) DestroyRoom(code string) {
	code = NormalizeRoomCode(code)

	rm.mu.Lock()
	defer rm.mu.Unlock()
	delete(rm.rooms, code)
	delete(rm.usedCodes, code)
}

func (rm *RoomManager) RoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}
