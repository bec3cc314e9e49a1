package server

import (
	"sync"

	"github.com/coder/websocket"
)

// RoomMembership ties a connection to the room it created or joined. The
// connection id doubles as the player id, so there are no session tokens: a
// dropped connection is a departed player.
type RoomMembership struct {
	RoomCode string
	IsHost   bool
}

type ConnectionManager struct {
	connections map[string]*websocket.Conn // connectionID → socket
	memberships map[string]RoomMembership  // connectionID → room
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		memberships: make(map[string]RoomMembership),
	}
}

func (cm *ConnectionManager) AddConnection(id string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[id] = conn
}

// RemoveConnection drops the socket and returns the membership it held, if
// any, so disconnect teardown can act on the room.
func (cm *ConnectionManager) RemoveConnection(id string) (RoomMembership, bool) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	membership, ok := cm.memberships[id]
	delete(cm.connections, id)
	delete(cm.memberships, id)
	return membership, ok
}

func (cm *ConnectionManager) SetMembership(id, roomCode string, isHost bool) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.memberships[id] = RoomMembership{RoomCode: roomCode, IsHost: isHost}
}

func (cm *ConnectionManager) GetMembership(id string) (RoomMembership, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	membership, ok := cm.memberships[id]
	return membership, ok
}

func (cm *ConnectionManager) GetConnection(id string) *websocket.Conn {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	return cm.connections[id]
}

// Connections returns every live socket, used for shutdown notices.
func (cm *ConnectionManager) Connections() []*websocket.Conn {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	conns := make([]*websocket.Conn, 0, len(cm.connections))
	for _, conn := range cm.connections {
		conns = append(conns, conn)
	}
	return conns
}
