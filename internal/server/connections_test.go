package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionManagerMemberships(t *testing.T) {
	assert := assert.New(t)
	cm := NewConnectionManager()

	_, ok := cm.GetMembership("conn-1")
	assert.False(ok)

	cm.AddConnection("conn-1", nil)
	cm.SetMembership("conn-1", "ABCD", false)

	membership, ok := cm.GetMembership("conn-1")
	assert.True(ok)
	assert.Equal("ABCD", membership.RoomCode)
	assert.False(membership.IsHost)

	cm.SetMembership("conn-2", "ABCD", true)
	membership, ok = cm.GetMembership("conn-2")
	assert.True(ok)
	assert.True(membership.IsHost)
}

func TestRemoveConnectionReturnsMembership(t *testing.T) {
	assert := assert.New(t)
	cm := NewConnectionManager()

	cm.AddConnection("conn-1", nil)
	cm.SetMembership("conn-1", "ABCD", true)

	membership, ok := cm.RemoveConnection("conn-1")
	assert.True(ok)
	assert.Equal("ABCD", membership.RoomCode)
	assert.True(membership.IsHost)

	// Teardown already happened; a second removal reports no membership.
	_, ok = cm.RemoveConnection("conn-1")
	assert.False(ok)
	_, ok = cm.GetMembership("conn-1")
	assert.False(ok)
}

func TestRemoveConnectionWithoutMembership(t *testing.T) {
	cm := NewConnectionManager()
	cm.AddConnection("conn-1", nil)

	_, ok := cm.RemoveConnection("conn-1")

	assert.False(t, ok, "a connection that never joined a room has nothing to tear down")
	assert.Nil(t, cm.GetConnection("conn-1"))
}

func TestConnectionsSnapshot(t *testing.T) {
	cm := NewConnectionManager()

	assert.Empty(t, cm.Connections())

	cm.AddConnection("conn-1", nil)
	cm.AddConnection("conn-2", nil)
	assert.Len(t, cm.Connections(), 2)
}
