package game_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"fibbing-server/internal/game"
)

func TestAddPlayerAssignsColors(t *testing.T) {
	assert := assert.New(t)
	room := game.NewRoom("ABCD", "host-conn", "Host", game.DefaultSettings())

	seen := make(map[string]bool)
	for i := 0; i < 6; i++ {
		p := room.AddPlayer(fmt.Sprintf("conn-%d", i), fmt.Sprintf("Player%d", i))
		assert.NotEmpty(p.Color)
		seen[p.Color] = true
	}
	assert.Equal(6, len(seen), "first six players get distinct colors")

	// The palette wraps for the seventh player.
	seventh := room.AddPlayer("conn-6", "Player6")
	assert.Equal(room.Players[0].Color, seventh.Color)
}

func TestHasNameCaseInsensitive(t *testing.T) {
	assert := assert.New(t)
	room := game.NewRoom("ABCD", "host-conn", "Host", game.DefaultSettings())
	room.AddPlayer("conn-0", "Alice")

	assert.True(room.HasName("alice"))
	assert.True(room.HasName("ALICE"))
	assert.False(room.HasName("Bob"))
}

func TestPlayerListIsSnapshot(t *testing.T) {
	assert := assert.New(t)
	room := game.NewRoom("ABCD", "host-conn", "Host", game.DefaultSettings())
	room.AddPlayer("conn-0", "Alice")

	list := room.PlayerList()
	list[0].Score = 9999

	assert.Equal(0, room.Players[0].Score)
}

func TestSettingsNormalize(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(5, game.Settings{Rounds: 0}.Normalize().Rounds)
	assert.Equal(5, game.Settings{Rounds: -3}.Normalize().Rounds)
	assert.Equal(8, game.Settings{Rounds: 8}.Normalize().Rounds)

	defaults := game.DefaultSettings()
	assert.Equal(5, defaults.Rounds)
	assert.False(defaults.Betting)
	assert.True(defaults.Shuffle)
}

func TestNewRoomStartsInLobby(t *testing.T) {
	assert := assert.New(t)
	room := game.NewRoom("WXYZ", "host-conn", "Host", game.DefaultSettings())

	assert.Equal(game.PhaseLobby, room.Phase)
	assert.Equal("WXYZ", room.Code)
	assert.Equal("host-conn", room.HostID)
	assert.True(room.Empty())
}
