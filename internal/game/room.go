package game

import (
	"strings"
	"sync"
	"time"
)

// Settings are fixed at room creation.
type Settings struct {
	Rounds  int  `json:"rounds"`
	Betting bool `json:"betting"`
	Shuffle bool `json:"shuffle"`
}

// DefaultSettings matches the defaults a host gets when creating a room
// without an explicit configuration.
func DefaultSettings() Settings {
	return Settings{
		Rounds:  5,
		Betting: false,
		Shuffle: true,
	}
}

// Normalize clamps nonsense values back to usable ones.
func (s Settings) Normalize() Settings {
	if s.Rounds <= 0 {
		s.Rounds = DefaultSettings().Rounds
	}
	return s
}

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Color string `json:"color"`
}

var avatarColors = [...]string{
	"#FF6B6B",
	"#4ECDC4",
	"#FFE66D",
	"#FF9F1C",
	"#C7F464",
	"#EF476F",
}

// Question is an immutable prompt with a blank marker and its canonical answer.
type Question struct {
	Text   string `json:"text"`
	Answer string `json:"answer"`
}

type OptionType string

const (
	OptionTruth OptionType = "TRUTH"
	OptionLie   OptionType = "LIE"
)

// Option is one votable entry built at voting start. AuthorID is empty for
// the truth entry.
type Option struct {
	Text     string     `json:"text"`
	Type     OptionType `json:"type"`
	AuthorID string     `json:"authorId,omitempty"`
}

// Room is one active game session. All per-round maps are keyed by player ID
// and reset when a round begins. Mutations must happen under Lock so that
// each inbound event is applied atomically with respect to the others.
type Room struct {
	Code            string
	HostID          string
	HostName        string
	Settings        Settings
	Phase           Phase
	Players         []*Player
	Queue           []Question
	CurrentQuestion *Question
	Lies            map[string]string
	Votes           map[string]string
	Bets            map[string]int
	Penalties       map[string]int
	ShuffledOptions []Option
	PhaseStartedAt  time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	mu sync.Mutex
}

func NewRoom(code, hostID, hostName string, settings Settings) *Room {
	now := time.Now()
	return &Room{
		Code:      code,
		HostID:    hostID,
		HostName:  hostName,
		Settings:  settings.Normalize(),
		Phase:     PhaseLobby,
		Players:   make([]*Player, 0),
		Lies:      make(map[string]string),
		Votes:     make(map[string]string),
		Bets:      make(map[string]int),
		Penalties: make(map[string]int),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *Room) Lock()   { r.mu.Lock() }
func (r *Room) Unlock() { r.mu.Unlock() }

// AddPlayer appends a player in join order and assigns an avatar color from
// the palette by join index. Name validation happens in the registry.
func (r *Room) AddPlayer(id, name string) *Player {
	player := &Player{
		ID:    id,
		Name:  name,
		Score: 0,
		Color: avatarColors[len(r.Players)%len(avatarColors)],
	}
	r.Players = append(r.Players, player)
	r.UpdatedAt = time.Now()
	return player
}

func (r *Room) FindPlayer(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// HasName reports whether any current player already uses name,
// case-insensitively.
func (r *Room) HasName(name string) bool {
	for _, p := range r.Players {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

func (r *Room) Empty() bool {
	return len(r.Players) == 0
}

// PlayerList snapshots the players by value so a payload can be marshalled
// after the room lock is released.
func (r *Room) PlayerList() []Player {
	list := make([]Player, len(r.Players))
	for i, p := range r.Players {
		list[i] = *p
	}
	return list
}
