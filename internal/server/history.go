package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fibbing-server/internal/game"
)

// MatchHistoryStore records finished games. It never restores room state;
// live rooms exist only in memory and die with the process.
type MatchHistoryStore struct {
	db *sql.DB
}

func NewMatchHistoryStore(db *sql.DB) *MatchHistoryStore {
	return &MatchHistoryStore{
		db: db,
	}
}

// LeaderboardEntry is one row of the cross-match leaderboard.
type LeaderboardEntry struct {
	Name       string `json:"name"`
	TotalScore int    `json:"totalScore"`
	Matches    int    `json:"matches"`
}

// SaveMatch persists the final standings of one finished game. The winner is
// the first entry of the (already sorted) standings.
func (hs *MatchHistoryStore) SaveMatch(roomCode string, standings []game.Player) error {
	winner := ""
	if len(standings) > 0 {
		winner = standings[0].Name
	}

	data, err := json.Marshal(standings)
	if err != nil {
		return fmt.Errorf("failed to serialize standings for %s: %w", roomCode, err)
	}

	query := `
		INSERT INTO matches (room_code, winner, standings, finished_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := hs.db.Exec(query, roomCode, winner, data, time.Now()); err != nil {
		return fmt.Errorf("failed to save match %s: %w", roomCode, err)
	}

	return nil
}

// TopPlayers aggregates recorded standings into a leaderboard, by total
// score across every match a name appears in.
func (hs *MatchHistoryStore) TopPlayers(limit int) ([]LeaderboardEntry, error) {
	query := `
		SELECT entry->>'name' AS name,
		       SUM((entry->>'score')::int) AS total_score,
		       COUNT(*) AS matches
		FROM matches, jsonb_array_elements(standings) AS entry
		GROUP BY entry->>'name'
		ORDER BY total_score DESC, name ASC
		LIMIT $1
	`

	rows, err := hs.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]LeaderboardEntry, 0, limit)
	for rows.Next() {
		var entry LeaderboardEntry
		if err := rows.Scan(&entry.Name, &entry.TotalScore, &entry.Matches); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}

	return entries, nil
}

// CleanupOldMatches deletes records older than the given age and returns how
// many were removed.
func (hs *MatchHistoryStore) CleanupOldMatches(olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	result, err := hs.db.Exec(`DELETE FROM matches WHERE finished_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old matches: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check cleanup result: %w", err)
	}

	return int(rowsAffected), nil
}
