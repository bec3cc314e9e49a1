package server

import (
	"fmt"
	"sync"
	"time"
)

// RateLimiter applies a sliding-window cap per connection so one noisy
// client cannot starve a room's event stream.
type RateLimiter struct {
	maxRequests int
	window      time.Duration
	requests    map[string][]time.Time // connectionID → timestamps of recent messages
	mu          sync.Mutex
}

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make(map[string][]time.Time),
	}
}

// Allow reports whether the connection may send another message and records
// it if so. Timestamps outside the window are dropped as they age out.
func (r *RateLimiter) Allow(connectionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-r.window)

	timestamps := r.requests[connectionID]
	validTimestamps := make([]time.Time, 0, len(timestamps))
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			validTimestamps = append(validTimestamps, ts)
		}
	}

	if len(validTimestamps) >= r.maxRequests {
		r.requests[connectionID] = validTimestamps
		return false
	}

	validTimestamps = append(validTimestamps, now)
	r.requests[connectionID] = validTimestamps
	return true
}

// RemoveConnection clears rate-limit state when a websocket disconnects.
func (r *RateLimiter) RemoveConnection(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.requests, connectionID)
}

// ValidateMessageType rejects unknown event names before dispatch.
func ValidateMessageType(msgType string) error {
	validTypes := map[string]bool{
		EventPing:              true,
		EventCreateRoom:        true,
		EventJoinRoom:          true,
		EventStartGame:         true,
		EventSubmitLie:         true,
		EventSubmitVote:        true,
		EventNextRound:         true,
		EventTriggerNextReveal: true,
	}

	if !validTypes[msgType] {
		return fmt.Errorf("INVALID_MESSAGE_TYPE: Unknown message type '%s'", msgType)
	}
	return nil
}

// ValidatePlayerName checks display name bounds (1-12 characters).
func ValidatePlayerName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("NAME_INVALID: Name cannot be empty")
	}
	if len(name) > 12 {
		return fmt.Errorf("NAME_INVALID: Name too long (max 12 characters)")
	}
	return nil
}
