package game

import (
	"math"
	"time"
)

const (
	// RoundTimeLimitSeconds is the advisory limit for WRITING and VOTING.
	// It is never enforced by a timer; lateness is charged retroactively
	// when a submission arrives.
	RoundTimeLimitSeconds = 45

	// Per-second lateness rates. The two phases are configured
	// independently even though they currently share a value.
	PenaltyPerSecondWriting = 20
	PenaltyPerSecondVoting  = 20
)

// ComputePenalty returns the lateness penalty for a submission made at now
// in a phase that began at phaseStartedAt. Any overtime, even sub-second,
// costs at least one full second's penalty.
func ComputePenalty(phaseStartedAt, now time.Time, timeLimitSeconds, perSecondPenalty int) int {
	if phaseStartedAt.IsZero() {
		return 0
	}

	overtime := now.Sub(phaseStartedAt).Seconds() - float64(timeLimitSeconds)
	if overtime <= 0 {
		return 0
	}

	return int(math.Ceil(overtime)) * perSecondPenalty
}

// chargePenalty accrues the lateness penalty for one submission. A player is
// expected to submit once per phase, so the per-round accumulator simply sums
// the WRITING and VOTING charges.
func (r *Room) chargePenalty(playerID string, now time.Time, perSecondPenalty int) {
	if penalty := ComputePenalty(r.PhaseStartedAt, now, RoundTimeLimitSeconds, perSecondPenalty); penalty > 0 {
		r.Penalties[playerID] += penalty
	}
}
