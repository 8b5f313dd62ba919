// Trigger arbitration — throttling plus highest-priority selection across
// the condition evaluators. The Arbiter owns the only mutable state in
// the core (per-nation last-negotiation turns), so one Arbiter per
// simulation instance keeps runs isolated and reproducible.
// See design doc Section 4.3.
package diplomacy

import (
	"sort"
	"sync"

	"github.com/talgya/statecraft/internal/nations"
)

const (
	// MinTurnsBetweenNegotiations is the per-nation cooldown: a nation
	// that just opened a negotiation stays quiet this many turns.
	MinTurnsBetweenNegotiations = 5

	// MaxNegotiationsPerTurn caps how many negotiations the whole world
	// opens in a single turn.
	MaxNegotiationsPerTurn = 2
)

// evaluators lists the condition evaluators in registration order. The
// order doubles as the tiebreak when priorities match: warnings beat
// threats beat compensation beat alliances beat reconciliation beat
// trade.
var evaluators = []struct {
	name string
	fn   evalFunc
}{
	{"warning", evalWarning},
	{"threat", evalThreatHelp},
	{"compensation", evalCompensation},
	{"alliance", evalAllianceOffer},
	{"reconciliation", evalReconciliation},
	{"trade", evalTrade},
}

// Arbiter runs all evaluators for a pair and picks the winner, subject to
// per-nation and per-turn throttles.
type Arbiter struct {
	mu  sync.Mutex
	led Ledger

	// lastNegotiationTurn records when each nation last opened a
	// negotiation as proposer.
	lastNegotiationTurn map[nations.NationID]uint64
}

// NewArbiter creates an arbiter reading standing from led.
func NewArbiter(led Ledger) *Arbiter {
	return &Arbiter{
		led:                 led,
		lastNegotiationTurn: make(map[nations.NationID]uint64),
	}
}

// CheckAllTriggers evaluates every condition for the (actor, counterpart)
// pair and returns the best candidate, or nil when throttled or when
// nothing fires. A returned result also stamps the actor's cooldown.
// globalCountThisTurn is the caller's count of negotiations already
// opened this turn, world-wide.
func (ar *Arbiter) CheckAllTriggers(actor, counterpart *nations.Nation, all []*nations.Nation, currentTurn uint64, globalCountThisTurn int) *TriggerResult {
	if actor == nil || counterpart == nil || actor.ID == counterpart.ID {
		return nil
	}

	ar.mu.Lock()
	defer ar.mu.Unlock()

	if last, ok := ar.lastNegotiationTurn[actor.ID]; ok {
		if currentTurn >= last && currentTurn-last < MinTurnsBetweenNegotiations {
			return nil // Cooling down
		}
	}
	if globalCountThisTurn >= MaxNegotiationsPerTurn {
		return nil // The world has talked enough this turn
	}

	var fired []TriggerResult
	for _, ev := range evaluators {
		res := ev.fn(actor, counterpart, all, currentTurn, ar.led)
		if res.ShouldTrigger {
			fired = append(fired, res)
		}
	}
	if len(fired) == 0 {
		return nil
	}

	// Stable keeps registration order on priority ties.
	sort.SliceStable(fired, func(i, j int) bool {
		return fired[i].Priority > fired[j].Priority
	})

	ar.lastNegotiationTurn[actor.ID] = currentTurn
	top := fired[0]
	return &top
}

// ResetTriggerTracking clears all cooldowns. Called on new game and from
// tests needing isolation.
func (ar *Arbiter) ResetTriggerTracking() {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	ar.lastNegotiationTurn = make(map[nations.NationID]uint64)
}
