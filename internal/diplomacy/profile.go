// Personality profiles — one lookup table covering every place temperament
// bends a decision: trigger thresholds, priority bonuses, deal-category
// leanings, and the communiqué voice.
// See design doc Section 4.1.
package diplomacy

import (
	"github.com/talgya/statecraft/internal/nations"
)

// CategoryWeights lean utility toward or away from whole classes of deal
// content. Each weight contributes weight×100 to a session's utility when
// at least one item of its category is present, once per category.
type CategoryWeights struct {
	Alliance float64 // Alliance items
	Treaty   float64 // Treaties, open borders, promises
	Warlike  float64 // Join-war items
}

// Profile collects every personality-dependent knob.
type Profile struct {
	// HelpThreshold is the perceived threat level at which a nation
	// starts looking for help.
	HelpThreshold float32

	Weights CategoryWeights

	// Per-trigger priority bonuses.
	ReconcileBonus    int
	CompensationBonus int
	AllianceBonus     int
	WarningBonus      int

	// CompensationFloor is the minimum summed severity points before a
	// compensation demand fires.
	CompensationFloor int

	// MessageKey selects the communiqué voice for this temperament.
	MessageKey string
}

// profiles maps each personality to its profile. Balanced is the neutral
// reference the others deviate from.
var profiles = map[nations.Personality]Profile{
	nations.Balanced: {
		HelpThreshold:     50,
		Weights:           CategoryWeights{Alliance: 0.1, Treaty: 0.1, Warlike: -0.1},
		CompensationFloor: 3,
		MessageKey:        "measured",
	},
	nations.Aggressive: {
		HelpThreshold:     70, // Too proud to ask until the walls shake
		Weights:           CategoryWeights{Alliance: -0.3, Treaty: -0.2, Warlike: 0.4},
		ReconcileBonus:    -15,
		CompensationBonus: 10,
		WarningBonus:      20,
		CompensationFloor: 3,
		MessageKey:        "belligerent",
	},
	nations.Defensive: {
		HelpThreshold:     40,
		Weights:           CategoryWeights{Alliance: 0.4, Treaty: 0.3, Warlike: -0.4},
		ReconcileBonus:    10,
		CompensationBonus: 5,
		AllianceBonus:     25,
		CompensationFloor: 5, // Slow to escalate over slights
		MessageKey:        "wary",
	},
	nations.Isolationist: {
		HelpThreshold:     90, // Help is a last resort
		Weights:           CategoryWeights{Alliance: -0.5, Treaty: -0.1, Warlike: -0.2},
		ReconcileBonus:    -5,
		CompensationFloor: 8,
		MessageKey:        "distant",
	},
	nations.Trickster: {
		HelpThreshold:     45,
		Weights:           CategoryWeights{Alliance: 0.2, Treaty: -0.1, Warlike: 0.1},
		ReconcileBonus:    5,
		CompensationBonus: 5,
		CompensationFloor: 3,
		MessageKey:        "sly",
	},
	nations.Chaotic: {
		HelpThreshold:     60,
		Weights:           CategoryWeights{Treaty: -0.2, Warlike: 0.2},
		CompensationFloor: 3,
		MessageKey:        "erratic",
	},
}

// ProfileFor returns the profile for a personality, falling back to
// balanced for anything unknown.
func ProfileFor(p nations.Personality) Profile {
	if prof, ok := profiles[p]; ok {
		return prof
	}
	return profiles[nations.Balanced]
}
