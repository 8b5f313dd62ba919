package overseer

import "fmt"

// The overseer is a steward, not a player. It holds two levers — easing a
// poisonous relationship before it hardens into war, and stirring a minor
// incident when the world has gone inert — and most cycles it pulls neither.
const (
	// easeStep is how far one ease directive lifts a pair, never past zero.
	easeStep    = 20.0
	easeCeiling = 0.0

	// warningPairFloor: below this a pair is eased even outside a crisis.
	warningPairFloor = -50.0

	// pairCooldownTurns is the minimum gap between interventions touching
	// the same pair; stirCooldownTurns gates stirring globally.
	pairCooldownTurns = 12
	stirCooldownTurns = 20
)

// Directive is the overseer's chosen action for one cycle.
type Directive struct {
	Action   string // "none", "ease", "stir"
	A        string
	B        string
	Value    float64 // ease target relationship
	Severity string  // stir severity
	Cause    string  // stir cause
	Reason   string
}

var stirCauses = []string{
	"a contested fishing fleet seized in disputed waters",
	"an insult delivered at a state funeral",
	"a customs dispute at the frontier crossing",
	"a defecting minister granted asylum",
}

// Decide maps a Health to zero or one directive using a fixed rule table.
// First match wins; history supplies the cooldown checks.
func Decide(h *Health, history []CycleRecord) *Directive {
	if h.ActiveNations < 2 {
		return &Directive{Action: "none", Reason: "fewer than two active nations"}
	}

	// Rule 1: crisis — ease the coldest pair before it becomes a war.
	if h.CrisisLevel == "CRITICAL" && h.WorstPair != nil {
		return easeDirective(h, history,
			fmt.Sprintf("crisis at war risk %.0f, coldest pair %s/%s at %.0f",
				h.WarRisk, h.WorstPair.A, h.WorstPair.B, h.WorstPair.Relationship))
	}

	// Rule 2: a single pair deep underwater gets eased even when the wider
	// world still looks calm.
	if h.CrisisLevel == "WARNING" && h.WorstPair != nil && h.WorstPair.Relationship <= warningPairFloor {
		return easeDirective(h, history,
			fmt.Sprintf("pair %s/%s at %.0f, below the warning floor",
				h.WorstPair.A, h.WorstPair.B, h.WorstPair.Relationship))
	}

	// Rule 3: stagnation — stir a minor incident between the coldest
	// non-allied pair to restart diplomacy.
	if h.CrisisLevel == "HEALTHY" && h.Quiet && h.WorstPair != nil && !h.WorstPair.Allied {
		if turn, ok := lastAction(history); ok && h.Turn < turn+stirCooldownTurns {
			return &Directive{Action: "none", Reason: "world is quiet but stir cooldown holds"}
		}
		cause := stirCauses[h.Turn%uint64(len(stirCauses))]
		return &Directive{
			Action:   "stir",
			A:        h.WorstPair.A,
			B:        h.WorstPair.B,
			Severity: "minor",
			Cause:    cause,
			Reason:   "no diplomatic activity in the recent window",
		}
	}

	return &Directive{Action: "none", Reason: "no rule matched at " + h.CrisisLevel}
}

// easeDirective builds an ease action for the worst pair, honoring the
// per-pair cooldown.
func easeDirective(h *Health, history []CycleRecord, why string) *Directive {
	if turn, ok := lastActionOn(history, h.WorstPair.A, h.WorstPair.B); ok && h.Turn < turn+pairCooldownTurns {
		return &Directive{Action: "none", Reason: "pair intervened on recently, holding"}
	}

	target := h.WorstPair.Relationship + easeStep
	if target > easeCeiling {
		target = easeCeiling
	}
	return &Directive{
		Action: "ease",
		A:      h.WorstPair.A,
		B:      h.WorstPair.B,
		Value:  target,
		Reason: why,
	}
}

// lastAction returns the turn of the most recent non-none cycle. History is
// newest-first.
func lastAction(history []CycleRecord) (uint64, bool) {
	for _, r := range history {
		if r.Action != "none" {
			return r.Turn, true
		}
	}
	return 0, false
}

// lastActionOn returns the turn of the most recent non-none cycle touching
// the given pair, in either order.
func lastActionOn(history []CycleRecord, a, b string) (uint64, bool) {
	for _, r := range history {
		if r.Action == "none" {
			continue
		}
		if (r.PairA == a && r.PairB == b) || (r.PairA == b && r.PairB == a) {
			return r.Turn, true
		}
	}
	return 0, false
}
