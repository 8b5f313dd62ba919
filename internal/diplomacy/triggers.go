// Condition evaluators — one per negotiation purpose. Each inspects a
// single (actor, candidate) pair against the world snapshot and returns
// its verdict. Evaluators are independent: none reads another's output.
// See design doc Section 4.2.
package diplomacy

import (
	"fmt"

	"github.com/talgya/statecraft/internal/nations"
)

// Surplus and deficit thresholds for trade matchmaking.
const (
	surplusProduction = 150
	surplusIntel      = 80
	surplusUranium    = 100

	deficitProduction = 75
	deficitIntel      = 40
	deficitUranium    = 50
)

// evalFunc is the common evaluator shape. Total: a nil or nonsense input
// yields the zero TriggerResult, never a panic.
type evalFunc func(actor, candidate *nations.Nation, all []*nations.Nation, turn uint64, led Ledger) TriggerResult

// evalThreatHelp fires when the actor feels endangered enough (by its
// temperament's threshold) to ask the candidate for help against the
// worst menace.
func evalThreatHelp(actor, candidate *nations.Nation, all []*nations.Nation, turn uint64, led Ledger) TriggerResult {
	if actor == nil || candidate == nil || actor.ID == candidate.ID {
		return TriggerResult{}
	}

	maxThreat, source, ok := actor.MaxThreat()
	if !ok {
		return TriggerResult{}
	}
	if maxThreat < ProfileFor(actor.Personality).HelpThreshold {
		return TriggerResult{} // Not scared enough
	}
	if source == candidate.ID {
		return TriggerResult{} // Can't ask the menace itself
	}
	if led.Relationship(actor.ID, candidate.ID) < -20 {
		return TriggerResult{} // Too hostile to approach
	}

	menace := findNation(all, source)
	if menace == nil {
		return TriggerResult{} // Threat no longer resolves
	}
	if candidate.Forces.Power() < menace.Forces.Power()/2 {
		return TriggerResult{} // Too weak to tip the scales
	}

	urgency := UrgencyMedium
	if maxThreat > 80 {
		urgency = UrgencyCritical
	} else if maxThreat > 65 {
		urgency = UrgencyHigh
	}

	src := source
	return TriggerResult{
		ShouldTrigger: true,
		Purpose:       PurposeRequestHelp,
		Urgency:       urgency,
		Priority:      clampPriority(int(maxThreat) + 20),
		Context: Context{
			Reason:       fmt.Sprintf("menaced by %s (threat %.0f)", menace.Name, maxThreat),
			ThreatTarget: &src,
		},
	}
}

// evalTrade fires when the actor sits on a surplus the candidate lacks
// and relations are at least civil. Resources match in fixed order:
// gold, intel, uranium.
func evalTrade(actor, candidate *nations.Nation, _ []*nations.Nation, _ uint64, led Ledger) TriggerResult {
	if actor == nil || candidate == nil || actor.ID == candidate.ID {
		return TriggerResult{}
	}

	rel := led.Relationship(actor.ID, candidate.ID)
	if rel < 0 {
		return TriggerResult{}
	}

	var matched Resource
	switch {
	case actor.Production > surplusProduction && candidate.Production < deficitProduction:
		matched = ResourceGold
	case actor.Intel > surplusIntel && candidate.Intel < deficitIntel:
		matched = ResourceIntel
	case actor.Uranium > surplusUranium && candidate.Uranium < deficitUranium:
		matched = ResourceUranium
	default:
		return TriggerResult{}
	}

	return TriggerResult{
		ShouldTrigger: true,
		Purpose:       PurposeTradeOpportunity,
		Urgency:       UrgencyLow,
		Priority:      clampPriority(int(30 + rel*0.3)),
		Context: Context{
			Reason:   fmt.Sprintf("%s surplus against their shortage", matched),
			Resource: matched,
		},
	}
}

// evalReconciliation fires on a soured-but-salvageable pair: negative
// relations, enough residual trust, and at least one open wound to close.
func evalReconciliation(actor, candidate *nations.Nation, _ []*nations.Nation, _ uint64, led Ledger) TriggerResult {
	if actor == nil || candidate == nil || actor.ID == candidate.ID {
		return TriggerResult{}
	}

	rel := led.Relationship(actor.ID, candidate.ID)
	if rel <= -60 || rel >= 0 {
		return TriggerResult{}
	}
	trust := led.Trust(actor.ID, candidate.ID)
	if trust < 30 {
		return TriggerResult{}
	}
	if len(actor.GrievancesBy(candidate.ID)) == 0 && len(candidate.GrievancesBy(actor.ID)) == 0 {
		return TriggerResult{} // Nothing to reconcile over
	}

	prof := ProfileFor(actor.Personality)
	if actor.Personality == nations.Aggressive && rel <= -40 {
		return TriggerResult{} // Pride holds until relations thaw past -40
	}

	return TriggerResult{
		ShouldTrigger: true,
		Purpose:       PurposeReconciliation,
		Urgency:       UrgencyMedium,
		Priority:      clampPriority(int(40 + float64(prof.ReconcileBonus) + trust*0.3)),
		Context: Context{
			Reason: fmt.Sprintf("mending relations with %s", candidate.Name),
		},
	}
}

// evalCompensation fires when the candidate's recent wrongs against the
// actor pile past the actor's tolerance floor.
func evalCompensation(actor, candidate *nations.Nation, _ []*nations.Nation, turn uint64, _ Ledger) TriggerResult {
	if actor == nil || candidate == nil || actor.ID == candidate.ID {
		return TriggerResult{}
	}

	points := actor.RecentGrievancePoints(candidate.ID, turn, 10)
	prof := ProfileFor(actor.Personality)
	if points < prof.CompensationFloor {
		return TriggerResult{}
	}

	// The triggering grievance: first recent one in recording order.
	var grievanceID uint64
	for _, g := range actor.GrievancesBy(candidate.ID) {
		if g.Turn <= turn && turn-g.Turn <= 10 {
			grievanceID = g.ID
			break
		}
	}

	urgency := UrgencyMedium
	if points > 10 {
		urgency = UrgencyHigh
	}

	return TriggerResult{
		ShouldTrigger: true,
		Purpose:       PurposeDemandCompensation,
		Urgency:       urgency,
		Priority:      clampPriority(50 + prof.CompensationBonus + points*5),
		Context: Context{
			Reason:      fmt.Sprintf("unredressed wrongs by %s", candidate.Name),
			GrievanceID: grievanceID,
			Severity:    points,
		},
	}
}

// evalAllianceOffer fires for warm, trusting, unallied pairs staring at
// the same menace.
func evalAllianceOffer(actor, candidate *nations.Nation, _ []*nations.Nation, _ uint64, led Ledger) TriggerResult {
	if actor == nil || candidate == nil || actor.ID == candidate.ID {
		return TriggerResult{}
	}

	rel := led.Relationship(actor.ID, candidate.ID)
	if rel < 25 {
		return TriggerResult{}
	}
	if led.Trust(actor.ID, candidate.ID) < 50 {
		return TriggerResult{}
	}
	if actor.AlliedWith(candidate.ID) {
		return TriggerResult{} // Already bound
	}

	// Shared menace: someone both parties rate above 30. Lowest ID wins
	// ties so the pick never depends on map order.
	var shared *nations.NationID
	for id, level := range actor.Threats {
		if level <= 30 || candidate.ThreatOf(id) <= 30 {
			continue
		}
		if shared == nil || id < *shared {
			s := id
			shared = &s
		}
	}
	if shared == nil {
		return TriggerResult{}
	}

	prof := ProfileFor(actor.Personality)
	return TriggerResult{
		ShouldTrigger: true,
		Purpose:       PurposeOfferAlliance,
		Urgency:       UrgencyMedium,
		Priority:      clampPriority(int(60 + float64(prof.AllianceBonus) + rel*0.5)),
		Context: Context{
			Reason:       fmt.Sprintf("common cause with %s", candidate.Name),
			ThreatTarget: shared,
		},
	}
}

// evalWarning fires on fresh severe grievances or agenda violations,
// unless relations are already beyond saving.
func evalWarning(actor, candidate *nations.Nation, _ []*nations.Nation, turn uint64, led Ledger) TriggerResult {
	if actor == nil || candidate == nil || actor.ID == candidate.ID {
		return TriggerResult{}
	}

	if led.Relationship(actor.ID, candidate.ID) < -70 {
		return TriggerResult{} // Past warnings; this is open hostility now
	}

	severe := actor.HasRecentSevereGrievance(candidate.ID, turn, 3)
	violations := actor.RecentViolationsBy(candidate.ID, turn, 3)
	if !severe && violations == 0 {
		return TriggerResult{}
	}

	reason := fmt.Sprintf("recent aggression by %s", candidate.Name)
	if !severe {
		reason = fmt.Sprintf("%d agenda violations by %s", violations, candidate.Name)
	}

	prof := ProfileFor(actor.Personality)
	return TriggerResult{
		ShouldTrigger: true,
		Purpose:       PurposeWarning,
		Urgency:       UrgencyHigh,
		Priority:      clampPriority(70 + prof.WarningBonus),
		Context: Context{
			Reason: reason,
		},
	}
}
