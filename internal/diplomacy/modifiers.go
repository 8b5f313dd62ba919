// Evaluation modifiers — the additive utility contributions that score a
// proposal from one nation's point of view. All pure functions of their
// inputs; EvaluateUtility sums them.
// See design doc Section 4.1.
package diplomacy

import (
	"github.com/talgya/statecraft/internal/nations"
)

// RelationshipModifier maps standing (−100..100) to utility (−50..+50).
func RelationshipModifier(relationship float64) float64 {
	return relationship * 0.5
}

// TrustModifier maps trust (0..100) to utility (−30..+30), neutral at 50.
func TrustModifier(trust float64) float64 {
	return (trust - 50) * 0.6
}

// FavorModifier maps the reciprocity balance to utility. A counterpart in
// your debt makes their proposals look better.
func FavorModifier(favorBalance float64) float64 {
	return favorBalance * 0.5
}

// severityWeights is the utility cost of an unresolved grievance by
// severity: minor, moderate, major, severe.
var severityWeights = [4]float64{5, 10, 20, 30}

func severityWeight(s nations.Severity) float64 {
	if int(s) < len(severityWeights) {
		return severityWeights[s]
	}
	return 0
}

// PersonalityBonus scores the session's deal categories against the
// actor's category weights. One contribution per category present in
// either item list, regardless of item count.
func PersonalityBonus(s *Session, actor *nations.Nation) float64 {
	if s == nil || actor == nil {
		return 0
	}
	w := ProfileFor(actor.Personality).Weights

	var hasAlliance, hasTreaty, hasWarlike bool
	scan := func(items []Item) {
		for _, it := range items {
			cat, ok := it.Category()
			if !ok {
				continue
			}
			switch cat {
			case "alliance":
				hasAlliance = true
			case "treaty":
				hasTreaty = true
			case "warlike":
				hasWarlike = true
			}
		}
	}
	scan(s.Offers)
	scan(s.Requests)

	var bonus float64
	if hasAlliance {
		bonus += w.Alliance * 100
	}
	if hasTreaty {
		bonus += w.Treaty * 100
	}
	if hasWarlike {
		bonus += w.Warlike * 100
	}
	return bonus
}

// StrategicValue rewards deals that answer the actor's threat picture:
// alliances while endangered, and war commitments against real menaces.
func StrategicValue(s *Session, actor, counterpart *nations.Nation) float64 {
	if s == nil || actor == nil {
		return 0
	}
	var v float64

	offersAlliance := false
	for _, it := range s.Offers {
		if it.Kind == ItemAlliance {
			offersAlliance = true
			break
		}
	}
	if offersAlliance {
		if maxT, _, ok := actor.MaxThreat(); ok {
			if maxT > 15 {
				v += 50
			} else if maxT > 8 {
				v += 25
			}
		}
	}

	joinWar := func(items []Item) {
		for _, it := range items {
			if it.Kind != ItemJoinWar || it.Target == nil {
				continue
			}
			if actor.ThreatOf(*it.Target) > 10 {
				v += 30
			}
		}
	}
	joinWar(s.Offers)
	joinWar(s.Requests)

	return v
}

// GrievancePenalty sums the severity weights of every unresolved
// grievance the actor holds against the counterpart, negated.
func GrievancePenalty(actor, counterpart *nations.Nation) float64 {
	if actor == nil || counterpart == nil {
		return 0
	}
	var total float64
	for _, g := range actor.Grievances {
		if g.Perpetrator == counterpart.ID {
			total += severityWeight(g.Severity)
		}
	}
	return -total
}

// EvaluateUtility scores a session from evaluator's point of view given
// their standing toward the counterpart. Deterministic: identical inputs
// always produce the identical score. Accept/reject thresholds are the
// caller's policy.
func EvaluateUtility(s *Session, evaluator, counterpart *nations.Nation, relationship, trust, favor float64) float64 {
	u := RelationshipModifier(relationship)
	u += TrustModifier(trust)
	u += FavorModifier(favor)
	u += PersonalityBonus(s, evaluator)
	u += StrategicValue(s, evaluator, counterpart)
	u += GrievancePenalty(evaluator, counterpart)
	return u
}
