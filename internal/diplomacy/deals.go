// Deal composition — turns a selected trigger into a concrete session.
// One builder per purpose; every builder omits items it cannot fund
// rather than failing, so a session always comes back.
// See design doc Section 4.4.
package diplomacy

import (
	"github.com/talgya/statecraft/internal/nations"
)

// Fixed trade amounts per resource: what a surplus side puts up, and
// what it asks back.
var (
	tradeOfferAmounts   = map[Resource]int{ResourceGold: 80, ResourceIntel: 40, ResourceUranium: 50}
	tradeRequestAmounts = map[Resource]int{ResourceGold: 60, ResourceIntel: 30, ResourceUranium: 40}
)

// GenerateNegotiationDeal composes the session for a fired trigger.
// The session comes back in proposed state with its items sealed.
func (ar *Arbiter) GenerateNegotiationDeal(actor, counterpart *nations.Nation, all []*nations.Nation, trigger TriggerResult, currentTurn uint64) *Session {
	if actor == nil || counterpart == nil {
		return nil
	}

	s := NewSession(actor.ID, counterpart.ID, trigger.Purpose, trigger.Urgency, currentTurn)
	s.Context = trigger.Context

	switch trigger.Purpose {
	case PurposeRequestHelp:
		buildRequestHelp(s, actor, all, trigger)
	case PurposeOfferAlliance, PurposeMutualDefense:
		buildOfferAlliance(s, actor, counterpart, ar.led)
	case PurposeReconciliation, PurposePeaceOffer:
		buildReconciliation(s, actor, counterpart)
	case PurposeDemandCompensation:
		buildCompensation(s, actor, counterpart, trigger)
	case PurposeWarning:
		buildWarning(s)
	case PurposeTradeOpportunity, PurposeJointVenture:
		buildTrade(s, actor, counterpart, trigger)
	}

	return s
}

// buildRequestHelp asks for war support against the identified menace,
// or a defensive pact when the menace is unknown, and sweetens the ask
// with whatever the treasury can spare.
func buildRequestHelp(s *Session, actor *nations.Nation, all []*nations.Nation, trigger TriggerResult) {
	if trigger.Context.ThreatTarget != nil {
		name := ""
		if menace := findNation(all, *trigger.Context.ThreatTarget); menace != nil {
			name = menace.Name
		}
		s.addRequest(JoinWarItem(*trigger.Context.ThreatTarget, name))
	} else {
		s.addRequest(AllianceItem(AllianceMilitary, 20))
	}

	if gold := int(actor.Production * 0.3); gold > 0 {
		s.addOffer(GoldItem(gold))
	}
	if intel := int(actor.Intel * 0.2); intel > 10 {
		s.addOffer(IntelItem(intel))
	}
	s.addOffer(FavorItem(2))
}

// buildOfferAlliance proposes a symmetric pact: both sides give the same
// alliance and border terms. Warm pairs add a long non-aggression rider.
func buildOfferAlliance(s *Session, actor, counterpart *nations.Nation, led Ledger) {
	s.addOffer(AllianceItem(AllianceMilitary, 30))
	s.addOffer(OpenBordersItem(30))
	s.addRequest(AllianceItem(AllianceMilitary, 30))
	s.addRequest(OpenBordersItem(30))

	if led != nil && led.Relationship(actor.ID, counterpart.ID) > 40 {
		s.addOffer(TreatyItem(TreatyNonAggression, 50))
		s.addRequest(TreatyItem(TreatyNonAggression, 50))
	}
}

// buildReconciliation trades apologies for the first wound on each side,
// adds goodwill gold, and asks for a cooling-off treaty.
func buildReconciliation(s *Session, actor, counterpart *nations.Nation) {
	if g, ok := counterpart.FirstGrievanceBy(actor.ID); ok {
		s.addOffer(ApologyItem(g.ID, g.Cause))
	}
	if gold := int(actor.Production * 0.15); gold > 0 {
		s.addOffer(GoldItem(gold))
	}

	if g, ok := actor.FirstGrievanceBy(counterpart.ID); ok {
		s.addRequest(ApologyItem(g.ID, g.Cause))
	}
	s.addRequest(TreatyItem(TreatyNonAggression, 20))
}

// buildCompensation demands reparations scaled by the offense, against a
// clean slate and a short peace.
func buildCompensation(s *Session, actor, counterpart *nations.Nation, trigger TriggerResult) {
	severity := trigger.Context.Severity
	if severity <= 0 {
		severity = 3
	}

	s.addRequest(GoldItem(severity * 30))
	if trigger.Context.GrievanceID != 0 {
		cause := ""
		for _, g := range actor.GrievancesBy(counterpart.ID) {
			if g.ID == trigger.Context.GrievanceID {
				cause = g.Cause
				break
			}
		}
		s.addRequest(ApologyItem(trigger.Context.GrievanceID, cause))
	}

	s.addOffer(PromiseItem(PromiseDropGrievances, 0))
	s.addOffer(TreatyItem(TreatyNonAggression, 15))
}

// buildWarning pairs a stand-down demand with a token restraint pledge.
func buildWarning(s *Session) {
	s.addRequest(PromiseItem(PromiseCeaseHostility, 20))
	s.addRequest(GoldItem(50))
	s.addOffer(PromiseItem(PromiseNoRetaliation, 10))
}

// buildTrade moves the actor's surplus against whatever the counterpart
// can pay with: their own surplus if they have one, payment in kind if
// not, a favor as the last resort.
func buildTrade(s *Session, actor, counterpart *nations.Nation, trigger TriggerResult) {
	offered := trigger.Context.Resource
	if offered == ResourceNone {
		offered = surplusOf(actor)
	}
	if it, ok := ResourceItem(offered, tradeOfferAmounts[offered]); ok {
		s.addOffer(it)
	}

	requested := surplusOf(counterpart)
	if requested == ResourceNone {
		requested = offered // Payment in kind
	}
	if it, ok := ResourceItem(requested, tradeRequestAmounts[requested]); ok {
		s.addRequest(it)
	} else {
		s.addRequest(FavorItem(1))
	}
}

// surplusOf picks the first resource the nation holds in surplus, in the
// fixed gold, intel, uranium order.
func surplusOf(n *nations.Nation) Resource {
	switch {
	case n.Production > surplusProduction:
		return ResourceGold
	case n.Intel > surplusIntel:
		return ResourceIntel
	case n.Uranium > surplusUranium:
		return ResourceUranium
	default:
		return ResourceNone
	}
}
