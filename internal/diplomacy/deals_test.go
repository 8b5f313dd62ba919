package diplomacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/nations"
)

// kinds flattens an item list for order-sensitive asserts.
func kinds(items []Item) []ItemKind {
	out := make([]ItemKind, len(items))
	for i, it := range items {
		out[i] = it.Kind
	}
	return out
}

func TestRequestHelpDeal(t *testing.T) {
	ar := NewArbiter(stubLedger{})
	actor := testNation(1, nations.Balanced)
	actor.Production = 100
	actor.Intel = 100
	candidate := testNation(2, nations.Balanced)
	menace := testNation(9, nations.Aggressive)
	menace.Name = "Velgar Imperium"
	all := []*nations.Nation{actor, candidate, menace}

	target := nations.NationID(9)
	trigger := TriggerResult{
		ShouldTrigger: true,
		Purpose:       PurposeRequestHelp,
		Urgency:       UrgencyHigh,
		Context:       Context{Reason: "menaced", ThreatTarget: &target},
	}

	s := ar.GenerateNegotiationDeal(actor, candidate, all, trigger, 12)
	require.NotNil(t, s)
	assert.Equal(t, actor.ID, s.Proposer)
	assert.Equal(t, candidate.ID, s.Counterpart)
	assert.Equal(t, StatusProposed, s.Status)
	assert.Equal(t, "menaced", s.Context.Reason)
	assert.Equal(t, uint64(12), s.CreatedTurn)
	assert.Equal(t, uint64(15), s.ExpiresAtTurn)

	require.Equal(t, []ItemKind{ItemJoinWar}, kinds(s.Requests))
	require.NotNil(t, s.Requests[0].Target)
	assert.Equal(t, target, *s.Requests[0].Target)
	assert.Contains(t, s.Requests[0].Description, "Velgar Imperium")

	require.Equal(t, []ItemKind{ItemGold, ItemIntel, ItemFavorExchange}, kinds(s.Offers))
	assert.Equal(t, 30, s.Offers[0].Amount)
	assert.Equal(t, 20, s.Offers[1].Amount)
}

func TestRequestHelpDealWithoutTarget(t *testing.T) {
	ar := NewArbiter(stubLedger{})
	actor := testNation(1, nations.Balanced) // Broke and blind
	candidate := testNation(2, nations.Balanced)

	s := ar.GenerateNegotiationDeal(actor, candidate, nil, TriggerResult{Purpose: PurposeRequestHelp, Urgency: UrgencyMedium}, 12)
	require.NotNil(t, s)

	require.Equal(t, []ItemKind{ItemAlliance}, kinds(s.Requests))

	// Nothing to sweeten with beyond goodwill.
	assert.Equal(t, []ItemKind{ItemFavorExchange}, kinds(s.Offers))
}

func TestOfferAllianceDeal(t *testing.T) {
	actor := testNation(1, nations.Defensive)
	candidate := testNation(2, nations.Balanced)
	trigger := TriggerResult{Purpose: PurposeOfferAlliance, Urgency: UrgencyMedium}

	t.Run("terms are symmetric", func(t *testing.T) {
		ar := NewArbiter(stubLedger{rel: 30})
		s := ar.GenerateNegotiationDeal(actor, candidate, nil, trigger, 3)
		require.NotNil(t, s)
		assert.Equal(t, []ItemKind{ItemAlliance, ItemOpenBorders}, kinds(s.Offers))
		assert.Equal(t, []ItemKind{ItemAlliance, ItemOpenBorders}, kinds(s.Requests))
		assert.Equal(t, AllianceMilitary, s.Offers[0].Subtype)
	})

	t.Run("warm pairs add a non-aggression rider", func(t *testing.T) {
		ar := NewArbiter(stubLedger{rel: 50})
		s := ar.GenerateNegotiationDeal(actor, candidate, nil, trigger, 3)
		require.NotNil(t, s)
		assert.Equal(t, []ItemKind{ItemAlliance, ItemOpenBorders, ItemTreaty}, kinds(s.Offers))
		assert.Equal(t, []ItemKind{ItemAlliance, ItemOpenBorders, ItemTreaty}, kinds(s.Requests))
		assert.Equal(t, uint64(50), s.Offers[2].Duration)
	})

	t.Run("mutual defense rides the same builder", func(t *testing.T) {
		ar := NewArbiter(stubLedger{})
		s := ar.GenerateNegotiationDeal(actor, candidate, nil, TriggerResult{Purpose: PurposeMutualDefense, Urgency: UrgencyMedium}, 3)
		require.NotNil(t, s)
		assert.Equal(t, []ItemKind{ItemAlliance, ItemOpenBorders}, kinds(s.Offers))
	})
}

func TestReconciliationDeal(t *testing.T) {
	ar := NewArbiter(stubLedger{})
	actor := testNation(1, nations.Balanced)
	actor.Production = 100
	candidate := testNation(2, nations.Balanced)
	theirWound := nations.AddGrievance(candidate, 1, nations.SeverityModerate, 4, "tariff war")
	ourWound := nations.AddGrievance(actor, 2, nations.SeverityMinor, 5, "smuggling")

	s := ar.GenerateNegotiationDeal(actor, candidate, nil, TriggerResult{Purpose: PurposeReconciliation, Urgency: UrgencyMedium}, 8)
	require.NotNil(t, s)

	require.Equal(t, []ItemKind{ItemApology, ItemGold}, kinds(s.Offers))
	assert.Equal(t, theirWound, s.Offers[0].GrievanceID)
	assert.Contains(t, s.Offers[0].Description, "tariff war")
	assert.Equal(t, 15, s.Offers[1].Amount)

	require.Equal(t, []ItemKind{ItemApology, ItemTreaty}, kinds(s.Requests))
	assert.Equal(t, ourWound, s.Requests[0].GrievanceID)
	assert.Equal(t, uint64(20), s.Requests[1].Duration)
}

func TestReconciliationDealOneSided(t *testing.T) {
	ar := NewArbiter(stubLedger{})
	actor := testNation(1, nations.Balanced) // Penniless and blameless
	candidate := testNation(2, nations.Balanced)
	nations.AddGrievance(actor, 2, nations.SeverityMajor, 5, "annexed outpost")

	s := ar.GenerateNegotiationDeal(actor, candidate, nil, TriggerResult{Purpose: PurposePeaceOffer, Urgency: UrgencyMedium}, 8)
	require.NotNil(t, s)

	assert.Empty(t, s.Offers)
	require.Equal(t, []ItemKind{ItemApology, ItemTreaty}, kinds(s.Requests))
}

func TestCompensationDeal(t *testing.T) {
	ar := NewArbiter(stubLedger{})
	actor := testNation(1, nations.Balanced)
	candidate := testNation(2, nations.Balanced)
	wound := nations.AddGrievance(actor, 2, nations.SeveritySevere, 9, "razed the port")

	trigger := TriggerResult{
		Purpose: PurposeDemandCompensation,
		Urgency: UrgencyHigh,
		Context: Context{GrievanceID: wound, Severity: 4},
	}
	s := ar.GenerateNegotiationDeal(actor, candidate, nil, trigger, 10)
	require.NotNil(t, s)

	require.Equal(t, []ItemKind{ItemGold, ItemApology}, kinds(s.Requests))
	assert.Equal(t, 120, s.Requests[0].Amount) // 30 per severity point
	assert.Equal(t, wound, s.Requests[1].GrievanceID)
	assert.Contains(t, s.Requests[1].Description, "razed the port")

	require.Equal(t, []ItemKind{ItemPromise, ItemTreaty}, kinds(s.Offers))
	assert.Equal(t, PromiseDropGrievances, s.Offers[0].Subtype)
}

func TestCompensationDealDefaults(t *testing.T) {
	ar := NewArbiter(stubLedger{})
	actor := testNation(1, nations.Balanced)
	candidate := testNation(2, nations.Balanced)

	s := ar.GenerateNegotiationDeal(actor, candidate, nil, TriggerResult{Purpose: PurposeDemandCompensation, Urgency: UrgencyMedium}, 10)
	require.NotNil(t, s)

	// No grievance on record: default severity, no apology to demand.
	require.Equal(t, []ItemKind{ItemGold}, kinds(s.Requests))
	assert.Equal(t, 90, s.Requests[0].Amount)
}

func TestWarningDeal(t *testing.T) {
	ar := NewArbiter(stubLedger{})
	actor := testNation(1, nations.Aggressive)
	candidate := testNation(2, nations.Balanced)

	s := ar.GenerateNegotiationDeal(actor, candidate, nil, TriggerResult{Purpose: PurposeWarning, Urgency: UrgencyHigh}, 10)
	require.NotNil(t, s)

	require.Equal(t, []ItemKind{ItemPromise, ItemGold}, kinds(s.Requests))
	assert.Equal(t, PromiseCeaseHostility, s.Requests[0].Subtype)
	assert.Equal(t, 50, s.Requests[1].Amount)

	require.Equal(t, []ItemKind{ItemPromise}, kinds(s.Offers))
	assert.Equal(t, PromiseNoRetaliation, s.Offers[0].Subtype)
}

func TestTradeDeal(t *testing.T) {
	trigger := func(r Resource) TriggerResult {
		return TriggerResult{Purpose: PurposeTradeOpportunity, Urgency: UrgencyLow, Context: Context{Resource: r}}
	}

	t.Run("surplus for surplus", func(t *testing.T) {
		ar := NewArbiter(stubLedger{})
		actor := testNation(1, nations.Balanced)
		actor.Production = 200
		candidate := testNation(2, nations.Balanced)
		candidate.Uranium = 150

		s := ar.GenerateNegotiationDeal(actor, candidate, nil, trigger(ResourceGold), 10)
		require.NotNil(t, s)
		require.Equal(t, []ItemKind{ItemGold}, kinds(s.Offers))
		assert.Equal(t, 80, s.Offers[0].Amount)
		require.Equal(t, []ItemKind{ItemUranium}, kinds(s.Requests))
		assert.Equal(t, 40, s.Requests[0].Amount)
	})

	t.Run("payment in kind when they hold no surplus", func(t *testing.T) {
		ar := NewArbiter(stubLedger{})
		actor := testNation(1, nations.Balanced)
		actor.Production = 200
		candidate := testNation(2, nations.Balanced)

		s := ar.GenerateNegotiationDeal(actor, candidate, nil, trigger(ResourceGold), 10)
		require.NotNil(t, s)
		require.Equal(t, []ItemKind{ItemGold}, kinds(s.Requests))
		assert.Equal(t, 60, s.Requests[0].Amount) // Less gold back than went out
	})

	t.Run("derives the offer from stockpiles when unset", func(t *testing.T) {
		ar := NewArbiter(stubLedger{})
		actor := testNation(1, nations.Balanced)
		actor.Intel = 90
		candidate := testNation(2, nations.Balanced)

		s := ar.GenerateNegotiationDeal(actor, candidate, nil, trigger(ResourceNone), 10)
		require.NotNil(t, s)
		require.Equal(t, []ItemKind{ItemIntel}, kinds(s.Offers))
		assert.Equal(t, 40, s.Offers[0].Amount)
		require.Equal(t, []ItemKind{ItemIntel}, kinds(s.Requests))
		assert.Equal(t, 30, s.Requests[0].Amount)
	})

	t.Run("falls back to a favor", func(t *testing.T) {
		ar := NewArbiter(stubLedger{})
		actor := testNation(1, nations.Balanced) // No surplus anywhere
		candidate := testNation(2, nations.Balanced)

		s := ar.GenerateNegotiationDeal(actor, candidate, nil, trigger(ResourceNone), 10)
		require.NotNil(t, s)
		assert.Empty(t, s.Offers)
		require.Equal(t, []ItemKind{ItemFavorExchange}, kinds(s.Requests))
		assert.Equal(t, 1, s.Requests[0].Amount)
	})
}

func TestGenerateNegotiationDealGuards(t *testing.T) {
	ar := NewArbiter(stubLedger{})
	n := testNation(1, nations.Balanced)

	assert.Nil(t, ar.GenerateNegotiationDeal(nil, n, nil, TriggerResult{}, 1))
	assert.Nil(t, ar.GenerateNegotiationDeal(n, nil, nil, TriggerResult{}, 1))
}
