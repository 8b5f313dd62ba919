package diplomacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/nations"
)

func TestStandingModifiers(t *testing.T) {
	cases := []struct {
		name string
		fn   func(float64) float64
		in   float64
		want float64
	}{
		{"relationship floor", RelationshipModifier, -100, -50},
		{"relationship hostile", RelationshipModifier, -40, -20},
		{"relationship neutral", RelationshipModifier, 0, 0},
		{"relationship warm", RelationshipModifier, 60, 30},
		{"relationship ceiling", RelationshipModifier, 100, 50},
		{"trust floor", TrustModifier, 0, -30},
		{"trust low", TrustModifier, 20, -18},
		{"trust neutral", TrustModifier, 50, 0},
		{"trust high", TrustModifier, 80, 18},
		{"trust ceiling", TrustModifier, 100, 30},
		{"favors owed to them", FavorModifier, -4, -2},
		{"favors even", FavorModifier, 0, 0},
		{"favors owed to us", FavorModifier, 3, 1.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.fn(tc.in), 1e-9)
		})
	}
}

func TestPersonalityBonusCountsCategoriesOnce(t *testing.T) {
	s := NewSession(1, 2, PurposeOfferAlliance, UrgencyMedium, 1)
	s.addOffer(AllianceItem(AllianceMilitary, 30))
	s.addOffer(AllianceItem(AllianceMilitary, 10)) // Same category twice
	s.addRequest(TreatyItem(TreatyNonAggression, 20))

	require.InDelta(t, 70, PersonalityBonus(s, testNation(1, nations.Defensive)), 1e-9)
	require.InDelta(t, -50, PersonalityBonus(s, testNation(1, nations.Aggressive)), 1e-9)
}

func TestPersonalityBonusWarlike(t *testing.T) {
	s := NewSession(1, 2, PurposeRequestHelp, UrgencyHigh, 1)
	s.addRequest(JoinWarItem(9, "Velgar"))

	require.InDelta(t, 40, PersonalityBonus(s, testNation(1, nations.Aggressive)), 1e-9)
	require.InDelta(t, -40, PersonalityBonus(s, testNation(1, nations.Defensive)), 1e-9)
}

func TestPersonalityBonusIgnoresPlainTransfers(t *testing.T) {
	s := NewSession(1, 2, PurposeTradeOpportunity, UrgencyLow, 1)
	s.addOffer(GoldItem(80))
	s.addRequest(IntelItem(30))

	for p := nations.Personality(0); p < nations.NumPersonalities; p++ {
		assert.Zero(t, PersonalityBonus(s, testNation(1, p)), "personality %s", p)
	}
}

func TestStrategicValue(t *testing.T) {
	counterpart := testNation(2, nations.Balanced)

	allianceOffer := func() *Session {
		s := NewSession(1, 2, PurposeOfferAlliance, UrgencyMedium, 1)
		s.addOffer(AllianceItem(AllianceMilitary, 30))
		return s
	}

	t.Run("alliance under serious threat", func(t *testing.T) {
		actor := testNation(1, nations.Balanced)
		nations.SetThreat(actor, 9, 20)
		require.InDelta(t, 50, StrategicValue(allianceOffer(), actor, counterpart), 1e-9)
	})

	t.Run("alliance under mild threat", func(t *testing.T) {
		actor := testNation(1, nations.Balanced)
		nations.SetThreat(actor, 9, 12)
		require.InDelta(t, 25, StrategicValue(allianceOffer(), actor, counterpart), 1e-9)
	})

	t.Run("alliance at ease", func(t *testing.T) {
		actor := testNation(1, nations.Balanced)
		nations.SetThreat(actor, 9, 8)
		require.Zero(t, StrategicValue(allianceOffer(), actor, counterpart))
	})

	t.Run("alliance requested is not alliance offered", func(t *testing.T) {
		actor := testNation(1, nations.Balanced)
		nations.SetThreat(actor, 9, 20)
		s := NewSession(1, 2, PurposeOfferAlliance, UrgencyMedium, 1)
		s.addRequest(AllianceItem(AllianceMilitary, 30))
		require.Zero(t, StrategicValue(s, actor, counterpart))
	})

	t.Run("war commitment against a menace", func(t *testing.T) {
		actor := testNation(1, nations.Balanced)
		nations.SetThreat(actor, 9, 15)
		s := NewSession(1, 2, PurposeRequestHelp, UrgencyHigh, 1)
		s.addRequest(JoinWarItem(9, ""))
		require.InDelta(t, 30, StrategicValue(s, actor, counterpart), 1e-9)
	})

	t.Run("war commitment against a nobody", func(t *testing.T) {
		actor := testNation(1, nations.Balanced)
		nations.SetThreat(actor, 9, 5)
		s := NewSession(1, 2, PurposeRequestHelp, UrgencyHigh, 1)
		s.addRequest(JoinWarItem(9, ""))
		require.Zero(t, StrategicValue(s, actor, counterpart))
	})

	t.Run("alliance and war commitment combine", func(t *testing.T) {
		actor := testNation(1, nations.Balanced)
		nations.SetThreat(actor, 9, 20)
		s := allianceOffer()
		s.addRequest(JoinWarItem(9, ""))
		require.InDelta(t, 80, StrategicValue(s, actor, counterpart), 1e-9)
	})
}

func TestGrievancePenalty(t *testing.T) {
	actor := testNation(1, nations.Balanced)
	counterpart := testNation(2, nations.Balanced)

	require.Zero(t, GrievancePenalty(actor, counterpart))

	nations.AddGrievance(actor, 2, nations.SeverityMajor, 1, "border raid")
	nations.AddGrievance(actor, 2, nations.SeverityMajor, 2, "sabotage")
	require.InDelta(t, -40, GrievancePenalty(actor, counterpart), 1e-9)

	// Wrongs by third parties don't color this pair.
	nations.AddGrievance(actor, 3, nations.SeveritySevere, 3, "annexation")
	require.InDelta(t, -40, GrievancePenalty(actor, counterpart), 1e-9)

	nations.AddGrievance(actor, 2, nations.SeverityMinor, 4, "insult")
	require.InDelta(t, -45, GrievancePenalty(actor, counterpart), 1e-9)
}

func TestEvaluateUtilityIsAdditive(t *testing.T) {
	evaluator := testNation(1, nations.Defensive)
	nations.SetThreat(evaluator, 9, 20)
	counterpart := testNation(2, nations.Balanced)
	nations.AddGrievance(evaluator, 2, nations.SeverityModerate, 1, "spy ring")

	s := NewSession(2, 1, PurposeOfferAlliance, UrgencyMedium, 5)
	s.addOffer(AllianceItem(AllianceMilitary, 30))

	// 30 standing + 18 trust + 1 favor + 40 alliance leaning + 50 strategic - 10 grievance
	got := EvaluateUtility(s, evaluator, counterpart, 60, 80, 2)
	require.InDelta(t, 129, got, 1e-9)

	// Same inputs, same answer.
	require.Equal(t, got, EvaluateUtility(s, evaluator, counterpart, 60, 80, 2))
}
