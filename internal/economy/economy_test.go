package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/nations"
)

// --- Fixtures ---

func stockNation(gold, intel, uranium float32) *nations.Nation {
	return &nations.Nation{
		ID:         1,
		Name:       "Arvenne",
		Production: gold,
		Intel:      intel,
		Uranium:    uranium,
		Active:     true,
	}
}

// --- Tests ---

func TestStockOf(t *testing.T) {
	n := stockNation(100, 20, 35)

	assert.Equal(t, 100.0, StockOf(n, diplomacy.ResourceGold))
	assert.Equal(t, 20.0, StockOf(n, diplomacy.ResourceIntel))
	assert.Equal(t, 35.0, StockOf(n, diplomacy.ResourceUranium))
	assert.Zero(t, StockOf(n, diplomacy.ResourceNone))
}

func TestCreditAndDebit(t *testing.T) {
	t.Run("credit adds", func(t *testing.T) {
		n := stockNation(100, 0, 0)
		Credit(n, diplomacy.ResourceGold, 25)
		assert.Equal(t, 125.0, StockOf(n, diplomacy.ResourceGold))
	})

	t.Run("debit takes what it can", func(t *testing.T) {
		n := stockNation(100, 0, 0)
		taken := Debit(n, diplomacy.ResourceGold, 40)
		assert.Equal(t, 40.0, taken)
		assert.Equal(t, 60.0, StockOf(n, diplomacy.ResourceGold))
	})

	t.Run("overdraw drains to zero", func(t *testing.T) {
		n := stockNation(100, 0, 0)
		taken := Debit(n, diplomacy.ResourceGold, 250)
		assert.Equal(t, 100.0, taken)
		assert.Zero(t, StockOf(n, diplomacy.ResourceGold))
	})

	t.Run("non-positive amounts are ignored", func(t *testing.T) {
		n := stockNation(100, 0, 0)
		Credit(n, diplomacy.ResourceGold, -10)
		assert.Zero(t, Debit(n, diplomacy.ResourceGold, -10))
		assert.Equal(t, 100.0, StockOf(n, diplomacy.ResourceGold))
	})

	t.Run("nil nation is safe", func(t *testing.T) {
		Credit(nil, diplomacy.ResourceGold, 10)
		assert.Zero(t, Debit(nil, diplomacy.ResourceGold, 10))
	})
}

func TestTransfer(t *testing.T) {
	from := stockNation(50, 0, 0)
	to := stockNation(10, 0, 0)

	moved := Transfer(from, to, diplomacy.ResourceGold, 80)

	assert.Equal(t, 50.0, moved)
	assert.Zero(t, StockOf(from, diplomacy.ResourceGold))
	assert.Equal(t, 60.0, StockOf(to, diplomacy.ResourceGold))
}

func TestResourceOfItem(t *testing.T) {
	gold, ok := ResourceOfItem(diplomacy.GoldItem(10))
	require.True(t, ok)
	assert.Equal(t, diplomacy.ResourceGold, gold)

	intel, ok := ResourceOfItem(diplomacy.IntelItem(10))
	require.True(t, ok)
	assert.Equal(t, diplomacy.ResourceIntel, intel)

	uranium, ok := ResourceOfItem(diplomacy.UraniumItem(10))
	require.True(t, ok)
	assert.Equal(t, diplomacy.ResourceUranium, uranium)

	_, ok = ResourceOfItem(diplomacy.AllianceItem(diplomacy.AllianceMilitary, 30))
	assert.False(t, ok)
}

func TestFieldStrengthWeighsHardware(t *testing.T) {
	f := nations.Forces{Infantry: 100, Armor: 10, Fleet: 5, Aircraft: 2}

	assert.InDelta(t, 160.0, FieldStrength(f), 1e-9)
	assert.Greater(t, FieldStrength(f), f.Power())
	assert.Zero(t, FieldStrength(nations.Forces{}))
}

func TestUpkeepCost(t *testing.T) {
	f := nations.Forces{Infantry: 100, Armor: 10, Fleet: 5, Aircraft: 2}

	assert.InDelta(t, 3.7, UpkeepCost(f), 1e-9)
}

func TestValueOf(t *testing.T) {
	assert.InDelta(t, 80.0, ValueOf(diplomacy.GoldItem(80)), 1e-9)
	assert.InDelta(t, 100.0, ValueOf(diplomacy.IntelItem(40)), 1e-9)
	assert.InDelta(t, 100.0, ValueOf(diplomacy.UraniumItem(50)), 1e-9)
	assert.InDelta(t, 30.0, ValueOf(diplomacy.FavorItem(2)), 1e-9)
	assert.InDelta(t, 120.0, ValueOf(diplomacy.AllianceItem(diplomacy.AllianceMilitary, 30)), 1e-9)
	assert.InDelta(t, 25.0, ValueOf(diplomacy.ApologyItem(1, "border raid")), 1e-9)
}

func TestAppraise(t *testing.T) {
	s := diplomacy.NewSession(1, 2, diplomacy.PurposeTradeOpportunity, diplomacy.UrgencyLow, 5)
	s.Offers = append(s.Offers, diplomacy.GoldItem(80))
	s.Requests = append(s.Requests, diplomacy.UraniumItem(40), diplomacy.FavorItem(1))

	offered, requested := Appraise(s)

	assert.InDelta(t, 80.0, offered, 1e-9)
	assert.InDelta(t, 95.0, requested, 1e-9)

	offered, requested = Appraise(nil)
	assert.Zero(t, offered)
	assert.Zero(t, requested)
}

func TestCanAfford(t *testing.T) {
	n := stockNation(100, 20, 0)

	assert.True(t, CanAfford(n, []diplomacy.Item{diplomacy.GoldItem(80)}))
	assert.False(t, CanAfford(n, []diplomacy.Item{diplomacy.GoldItem(80), diplomacy.GoldItem(30)}))
	assert.False(t, CanAfford(n, []diplomacy.Item{diplomacy.IntelItem(30)}))

	// Pact items move no resources.
	assert.True(t, CanAfford(n, []diplomacy.Item{diplomacy.AllianceItem(diplomacy.AllianceMilitary, 30)}))
	assert.False(t, CanAfford(nil, nil))
}
