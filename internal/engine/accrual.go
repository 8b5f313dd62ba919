// Territorial accrual — nations draw stockpiles from the hexes they hold
// and pay upkeep on the forces they field.
// See design doc Section 5.
package engine

import "github.com/talgya/statecraft/internal/economy"

const (
	// Per-turn yield fractions. Output feeds production, strategic ground
	// feeds intelligence work, deposits feed the uranium stock.
	accrualRate       = 0.15
	intelPerStrategic = 0.05
	uraniumRate       = 0.08

	// Stockpiles saturate; a nation cannot hoard forever.
	stockpileCeiling = 5000.0
)

// accrueStockpiles credits each active nation with the yield of its
// territory, less the upkeep of its standing forces. Deterministic: same
// map, same holdings, same income.
func (w *World) accrueStockpiles(turn uint64) {
	for _, n := range w.Nations {
		if !n.Active {
			continue
		}

		var output, uranium, strategic float64
		for _, h := range w.Map.OwnedBy(uint64(n.ID)) {
			output += h.Output
			uranium += h.Uranium
			strategic += h.Strategic
		}

		income := output*accrualRate - economy.UpkeepCost(n.Forces)
		n.Production = creditCapped(n.Production, income)
		n.Intel = creditCapped(n.Intel, strategic*intelPerStrategic)
		n.Uranium = creditCapped(n.Uranium, uranium*uraniumRate)
	}
}

// creditCapped applies a signed delta, clamped to [0, stockpileCeiling].
// A stockpile that cannot cover upkeep drains to zero, not below.
func creditCapped(cur float32, delta float64) float32 {
	next := float64(cur) + delta
	if next < 0 {
		next = 0
	}
	if next > stockpileCeiling {
		next = stockpileCeiling
	}
	return float32(next)
}
