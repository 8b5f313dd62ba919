// Advisory valuation — rough gold-equivalent pricing of negotiable items.
// Affordability is advisory at proposal time only; settlement clamps
// overdraws instead of rejecting. See design doc Section 7.3.
package economy

import (
	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/nations"
)

// Per-unit prices for resource and favor items.
const (
	priceGold    = 1.0
	priceIntel   = 2.5
	priceUranium = 2.0
	priceFavor   = 15.0
)

// Flat prices for pact and promise items.
var flatPrices = map[diplomacy.ItemKind]float64{
	diplomacy.ItemAlliance:    120,
	diplomacy.ItemTreaty:      60,
	diplomacy.ItemOpenBorders: 40,
	diplomacy.ItemJoinWar:     150,
	diplomacy.ItemPromise:     30,
	diplomacy.ItemApology:     25,
}

// ValueOf prices one item in gold-equivalent units.
func ValueOf(it diplomacy.Item) float64 {
	switch it.Kind {
	case diplomacy.ItemGold:
		return float64(it.Amount) * priceGold
	case diplomacy.ItemIntel:
		return float64(it.Amount) * priceIntel
	case diplomacy.ItemUranium:
		return float64(it.Amount) * priceUranium
	case diplomacy.ItemFavorExchange:
		return float64(it.Amount) * priceFavor
	default:
		return flatPrices[it.Kind]
	}
}

// Appraise totals the two sides of a session in gold-equivalent units.
func Appraise(s *diplomacy.Session) (offered, requested float64) {
	if s == nil {
		return 0, 0
	}
	for _, it := range s.Offers {
		offered += ValueOf(it)
	}
	for _, it := range s.Requests {
		requested += ValueOf(it)
	}
	return offered, requested
}

// CanAfford reports whether n currently holds every resource the items
// would transfer out.
func CanAfford(n *nations.Nation, items []diplomacy.Item) bool {
	if n == nil {
		return false
	}
	need := make(map[diplomacy.Resource]float64)
	for _, it := range items {
		if r, ok := ResourceOfItem(it); ok {
			need[r] += float64(it.Amount)
		}
	}
	for r, amount := range need {
		if StockOf(n, r) < amount {
			return false
		}
	}
	return true
}
