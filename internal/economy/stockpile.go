// Stockpile bookkeeping — resource accounting behind settled transfers.
// See design doc Section 7.
package economy

import (
	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/nations"
)

// StockOf returns n's current holding of r. Gold draws on production.
func StockOf(n *nations.Nation, r diplomacy.Resource) float64 {
	switch r {
	case diplomacy.ResourceGold:
		return float64(n.Production)
	case diplomacy.ResourceIntel:
		return float64(n.Intel)
	case diplomacy.ResourceUranium:
		return float64(n.Uranium)
	default:
		return 0
	}
}

func setStock(n *nations.Nation, r diplomacy.Resource, v float64) {
	if v < 0 {
		v = 0
	}
	switch r {
	case diplomacy.ResourceGold:
		n.Production = float32(v)
	case diplomacy.ResourceIntel:
		n.Intel = float32(v)
	case diplomacy.ResourceUranium:
		n.Uranium = float32(v)
	}
}

// Credit adds amount of r to n's stockpile. Non-positive amounts and
// unknown resources are ignored.
func Credit(n *nations.Nation, r diplomacy.Resource, amount float64) {
	if n == nil || amount <= 0 {
		return
	}
	setStock(n, r, StockOf(n, r)+amount)
}

// Debit removes up to amount of r from n and returns what was actually
// taken. Stockpiles never go negative: an overdraw drains to zero.
func Debit(n *nations.Nation, r diplomacy.Resource, amount float64) float64 {
	if n == nil || amount <= 0 {
		return 0
	}
	have := StockOf(n, r)
	taken := amount
	if taken > have {
		taken = have
	}
	setStock(n, r, have-taken)
	return taken
}

// Transfer moves up to amount of r from one nation to another and
// returns the quantity moved.
func Transfer(from, to *nations.Nation, r diplomacy.Resource, amount float64) float64 {
	moved := Debit(from, r, amount)
	Credit(to, r, moved)
	return moved
}

// ResourceOfItem maps a transfer item onto its stockpile. The second
// return is false for items that move no resources.
func ResourceOfItem(it diplomacy.Item) (diplomacy.Resource, bool) {
	switch it.Kind {
	case diplomacy.ItemGold:
		return diplomacy.ResourceGold, true
	case diplomacy.ItemIntel:
		return diplomacy.ResourceIntel, true
	case diplomacy.ItemUranium:
		return diplomacy.ResourceUranium, true
	default:
		return diplomacy.ResourceNone, false
	}
}
