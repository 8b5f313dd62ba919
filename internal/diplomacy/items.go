// Negotiable items — the units of exchange inside a proposal.
// See design doc Section 4.4.
package diplomacy

import (
	"fmt"

	"github.com/talgya/statecraft/internal/nations"
)

// ItemKind tags the union of negotiable item types.
type ItemKind uint8

const (
	ItemGold          ItemKind = 0
	ItemIntel         ItemKind = 1
	ItemUranium       ItemKind = 2
	ItemAlliance      ItemKind = 3
	ItemTreaty        ItemKind = 4
	ItemOpenBorders   ItemKind = 5
	ItemFavorExchange ItemKind = 6
	ItemJoinWar       ItemKind = 7
	ItemPromise       ItemKind = 8
	ItemApology       ItemKind = 9
)

func (k ItemKind) String() string {
	switch k {
	case ItemGold:
		return "gold"
	case ItemIntel:
		return "intel"
	case ItemUranium:
		return "uranium"
	case ItemAlliance:
		return "alliance"
	case ItemTreaty:
		return "treaty"
	case ItemOpenBorders:
		return "open-borders"
	case ItemFavorExchange:
		return "favor-exchange"
	case ItemJoinWar:
		return "join-war"
	case ItemPromise:
		return "promise"
	case ItemApology:
		return "grievance-apology"
	default:
		return "unknown"
	}
}

// Pact and promise subtypes.
const (
	AllianceMilitary      = "military"
	TreatyNonAggression   = "non-aggression"
	TreatyOpenBorders     = "open-borders"
	PromiseCeaseHostility = "cease-aggression"
	PromiseNoRetaliation  = "no-retaliation"
	PromiseDropGrievances = "drop-grievances"
)

// Item is one unit of exchange within a proposal. Only the fields of its
// kind are meaningful; an item has no identity beyond its session.
type Item struct {
	Kind        ItemKind          `json:"kind"`
	Amount      int               `json:"amount,omitempty"`       // Resource transfers, favor counts
	Subtype     string            `json:"subtype,omitempty"`      // Alliance/treaty/promise flavor
	Duration    uint64            `json:"duration,omitempty"`     // Turns, for pacts and promises
	Target      *nations.NationID `json:"target,omitempty"`       // Join-war target
	GrievanceID uint64            `json:"grievance_id,omitempty"` // Apology subject
	Description string            `json:"description"`
}

// Category returns which personality-weight class the item falls in, or
// false when it carries none (plain transfers, favors, apologies).
func (it Item) Category() (string, bool) {
	switch it.Kind {
	case ItemAlliance:
		return "alliance", true
	case ItemTreaty, ItemOpenBorders, ItemPromise:
		return "treaty", true
	case ItemJoinWar:
		return "warlike", true
	default:
		return "", false
	}
}

// GoldItem transfers amount gold (drawn from production).
func GoldItem(amount int) Item {
	return Item{Kind: ItemGold, Amount: amount, Description: fmt.Sprintf("%d gold", amount)}
}

// IntelItem shares amount intelligence.
func IntelItem(amount int) Item {
	return Item{Kind: ItemIntel, Amount: amount, Description: fmt.Sprintf("%d intel", amount)}
}

// UraniumItem transfers amount uranium.
func UraniumItem(amount int) Item {
	return Item{Kind: ItemUranium, Amount: amount, Description: fmt.Sprintf("%d uranium", amount)}
}

// ResourceItem builds the transfer item for a resource kind.
func ResourceItem(r Resource, amount int) (Item, bool) {
	switch r {
	case ResourceGold:
		return GoldItem(amount), true
	case ResourceIntel:
		return IntelItem(amount), true
	case ResourceUranium:
		return UraniumItem(amount), true
	default:
		return Item{}, false
	}
}

// AllianceItem binds the parties in an alliance of the given subtype.
func AllianceItem(subtype string, duration uint64) Item {
	return Item{
		Kind:        ItemAlliance,
		Subtype:     subtype,
		Duration:    duration,
		Description: fmt.Sprintf("%s alliance (%d turns)", subtype, duration),
	}
}

// TreatyItem binds the parties under a treaty of the given subtype.
func TreatyItem(subtype string, duration uint64) Item {
	return Item{
		Kind:        ItemTreaty,
		Subtype:     subtype,
		Duration:    duration,
		Description: fmt.Sprintf("%s treaty (%d turns)", subtype, duration),
	}
}

// OpenBordersItem opens borders for duration turns.
func OpenBordersItem(duration uint64) Item {
	return Item{
		Kind:        ItemOpenBorders,
		Duration:    duration,
		Description: fmt.Sprintf("open borders (%d turns)", duration),
	}
}

// FavorItem exchanges count favors on the reciprocity ledger.
func FavorItem(count int) Item {
	word := "favors"
	if count == 1 {
		word = "favor"
	}
	return Item{Kind: ItemFavorExchange, Amount: count, Description: fmt.Sprintf("%d %s owed", count, word)}
}

// JoinWarItem commits the receiving party to war against target. name is
// for the description only and may be empty.
func JoinWarItem(target nations.NationID, name string) Item {
	t := target
	desc := "join the war"
	if name != "" {
		desc = "join the war against " + name
	}
	return Item{Kind: ItemJoinWar, Target: &t, Description: desc}
}

// PromiseItem records a promise of the given subtype for duration turns.
func PromiseItem(subtype string, duration uint64) Item {
	desc := subtype + " promise"
	if duration > 0 {
		desc = fmt.Sprintf("%s promise (%d turns)", subtype, duration)
	}
	return Item{Kind: ItemPromise, Subtype: subtype, Duration: duration, Description: desc}
}

// ApologyItem is a formal apology for a specific grievance.
func ApologyItem(grievanceID uint64, cause string) Item {
	desc := "formal apology"
	if cause != "" {
		desc = "formal apology for " + cause
	}
	return Item{Kind: ItemApology, GrievanceID: grievanceID, Description: desc}
}
