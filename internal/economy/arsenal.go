// Unit catalog — branch weights behind the fielded-strength proxy.
// See design doc Section 7.2.
package economy

import "github.com/talgya/statecraft/internal/nations"

// Branch identifies a military unit branch.
type Branch uint8

const (
	BranchInfantry Branch = 0
	BranchArmor    Branch = 1
	BranchFleet    Branch = 2
	BranchAircraft Branch = 3
)

func (b Branch) String() string {
	switch b {
	case BranchInfantry:
		return "infantry"
	case BranchArmor:
		return "armor"
	case BranchFleet:
		return "fleet"
	case BranchAircraft:
		return "aircraft"
	default:
		return "unknown"
	}
}

// UnitSpec describes one branch in the catalog.
type UnitSpec struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"` // Contribution per unit to fielded strength
	Upkeep float64 `json:"upkeep"` // Gold per unit per turn
}

// Catalog lists every branch. Weights price hardware above headcount.
var Catalog = map[Branch]UnitSpec{
	BranchInfantry: {Name: "infantry", Weight: 1, Upkeep: 0.02},
	BranchArmor:    {Name: "armor", Weight: 3, Upkeep: 0.08},
	BranchFleet:    {Name: "fleet", Weight: 4, Upkeep: 0.12},
	BranchAircraft: {Name: "aircraft", Weight: 5, Upkeep: 0.15},
}

// FieldStrength is the weighted strength proxy fed into threat
// perception. Forces.Power stays the flat headcount sum; this one
// weighs branches by the catalog.
func FieldStrength(f nations.Forces) float64 {
	return float64(f.Infantry)*Catalog[BranchInfantry].Weight +
		float64(f.Armor)*Catalog[BranchArmor].Weight +
		float64(f.Fleet)*Catalog[BranchFleet].Weight +
		float64(f.Aircraft)*Catalog[BranchAircraft].Weight
}

// UpkeepCost returns the gold drawn from production each turn to keep f
// fielded.
func UpkeepCost(f nations.Forces) float64 {
	return float64(f.Infantry)*Catalog[BranchInfantry].Upkeep +
		float64(f.Armor)*Catalog[BranchArmor].Upkeep +
		float64(f.Fleet)*Catalog[BranchFleet].Upkeep +
		float64(f.Aircraft)*Catalog[BranchAircraft].Upkeep
}
