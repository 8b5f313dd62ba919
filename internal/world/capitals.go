// Capital placement — finds suitable seats of power and partitions the
// land between them.
// See design doc Section 2.3.
package world

import (
	"math"
	"sort"
)

// CapitalSeed holds the parameters for an initial capital placement.
type CapitalSeed struct {
	Coord HexCoord
	Score float64 // Desirability score
}

// PlaceCapitals finds locations for count capitals, spread so no two sit
// within minDist of each other. Results are ordered best-first and are
// deterministic for a given map.
func PlaceCapitals(m *Map, count int) []CapitalSeed {
	type scored struct {
		coord HexCoord
		score float64
	}
	var candidates []scored

	for coord, hex := range m.Hexes {
		if hex.Terrain == TerrainOcean {
			continue
		}
		s := capitalScore(m, coord, hex)
		if s > 0 {
			candidates = append(candidates, scored{coord, s})
		}
	}

	// Sort by score descending; coordinate tiebreak keeps placement
	// independent of map iteration order.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].coord.Q != candidates[j].coord.Q {
			return candidates[i].coord.Q < candidates[j].coord.Q
		}
		return candidates[i].coord.R < candidates[j].coord.R
	})

	// Spread scales with map size: cramming eight capitals onto a small
	// continent shrinks the exclusion zone.
	minDist := m.Radius
	if count > 0 {
		minDist = m.Radius * 2 / count
	}
	if minDist < 3 {
		minDist = 3
	}

	var seeds []CapitalSeed
	for dist := minDist; dist >= 2 && len(seeds) < count; dist-- {
		for _, c := range candidates {
			if len(seeds) >= count {
				break
			}
			if tooClose(c.coord, seeds, dist) {
				continue
			}
			seeds = append(seeds, CapitalSeed{Coord: c.coord, Score: c.score})
		}
	}

	return seeds
}

// capitalScore evaluates how desirable a hex is for a seat of power.
// Prefers productive heartland with trade access and defensible surroundings.
func capitalScore(m *Map, coord HexCoord, hex *Hex) float64 {
	score := 0.0

	switch hex.Terrain {
	case TerrainPlains:
		score += 3.0
	case TerrainCoast:
		score += 4.0 // Harbors are prime locations
	case TerrainForest:
		score += 1.5
	case TerrainDesert, TerrainTundra:
		score += 0.5
	case TerrainMountain:
		score += 0.3 // Fortress capitals are rare
	default:
		return 0
	}

	// Bonus for nearby terrain diversity (economic breadth).
	terrainTypes := make(map[Terrain]bool)
	for _, nc := range coord.Neighbors() {
		nh := m.Get(nc)
		if nh != nil && nh.Terrain != TerrainOcean {
			terrainTypes[nh.Terrain] = true
		}
	}
	score += float64(len(terrainTypes)) * 0.3

	// Bonus for sea access.
	for _, nc := range coord.Neighbors() {
		nh := m.Get(nc)
		if nh != nil && (nh.Terrain == TerrainCoast || nh.Terrain == TerrainOcean) {
			score += 0.5
			break
		}
	}

	score += math.Log1p(hex.Output+hex.Strategic) * 0.4

	return score
}

func tooClose(coord HexCoord, existing []CapitalSeed, minDist int) bool {
	for _, s := range existing {
		if Distance(coord, s.Coord) < minDist {
			return true
		}
	}
	return false
}

// AssignTerritories partitions all land between the given capitals:
// each hex goes to the nearest capital, ties to the lowest owner ID.
// Returns per-owner hex counts.
func AssignTerritories(m *Map, capitals map[uint64]HexCoord) map[uint64]int {
	counts := make(map[uint64]int)

	// Stable owner order for tie resolution.
	owners := make([]uint64, 0, len(capitals))
	for id := range capitals {
		owners = append(owners, id)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })

	for coord, hex := range m.Hexes {
		if hex.Terrain == TerrainOcean {
			hex.Owner = nil
			continue
		}
		best := -1
		var bestOwner uint64
		for _, id := range owners {
			d := Distance(coord, capitals[id])
			if best < 0 || d < best {
				best = d
				bestOwner = id
			}
		}
		if best < 0 {
			continue
		}
		owner := bestOwner
		hex.Owner = &owner
		counts[owner]++
	}

	return counts
}

// NationEndowment sums what a nation's territory yields at game start.
type NationEndowment struct {
	Output    float64
	Uranium   float64
	Strategic float64
	Hexes     int
}

// EndowmentOf tallies the yields of all hexes a nation controls.
func EndowmentOf(m *Map, owner uint64) NationEndowment {
	var e NationEndowment
	for _, hex := range m.Hexes {
		if hex.Owner == nil || *hex.Owner != owner {
			continue
		}
		e.Output += hex.Output
		e.Uranium += hex.Uranium
		e.Strategic += hex.Strategic
		e.Hexes++
	}
	return e
}
