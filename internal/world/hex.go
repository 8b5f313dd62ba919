// Package world provides the hex grid, terrain, and spatial queries.
// Uses axial coordinates (q, r) for the hex grid.
// See design doc Section 2.
package world

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Terrain types for hex tiles.
type Terrain uint8

const (
	TerrainPlains   Terrain = iota // Arable heartland — high industrial output
	TerrainForest                  // Timber and cover
	TerrainMountain                // Ore, uranium seams, natural borders
	TerrainCoast                   // Ports, trade access
	TerrainDesert                  // Sparse, occasional deposits
	TerrainTundra                  // Marginal land
	TerrainOcean                   // Impassable
)

// Hex represents a single tile on the world map.
type Hex struct {
	Coord   HexCoord `json:"coord"`
	Terrain Terrain  `json:"terrain"`

	Elevation float64 `json:"elevation"` // 0.0 (sea level) to 1.0 (peak)

	// Yields feeding national stockpiles at game start.
	Output  float64 `json:"output"`  // Industrial/agricultural potential
	Uranium float64 `json:"uranium"` // Fissile deposit richness

	// Strategic weight: chokepoints, defensible ground, deposits.
	Strategic float64 `json:"strategic"`

	// Controlling nation, if claimed.
	Owner *uint64 `json:"owner,omitempty"`
}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates.
var HexNeighborDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
	}
	return result
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b HexCoord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	ds := a.S() - b.S()
	if dq < 0 {
		dq = -dq
	}
	if dr < 0 {
		dr = -dr
	}
	if ds < 0 {
		ds = -ds
	}
	// Max of the three absolute differences in cube coordinates.
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainPlains:
		return "Plains"
	case TerrainForest:
		return "Forest"
	case TerrainMountain:
		return "Mountain"
	case TerrainCoast:
		return "Coast"
	case TerrainDesert:
		return "Desert"
	case TerrainTundra:
		return "Tundra"
	case TerrainOcean:
		return "Ocean"
	default:
		return "Unknown"
	}
}
