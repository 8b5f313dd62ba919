// World generation using layered simplex noise.
// Generates elevation and deposit fields, then derives terrain and the
// strategic-value weighting used for capital placement and threat topology.
// See design doc Section 2.2.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Octave persistence at the inverse golden ratio: keeps ridge detail
// without speckle.
const noisePersistence = 0.6180339887498949

// GenConfig holds world generation parameters.
type GenConfig struct {
	Radius      int     // Hex grid radius (~16 for ~800 hexes)
	Seed        int64   // Random seed (0 = random)
	SeaLevel    float64 // Elevation threshold for ocean (0.0–1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0–1.0)
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:      16,
		Seed:        0,
		SeaLevel:    0.25,
		MountainLvl: 0.72,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Radius:      6,
		Seed:        42,
		SeaLevel:    0.30,
		MountainLvl: 0.75,
	}
}

// Generate creates a complete world map with terrain and deposits.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	// Independent noise layers.
	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)
	oreNoise := opensimplex.NewNormalized(seed + 2)

	m := NewMap(cfg.Radius)

	for q := -cfg.Radius; q <= cfg.Radius; q++ {
		for r := -cfg.Radius; r <= cfg.Radius; r++ {
			s := -q - r
			// Cube coordinate constraint: max(|q|,|r|,|s|) <= radius
			aq, ar, as := absInt(q), absInt(r), absInt(s)
			maxCoord := aq
			if ar > maxCoord {
				maxCoord = ar
			}
			if as > maxCoord {
				maxCoord = as
			}
			if maxCoord > cfg.Radius {
				continue
			}

			coord := HexCoord{Q: q, R: r}

			// Hex axial → cartesian for noise sampling:
			// x = q + r*0.5, y = r * sqrt(3)/2
			x := float64(q) + float64(r)*0.5
			y := float64(r) * math.Sqrt(3.0) / 2.0

			elev := octaveNoise(elevNoise, x, y, 4, 0.08)
			moist := octaveNoise(moistNoise, x, y, 3, 0.06)
			ore := octaveNoise(oreNoise, x, y, 3, 0.11)

			// Continental shaping: drop elevation near the rim so the
			// landmass sits inside an ocean border.
			distFromCenter := math.Sqrt(x*x+y*y) / float64(cfg.Radius)
			edgeFalloff := 1.0 - math.Pow(distFromCenter, 3.5)
			if edgeFalloff < 0 {
				edgeFalloff = 0
			}
			elev *= edgeFalloff

			terrain := deriveTerrain(elev, moist, cfg)

			hex := &Hex{
				Coord:     coord,
				Terrain:   terrain,
				Elevation: elev,
				Output:    outputFor(terrain, moist),
				Uranium:   uraniumFor(terrain, ore),
			}
			hex.Strategic = strategicValue(hex)

			m.Set(hex)
		}
	}

	// Post-pass: mark coastal hexes (land adjacent to ocean).
	markCoastalHexes(m)

	return m
}

// deriveTerrain determines terrain type from environmental parameters.
func deriveTerrain(elev, moist float64, cfg GenConfig) Terrain {
	if elev < cfg.SeaLevel {
		return TerrainOcean
	}
	if elev > cfg.MountainLvl {
		return TerrainMountain
	}
	if moist < 0.25 {
		return TerrainDesert
	}
	if elev > 0.55 && moist < 0.4 {
		return TerrainTundra
	}
	if moist > 0.55 && elev > 0.4 {
		return TerrainForest
	}
	return TerrainPlains
}

// outputFor sets the industrial/agricultural potential of a tile.
func outputFor(terrain Terrain, moist float64) float64 {
	switch terrain {
	case TerrainPlains:
		return 8 + moist*6
	case TerrainCoast:
		return 7 // Port trade
	case TerrainForest:
		return 5
	case TerrainMountain:
		return 3
	case TerrainDesert:
		return 1
	case TerrainTundra:
		return 1.5
	default:
		return 0
	}
}

// uraniumFor seeds fissile deposits: mountains carry the rich seams,
// deserts the occasional find.
func uraniumFor(terrain Terrain, ore float64) float64 {
	switch terrain {
	case TerrainMountain:
		if ore > 0.6 {
			return (ore - 0.6) * 20
		}
	case TerrainDesert:
		if ore > 0.75 {
			return (ore - 0.75) * 12
		}
	}
	return 0
}

// strategicValue weights a tile for capital placement and threat topology:
// defensible ground, deposits, and trade access all count.
func strategicValue(h *Hex) float64 {
	v := h.Output * 0.4
	v += h.Uranium * 1.5
	if h.Terrain == TerrainMountain {
		v += 2 // Natural border
	}
	if h.Terrain == TerrainCoast {
		v += 3 // Sea lanes
	}
	return v
}

// markCoastalHexes converts low plains adjacent to ocean into coast.
func markCoastalHexes(m *Map) {
	var toMark []HexCoord

	for coord, hex := range m.Hexes {
		if hex.Terrain != TerrainPlains || hex.Elevation >= 0.5 {
			continue
		}
		for _, neighbor := range coord.Neighbors() {
			nh := m.Get(neighbor)
			if nh != nil && nh.Terrain == TerrainOcean {
				toMark = append(toMark, coord)
				break
			}
		}
	}

	for _, coord := range toMark {
		hex := m.Get(coord)
		hex.Terrain = TerrainCoast
		hex.Output = outputFor(TerrainCoast, 0)
		hex.Strategic = strategicValue(hex)
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= noisePersistence
		frequency *= 2
	}

	return total / maxVal
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(m *Map) map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, hex := range m.Hexes {
		counts[hex.Terrain]++
	}
	return counts
}
