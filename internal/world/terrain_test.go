package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterminism(t *testing.T) {
	a := Generate(SmallTestConfig())
	b := Generate(SmallTestConfig())

	assert.Equal(t, a.Radius, b.Radius)
	assert.Equal(t, a.Hexes, b.Hexes)
}

func TestGenerateShape(t *testing.T) {
	m := Generate(SmallTestConfig())

	// A radius-R disc holds 1 + 3R(R+1) tiles.
	assert.Equal(t, 127, m.HexCount())
	for coord := range m.Hexes {
		assert.True(t, m.InBounds(coord))
	}

	// The six rim corners sit at the full continental falloff, so the
	// noise field is squashed to sea level there no matter the seed.
	corners := []HexCoord{{6, 0}, {-6, 0}, {0, 6}, {0, -6}, {6, -6}, {-6, 6}}
	for _, c := range corners {
		hex := m.Get(c)
		require.NotNil(t, hex)
		assert.Equal(t, TerrainOcean, hex.Terrain, "corner %v", c)
	}
}

func TestGenerateInvariants(t *testing.T) {
	cfg := SmallTestConfig()
	m := Generate(cfg)

	counts := TerrainCounts(m)
	assert.GreaterOrEqual(t, counts[TerrainOcean], 6)
	assert.Positive(t, m.HexCount()-counts[TerrainOcean], "the world is not all water")

	for coord, hex := range m.Hexes {
		ocean := hex.Terrain == TerrainOcean
		assert.Equal(t, ocean, hex.Elevation < cfg.SeaLevel,
			"sea level splits ocean from land at %v", coord)

		switch hex.Terrain {
		case TerrainMountain:
			assert.Greater(t, hex.Elevation, cfg.MountainLvl)
		case TerrainCoast:
			// Coast is a post-pass over low-lying plains.
			assert.Less(t, hex.Elevation, 0.5)
			touchesOcean := false
			for _, nc := range coord.Neighbors() {
				if nh := m.Get(nc); nh != nil && nh.Terrain == TerrainOcean {
					touchesOcean = true
				}
			}
			assert.True(t, touchesOcean, "coast at %v has no ocean neighbor", coord)
		}

		if hex.Uranium > 0 {
			assert.Contains(t, []Terrain{TerrainMountain, TerrainDesert}, hex.Terrain,
				"deposits only form in mountains and deserts")
		}
		if ocean {
			assert.Zero(t, hex.Output)
		} else {
			assert.Positive(t, hex.Output)
		}
		assert.Nil(t, hex.Owner, "generation leaves tiles unclaimed")
	}
}
