package nations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/world"
)

func TestPersonalityRoundTrip(t *testing.T) {
	for p := Personality(0); p < NumPersonalities; p++ {
		parsed, ok := ParsePersonality(p.String())
		require.True(t, ok, p.String())
		assert.Equal(t, p, parsed)
	}

	_, ok := ParsePersonality("belligerent")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Personality(99).String())
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, 1, SeverityMinor.Points())
	assert.Equal(t, 2, SeverityModerate.Points())
	assert.Equal(t, 3, SeverityMajor.Points())
	assert.Equal(t, 4, SeveritySevere.Points())
	assert.Zero(t, Severity(9).Points())
	assert.Equal(t, "unknown", Severity(9).String())

	sev, ok := ParseSeverity("major")
	require.True(t, ok)
	assert.Equal(t, SeverityMajor, sev)
	_, ok = ParseSeverity("apocalyptic")
	assert.False(t, ok)
}

func TestForcesPower(t *testing.T) {
	f := Forces{Infantry: 10, Armor: 20, Fleet: 30, Aircraft: 40}
	assert.Equal(t, 100.0, f.Power())
	assert.Zero(t, Forces{}.Power())
}

func TestGrievanceLifecycle(t *testing.T) {
	n := &Nation{ID: 1, Name: "Aldoria"}

	first := AddGrievance(n, 2, SeverityMinor, 10, "a border shelling")
	second := AddGrievance(n, 3, SeverityMajor, 11, "a spy ring exposed")
	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)
	require.Len(t, n.Grievances, 2)
	assert.Equal(t, NationID(2), n.Grievances[0].Perpetrator)

	assert.True(t, ResolveGrievance(n, first))
	assert.False(t, ResolveGrievance(n, first), "already resolved")
	require.Len(t, n.Grievances, 1)
	assert.Equal(t, second, n.Grievances[0].ID)
}

func TestGrievanceCap(t *testing.T) {
	t.Run("a graver wrong evicts the stalest minor one", func(t *testing.T) {
		n := &Nation{ID: 1}
		for i := 0; i < MaxGrievances; i++ {
			AddGrievance(n, 2, SeverityMinor, uint64(i+1), "a skirmish")
		}
		require.Len(t, n.Grievances, MaxGrievances)

		id := AddGrievance(n, 3, SeverityMajor, 30, "an assassination attempt")
		assert.Equal(t, uint64(MaxGrievances+1), id)
		require.Len(t, n.Grievances, MaxGrievances)

		var ids []uint64
		for _, g := range n.Grievances {
			ids = append(ids, g.ID)
		}
		assert.NotContains(t, ids, uint64(1), "the turn-1 entry gave way")
		assert.Contains(t, ids, id)
	})

	t.Run("a lesser wrong bounces off a full ledger", func(t *testing.T) {
		n := &Nation{ID: 1}
		for i := 0; i < MaxGrievances; i++ {
			AddGrievance(n, 4, SeverityModerate, uint64(i+1), "a tariff raised")
		}

		assert.Zero(t, AddGrievance(n, 4, SeverityMinor, 40, "a harsh word"))
		assert.Len(t, n.Grievances, MaxGrievances)
	})
}

func TestDropGrievancesAgainst(t *testing.T) {
	n := &Nation{}
	AddGrievance(n, 2, SeverityMinor, 1, "a raid")
	AddGrievance(n, 3, SeverityMinor, 2, "a seizure")
	AddGrievance(n, 2, SeverityMajor, 3, "a blockade")

	assert.Equal(t, 2, DropGrievancesAgainst(n, 2))
	require.Len(t, n.Grievances, 1)
	assert.Equal(t, NationID(3), n.Grievances[0].Perpetrator)
	assert.Zero(t, DropGrievancesAgainst(n, 2))
}

func TestGrievanceQueries(t *testing.T) {
	// IDs issue sequentially: the raid is 1, the snub 2, the ambush 3.
	n := &Nation{}
	AddGrievance(n, 2, SeverityMinor, 5, "a raid")
	AddGrievance(n, 2, SeverityModerate, 8, "a snub")
	AddGrievance(n, 3, SeveritySevere, 9, "an ambush")

	assert.Len(t, n.GrievancesBy(2), 2)
	g, ok := n.FirstGrievanceBy(2)
	require.True(t, ok)
	assert.Equal(t, uint64(1), g.ID)
	_, ok = n.FirstGrievanceBy(9)
	assert.False(t, ok)

	// A zero window counts the current turn only.
	assert.Equal(t, 2, n.RecentGrievancePoints(2, 8, 0))
	assert.Equal(t, 3, n.RecentGrievancePoints(2, 8, 3))
	assert.Zero(t, n.RecentGrievancePoints(2, 4, 10), "nothing had happened yet")

	assert.True(t, n.HasRecentSevereGrievance(3, 10, 2))
	assert.False(t, n.HasRecentSevereGrievance(3, 20, 2), "too long ago")
	assert.False(t, n.HasRecentSevereGrievance(2, 10, 5), "nothing severe from 2")
}

func TestViolationsCap(t *testing.T) {
	n := &Nation{}
	for i := 1; i <= MaxViolations+2; i++ {
		AddViolation(n, 4, uint64(i), "non-aggression")
	}
	require.Len(t, n.Violations, MaxViolations)
	assert.Equal(t, uint64(3), n.Violations[0].Turn, "the two oldest rolled off")

	assert.Equal(t, 3, n.RecentViolationsBy(4, 12, 2))
	assert.Zero(t, n.RecentViolationsBy(5, 12, 2))
}

func TestThreatTracking(t *testing.T) {
	n := &Nation{}
	assert.Zero(t, n.ThreatOf(2), "a nil map reads as zero")
	_, _, ok := n.MaxThreat()
	assert.False(t, ok)

	SetThreat(n, 2, 140)
	assert.Equal(t, float32(100), n.ThreatOf(2), "threat clamps at 100")

	SetThreat(n, 3, 40)
	SetThreat(n, 5, 40)
	SetThreat(n, 7, 10)
	level, source, ok := n.MaxThreat()
	require.True(t, ok)
	assert.Equal(t, float32(100), level)
	assert.Equal(t, NationID(2), source)

	SetThreat(n, 2, 0)
	assert.NotContains(t, n.Threats, NationID(2), "zero clears the entry")
	level, source, ok = n.MaxThreat()
	require.True(t, ok)
	assert.Equal(t, float32(40), level)
	assert.Equal(t, NationID(3), source, "ties resolve to the lowest id")

	SetThreat(n, 3, -5)
	assert.NotContains(t, n.Threats, NationID(3), "negative levels clear too")
}

func TestAlliedWith(t *testing.T) {
	n := &Nation{Allies: []NationID{2, 5}}
	assert.True(t, n.AlliedWith(5))
	assert.False(t, n.AlliedWith(3))
	assert.False(t, (&Nation{}).AlliedWith(2))
}

// --- Seeding ---

func TestSeedRosterDeterminism(t *testing.T) {
	a := NewSeeder(42).SeedRoster(world.Generate(world.SmallTestConfig()), 5)
	b := NewSeeder(42).SeedRoster(world.Generate(world.SmallTestConfig()), 5)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, *a[i], *b[i])
	}
}

func TestSeedRoster(t *testing.T) {
	m := world.Generate(world.SmallTestConfig())
	roster := NewSeeder(7).SeedRoster(m, 4)
	require.NotEmpty(t, roster)

	names := make(map[string]bool)
	for i, n := range roster {
		assert.EqualValues(t, i+1, n.ID)
		assert.True(t, n.Active)
		assert.NotEmpty(t, n.Name)
		assert.False(t, names[n.Name], "duplicate name %s", n.Name)
		names[n.Name] = true

		assert.Less(t, n.Personality, Personality(NumPersonalities))
		assert.Positive(t, n.Production)
		assert.Positive(t, n.Intel)
		assert.GreaterOrEqual(t, n.Forces.Infantry, uint32(20))
		assert.NotNil(t, n.Threats)
		assert.NotEqual(t, world.TerrainOcean, m.Get(n.Capital).Terrain)
		assert.Contains(t, n.Territory, n.Capital, "a nation always holds its own capital")
	}
}

func TestSeedRosterFewerSeatsThanAsked(t *testing.T) {
	radius := 2
	m := world.NewMap(radius)
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			c := world.HexCoord{Q: q, R: r}
			if !m.InBounds(c) {
				continue
			}
			m.Set(&world.Hex{Coord: c, Terrain: world.TerrainPlains, Elevation: 0.4, Output: 8})
		}
	}

	// Nineteen tiles seat at most seven capitals at minimum spacing.
	roster := NewSeeder(1).SeedRoster(m, 12)
	assert.GreaterOrEqual(t, len(roster), 3)
	assert.LessOrEqual(t, len(roster), 7)
}

func TestSeederNaming(t *testing.T) {
	s := NewSeeder(1)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		name := s.generateName()
		assert.NotEmpty(t, name)
		assert.False(t, seen[name], "names never repeat: %s", name)
		seen[name] = true
	}
}

func TestSeederNextID(t *testing.T) {
	s := NewSeeder(3)
	s.SetNextID(7)
	assert.Equal(t, NationID(7), s.spawnOne(world.HexCoord{Q: 1, R: -1}).ID)
	assert.Equal(t, NationID(8), s.spawnOne(world.HexCoord{}).ID)
}
