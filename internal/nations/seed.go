// Nation seeding — creates the initial roster with names, personalities,
// endowments derived from territory, and starting forces.
// See design doc Section 3.1.
package nations

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/talgya/statecraft/internal/world"
)

// Seeder creates nations for the simulation.
type Seeder struct {
	rng    *rand.Rand
	nextID NationID
	used   map[string]bool
}

// NewSeeder creates a nation seeder with the given seed.
func NewSeeder(seed int64) *Seeder {
	return &Seeder{
		rng:    rand.New(rand.NewSource(seed + 300)),
		nextID: 1,
		used:   make(map[string]bool),
	}
}

// SetNextID sets the next nation ID to be issued (used when restoring from DB).
func (s *Seeder) SetNextID(id NationID) {
	s.nextID = id
}

// SeedRoster creates count nations, places their capitals on the map,
// partitions territory between them, and derives endowments from what
// each nation controls.
func (s *Seeder) SeedRoster(m *world.Map, count int) []*Nation {
	seats := world.PlaceCapitals(m, count)
	if len(seats) < count {
		count = len(seats)
	}

	roster := make([]*Nation, 0, count)
	capitals := make(map[uint64]world.HexCoord, count)

	for i := 0; i < count; i++ {
		n := s.spawnOne(seats[i].Coord)
		roster = append(roster, n)
		capitals[uint64(n.ID)] = n.Capital
	}

	world.AssignTerritories(m, capitals)

	for _, n := range roster {
		e := world.EndowmentOf(m, uint64(n.ID))
		s.endow(n, e)
		for _, hex := range m.OwnedBy(uint64(n.ID)) {
			n.Territory = append(n.Territory, hex.Coord)
		}
		// Coordinate order keeps rosters independent of map iteration.
		sort.Slice(n.Territory, func(i, j int) bool {
			if n.Territory[i].Q != n.Territory[j].Q {
				return n.Territory[i].Q < n.Territory[j].Q
			}
			return n.Territory[i].R < n.Territory[j].R
		})
	}

	return roster
}

func (s *Seeder) spawnOne(capital world.HexCoord) *Nation {
	id := s.nextID
	s.nextID++

	return &Nation{
		ID:          id,
		Name:        s.generateName(),
		Personality: s.rollPersonality(),
		Capital:     capital,
		Threats:     make(map[NationID]float32),
		Active:      true,
	}
}

// rollPersonality draws from a weighted mix: most nations are balanced or
// defensive, hard-liners and wildcards are the minority.
func (s *Seeder) rollPersonality() Personality {
	r := s.rng.Float32()
	switch {
	case r < 0.25:
		return Balanced
	case r < 0.45:
		return Defensive
	case r < 0.62:
		return Aggressive
	case r < 0.77:
		return Isolationist
	case r < 0.90:
		return Trickster
	default:
		return Chaotic
	}
}

// endow converts territory yields into starting stockpiles and forces.
func (s *Seeder) endow(n *Nation, e world.NationEndowment) {
	jitter := func(base float64, spread float32) float32 {
		return float32(base) * (1 + (s.rng.Float32()*2-1)*spread)
	}

	n.Production = jitter(e.Output*1.6, 0.25)
	n.Intel = jitter(30+e.Strategic*0.8, 0.35)
	n.Uranium = jitter(e.Uranium*4, 0.30)

	// Forces scale with output; temperament shifts the mix.
	base := uint32(20 + e.Output*0.5)
	n.Forces = Forces{
		Infantry: base + uint32(s.rng.Intn(int(base/2+1))),
		Armor:    base/3 + uint32(s.rng.Intn(int(base/4+1))),
		Fleet:    base / 6,
		Aircraft: base / 5,
	}
	switch n.Personality {
	case Aggressive:
		n.Forces.Armor += base / 3
		n.Forces.Aircraft += base / 6
	case Defensive:
		n.Forces.Infantry += base / 2
	case Isolationist:
		n.Forces.Fleet += base / 4
	}
}

// generateName draws names until one is unused, so rosters never carry
// duplicates.
func (s *Seeder) generateName() string {
	for attempt := 0; attempt < 64; attempt++ {
		name := nationRoots[s.rng.Intn(len(nationRoots))] + nationEndings[s.rng.Intn(len(nationEndings))]
		if s.rng.Float32() < 0.45 {
			form := governmentForms[s.rng.Intn(len(governmentForms))]
			name = form + " of " + name
		}
		if !s.used[name] {
			s.used[name] = true
			return name
		}
	}
	name := fmt.Sprintf("Protectorate %d", s.nextID)
	s.used[name] = true
	return name
}

// Name pools for procedural generation.
var nationRoots = []string{
	"Vel", "Kor", "Ash", "Tor", "Bel", "Dra", "Eri", "Fal",
	"Gar", "Hal", "Ist", "Jor", "Kes", "Lor", "Mar", "Nor",
	"Ost", "Pel", "Quar", "Rav", "Sor", "Tal", "Ulm", "Var",
	"Wes", "Yar", "Zan", "Bren", "Cald", "Dorn", "Elv", "Fenn",
}

var nationEndings = []string{
	"mark", "land", "gard", "avia", "onia", "istan", "heim", "dor",
	"enia", "aria", "ovia", "thia", "esse", "una", "ora", "ia",
}

var governmentForms = []string{
	"Republic", "Kingdom", "Federation", "Union", "Commonwealth",
	"Principality", "Dominion", "Confederacy",
}
