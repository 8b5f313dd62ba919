// Package nations provides the nation data model: stockpiles, forces,
// threat perception, grievances, and diplomatic standing.
// See design doc Section 3.
package nations

import (
	"github.com/talgya/statecraft/internal/world"
)

// NationID is a unique identifier for a nation.
type NationID uint64

// Personality determines how a nation weighs diplomatic options.
type Personality uint8

const (
	Balanced     Personality = 0
	Aggressive   Personality = 1
	Defensive    Personality = 2
	Isolationist Personality = 3
	Trickster    Personality = 4
	Chaotic      Personality = 5
)

// NumPersonalities is the total number of personality types.
const NumPersonalities = 6

func (p Personality) String() string {
	switch p {
	case Balanced:
		return "balanced"
	case Aggressive:
		return "aggressive"
	case Defensive:
		return "defensive"
	case Isolationist:
		return "isolationist"
	case Trickster:
		return "trickster"
	case Chaotic:
		return "chaotic"
	default:
		return "unknown"
	}
}

// ParsePersonality resolves a scenario-file tag to a Personality.
func ParsePersonality(s string) (Personality, bool) {
	for p := Personality(0); p < NumPersonalities; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return Balanced, false
}

// Severity grades how badly a grievance stings.
type Severity uint8

const (
	SeverityMinor    Severity = 0
	SeverityModerate Severity = 1
	SeverityMajor    Severity = 2
	SeveritySevere   Severity = 3
)

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "minor"
	case SeverityModerate:
		return "moderate"
	case SeverityMajor:
		return "major"
	case SeveritySevere:
		return "severe"
	default:
		return "unknown"
	}
}

// Points returns the escalation points a grievance of this severity
// contributes when deciding whether to demand compensation.
func (s Severity) Points() int {
	switch s {
	case SeverityMinor:
		return 1
	case SeverityModerate:
		return 2
	case SeverityMajor:
		return 3
	case SeveritySevere:
		return 4
	default:
		return 0
	}
}

// ParseSeverity resolves a scenario-file tag to a Severity.
func ParseSeverity(s string) (Severity, bool) {
	for sev := SeverityMinor; sev <= SeveritySevere; sev++ {
		if sev.String() == s {
			return sev, true
		}
	}
	return SeverityMinor, false
}

// Grievance records a wrong this nation holds against another.
type Grievance struct {
	ID          uint64   `json:"id"`
	Perpetrator NationID `json:"perpetrator"`
	Severity    Severity `json:"severity"`
	Turn        uint64   `json:"turn"` // When it happened
	Cause       string   `json:"cause"`
}

// Violation records a breach of this nation's declared agenda by another
// nation (treaty breaks, espionage caught in the act). Supplied by the
// treaty watcher, consumed by the warning evaluator.
type Violation struct {
	Offender NationID `json:"offender"`
	Turn     uint64   `json:"turn"`
	Agenda   string   `json:"agenda"`
}

// Forces holds a nation's standing military by branch.
type Forces struct {
	Infantry uint32 `json:"infantry"`
	Armor    uint32 `json:"armor"`
	Fleet    uint32 `json:"fleet"`
	Aircraft uint32 `json:"aircraft"`
}

// Power is the military proxy score: the plain sum of unit counts.
func (f Forces) Power() float64 {
	return float64(f.Infantry) + float64(f.Armor) + float64(f.Fleet) + float64(f.Aircraft)
}

// Nation is the core entity representing a state actor in the simulation.
type Nation struct {
	ID   NationID `json:"id"`
	Name string   `json:"name"`

	Personality Personality `json:"personality"`

	// Stockpiles. Production is the monetized resource: gold transfers
	// draw on it.
	Production float32 `json:"production"`
	Intel      float32 `json:"intel"`
	Uranium    float32 `json:"uranium"`

	Forces Forces `json:"forces"`

	// Geography
	Capital   world.HexCoord   `json:"capital"`
	Territory []world.HexCoord `json:"territory,omitempty"`

	// Perception: how threatened this nation feels by each rival, 0–100.
	Threats map[NationID]float32 `json:"threats,omitempty"`

	// Standing
	Grievances []Grievance `json:"grievances,omitempty"` // Unresolved only
	Violations []Violation `json:"violations,omitempty"`
	Allies     []NationID  `json:"allies,omitempty"` // Refreshed from the ledger each turn

	GrievanceSeq uint64 `json:"grievance_seq"` // Next grievance ID to issue

	Founded uint64 `json:"founded_turn"`
	Active  bool   `json:"active"`
}

// MaxGrievances caps the unresolved grievance list. When full, the least
// severe (oldest among equals) grievance is dropped to make room.
const MaxGrievances = 20

// MaxViolations caps the agenda-violation list. When full, the oldest is
// dropped.
const MaxViolations = 10

// AddGrievance records a new grievance and returns its ID.
func AddGrievance(n *Nation, perp NationID, sev Severity, turn uint64, cause string) uint64 {
	n.GrievanceSeq++
	g := Grievance{
		ID:          n.GrievanceSeq,
		Perpetrator: perp,
		Severity:    sev,
		Turn:        turn,
		Cause:       cause,
	}

	if len(n.Grievances) < MaxGrievances {
		n.Grievances = append(n.Grievances, g)
		return g.ID
	}

	// Replace the least severe entry, oldest first among equals.
	minIdx := 0
	for i := 1; i < len(n.Grievances); i++ {
		if n.Grievances[i].Severity < n.Grievances[minIdx].Severity ||
			(n.Grievances[i].Severity == n.Grievances[minIdx].Severity &&
				n.Grievances[i].Turn < n.Grievances[minIdx].Turn) {
			minIdx = i
		}
	}
	if g.Severity >= n.Grievances[minIdx].Severity {
		n.Grievances[minIdx] = g
		return g.ID
	}
	return 0
}

// ResolveGrievance removes a grievance by ID. Returns false if unknown.
func ResolveGrievance(n *Nation, id uint64) bool {
	for i, g := range n.Grievances {
		if g.ID == id {
			n.Grievances = append(n.Grievances[:i], n.Grievances[i+1:]...)
			return true
		}
	}
	return false
}

// DropGrievancesAgainst removes every grievance held against perp and
// returns how many were dropped.
func DropGrievancesAgainst(n *Nation, perp NationID) int {
	kept := n.Grievances[:0]
	dropped := 0
	for _, g := range n.Grievances {
		if g.Perpetrator == perp {
			dropped++
			continue
		}
		kept = append(kept, g)
	}
	n.Grievances = kept
	return dropped
}

// AddViolation records an agenda violation, dropping the oldest when full.
func AddViolation(n *Nation, offender NationID, turn uint64, agenda string) {
	v := Violation{Offender: offender, Turn: turn, Agenda: agenda}
	if len(n.Violations) >= MaxViolations {
		n.Violations = n.Violations[1:]
	}
	n.Violations = append(n.Violations, v)
}

// GrievancesBy returns the grievances this nation holds against perp,
// in recording order.
func (n *Nation) GrievancesBy(perp NationID) []Grievance {
	var out []Grievance
	for _, g := range n.Grievances {
		if g.Perpetrator == perp {
			out = append(out, g)
		}
	}
	return out
}

// FirstGrievanceBy returns the earliest-recorded grievance against perp.
func (n *Nation) FirstGrievanceBy(perp NationID) (Grievance, bool) {
	for _, g := range n.Grievances {
		if g.Perpetrator == perp {
			return g, true
		}
	}
	return Grievance{}, false
}

// RecentGrievancePoints sums severity points of grievances perp caused
// within the last window turns (exclusive of older ones).
func (n *Nation) RecentGrievancePoints(perp NationID, turn, window uint64) int {
	total := 0
	for _, g := range n.Grievances {
		if g.Perpetrator != perp || g.Turn > turn {
			continue
		}
		if turn-g.Turn <= window {
			total += g.Severity.Points()
		}
	}
	return total
}

// HasRecentSevereGrievance reports whether perp caused a severe grievance
// within the last window turns.
func (n *Nation) HasRecentSevereGrievance(perp NationID, turn, window uint64) bool {
	for _, g := range n.Grievances {
		if g.Perpetrator == perp && g.Severity == SeveritySevere && g.Turn <= turn && turn-g.Turn <= window {
			return true
		}
	}
	return false
}

// RecentViolationsBy counts agenda violations by offender within the last
// window turns.
func (n *Nation) RecentViolationsBy(offender NationID, turn, window uint64) int {
	count := 0
	for _, v := range n.Violations {
		if v.Offender == offender && v.Turn <= turn && turn-v.Turn <= window {
			count++
		}
	}
	return count
}

// AlliedWith reports whether other appears in the alliance view.
func (n *Nation) AlliedWith(other NationID) bool {
	for _, id := range n.Allies {
		if id == other {
			return true
		}
	}
	return false
}

// ThreatOf returns the perceived threat from other, zero if untracked.
func (n *Nation) ThreatOf(other NationID) float32 {
	if n.Threats == nil {
		return 0
	}
	return n.Threats[other]
}

// MaxThreat returns the highest perceived threat and who poses it.
// Ties resolve to the lowest nation ID so evaluation order never depends
// on map iteration. ok is false when no threats are tracked.
func (n *Nation) MaxThreat() (level float32, source NationID, ok bool) {
	for id, v := range n.Threats {
		if !ok || v > level || (v == level && id < source) {
			level, source, ok = v, id, true
		}
	}
	return level, source, ok
}

// SetThreat records the perceived threat from other, clamped to 0–100.
func SetThreat(n *Nation, other NationID, level float32) {
	if n.Threats == nil {
		n.Threats = make(map[NationID]float32)
	}
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	if level == 0 {
		delete(n.Threats, other)
		return
	}
	n.Threats[other] = level
}
