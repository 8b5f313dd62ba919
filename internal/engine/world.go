// World ties together the map, the roster, the standing ledger, and the
// negotiation core, and advances them one turn at a time.
// See design doc Section 6.
package engine

import (
	"sort"
	"sync"

	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/ledger"
	"github.com/talgya/statecraft/internal/nations"
	"github.com/talgya/statecraft/internal/scenario"
	"github.com/talgya/statecraft/internal/world"
)

// World holds the complete simulation state. All exported methods lock;
// the turn loop and the API may touch it from different goroutines.
type World struct {
	mu sync.RWMutex

	Map     *world.Map
	Nations []*nations.Nation
	Index   map[nations.NationID]*nations.Nation
	Led     *ledger.Ledger
	Arbiter *diplomacy.Arbiter

	// Sessions in flight (proposed, awaiting response) and a bounded
	// archive of resolved ones.
	Open     []*diplomacy.Session
	Resolved []*diplomacy.Session

	Events []Event
	Turn   uint64
	Stats  WorldStats

	sc *scenario.Scenario // Kept for admin reset
}

// Event is a notable occurrence in the world.
type Event struct {
	Turn        uint64         `json:"turn"`
	Description string         `json:"description"`
	Category    string         `json:"category"` // "diplomacy", "deal", "incident", "treaty", "pact", "admin"
	Meta        map[string]any `json:"meta,omitempty"`
}

// WorldStats tracks aggregate simulation statistics, refreshed each turn.
type WorldStats struct {
	Turn            uint64  `json:"turn"`
	ActiveNations   int     `json:"active_nations"`
	OpenSessions    int     `json:"open_sessions"`
	Proposed        uint64  `json:"proposed_total"`
	Accepted        uint64  `json:"accepted_total"`
	Rejected        uint64  `json:"rejected_total"`
	Countered       uint64  `json:"countered_total"`
	Expired         uint64  `json:"expired_total"`
	Alliances       int     `json:"alliances"`
	Treaties        int     `json:"treaties"`
	OpenGrievances  int     `json:"open_grievances"`
	AvgRelationship float64 `json:"avg_relationship"`
	WarRisk         float64 `json:"war_risk"` // 0–100
}

const (
	maxEvents   = 1000
	maxResolved = 200
)

// NewWorld materializes a scenario into a running world.
func NewWorld(sc *scenario.Scenario) (*World, error) {
	m, roster, led, err := sc.Materialize()
	if err != nil {
		return nil, err
	}

	w := &World{sc: sc}
	w.install(m, roster, led)
	return w, nil
}

// install wires freshly materialized state. Callers hold the lock (or
// own the world exclusively, as NewWorld does).
func (w *World) install(m *world.Map, roster []*nations.Nation, led *ledger.Ledger) {
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })

	index := make(map[nations.NationID]*nations.Nation, len(roster))
	for _, n := range roster {
		index[n.ID] = n
	}

	w.Map = m
	w.Nations = roster
	w.Index = index
	w.Led = led
	w.Arbiter = diplomacy.NewArbiter(led)
	w.Open = nil
	w.Resolved = nil
	w.Events = nil
	w.Turn = 0
	w.Stats = WorldStats{}
	w.updateStats()
}

// CurrentTurn returns the most recently processed turn number.
func (w *World) CurrentTurn() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.Turn
}

// emitEvent records an event. Callers hold the lock.
func (w *World) emitEvent(e Event) {
	w.Events = append(w.Events, e)
	if len(w.Events) > maxEvents {
		w.Events = w.Events[len(w.Events)-maxEvents:]
	}
}

// archive moves a terminal session into the bounded archive. Callers
// hold the lock.
func (w *World) archive(s *diplomacy.Session) {
	w.Resolved = append(w.Resolved, s)
	if len(w.Resolved) > maxResolved {
		w.Resolved = w.Resolved[len(w.Resolved)-maxResolved:]
	}
}

func (w *World) findNationByName(name string) *nations.Nation {
	for _, n := range w.Nations {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// updateStats recomputes aggregate statistics. Callers hold the lock.
func (w *World) updateStats() {
	active := 0
	grievances := 0
	for _, n := range w.Nations {
		if !n.Active {
			continue
		}
		active++
		grievances += len(n.Grievances)
	}

	relSum := 0.0
	hostile := 0
	pairs := 0
	threatSum := 0.0
	for i, a := range w.Nations {
		if !a.Active {
			continue
		}
		if level, _, ok := a.MaxThreat(); ok {
			threatSum += float64(level)
		}
		for _, b := range w.Nations[i+1:] {
			if !b.Active {
				continue
			}
			rel := w.Led.Relationship(a.ID, b.ID)
			relSum += rel
			pairs++
			if rel < -40 {
				hostile++
			}
		}
	}

	w.Stats.Turn = w.Turn
	w.Stats.ActiveNations = active
	w.Stats.OpenSessions = len(w.Open)
	w.Stats.Alliances = len(w.Led.Alliances())
	w.Stats.Treaties = len(w.Led.Treaties())
	w.Stats.OpenGrievances = grievances

	if pairs > 0 {
		w.Stats.AvgRelationship = relSum / float64(pairs)
		hostileShare := float64(hostile) / float64(pairs)
		avgThreat := threatSum / float64(active)
		w.Stats.WarRisk = clamp01(hostileShare)*60 + clamp01(avgThreat/100)*40
	} else {
		w.Stats.AvgRelationship = 0
		w.Stats.WarRisk = 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// refreshAllies mirrors the alliance registry onto each nation. Callers
// hold the lock.
func (w *World) refreshAllies() {
	for _, n := range w.Nations {
		n.Allies = w.Led.AlliesOf(n.ID)
	}
}
