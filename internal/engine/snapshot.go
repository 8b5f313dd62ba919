// Snapshots — consistent copies of world state for the API and the save
// path. The turn loop mutates in place; everyone else gets copies.
package engine

import (
	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/ledger"
	"github.com/talgya/statecraft/internal/nations"
	"github.com/talgya/statecraft/internal/world"
)

// Snapshot is the full dynamic state of a world: everything the save
// path needs to bring it back, minus the map (regenerated from the
// scenario seed).
type Snapshot struct {
	Turn      uint64                  `json:"turn"`
	Nations   []nations.Nation        `json:"nations"`
	Relations []ledger.RelationRecord `json:"relations"`
	Alliances []ledger.Alliance       `json:"alliances"`
	Treaties  []ledger.Treaty         `json:"treaties"`
	Open      []diplomacy.Session     `json:"open"`
	Resolved  []diplomacy.Session     `json:"resolved"`
	Events    []Event                 `json:"events"`
	Stats     WorldStats              `json:"stats"`
}

// Capture copies out the complete dynamic state.
func (w *World) Capture() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	snap := Snapshot{
		Turn:      w.Turn,
		Nations:   make([]nations.Nation, 0, len(w.Nations)),
		Relations: w.Led.Records(),
		Alliances: w.Led.Alliances(),
		Treaties:  w.Led.Treaties(),
		Open:      copySessions(w.Open),
		Resolved:  copySessions(w.Resolved),
		Events:    append([]Event(nil), w.Events...),
		Stats:     w.Stats,
	}
	for _, n := range w.Nations {
		snap.Nations = append(snap.Nations, cloneNation(n))
	}
	return snap
}

// Restore overlays a snapshot onto this world. The map and scenario stay
// as materialized at construction; the roster, ledger, sessions, events,
// and turn counter come from the snapshot.
func (w *World) Restore(snap Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	roster := make([]*nations.Nation, 0, len(snap.Nations))
	index := make(map[nations.NationID]*nations.Nation, len(snap.Nations))
	for i := range snap.Nations {
		n := snap.Nations[i]
		roster = append(roster, &n)
		index[n.ID] = &n
	}
	w.Nations = roster
	w.Index = index

	w.Led.RestoreRelations(snap.Relations)
	w.Led.RestoreAlliances(snap.Alliances)
	w.Led.RestoreTreaties(snap.Treaties)

	w.Open = sessionPtrs(snap.Open)
	w.Resolved = sessionPtrs(snap.Resolved)
	w.Events = append([]Event(nil), snap.Events...)
	w.Turn = snap.Turn
	w.Stats = snap.Stats

	w.refreshAllies()
	w.updateStats()
}

// StatsSnapshot returns the latest aggregate statistics.
func (w *World) StatsSnapshot() WorldStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.Stats
}

// EventsSnapshot returns up to limit most recent events, optionally
// filtered by category. A non-positive limit means all retained events.
func (w *World) EventsSnapshot(limit int, category string) []Event {
	w.mu.RLock()
	defer w.mu.RUnlock()

	events := w.Events
	if category != "" {
		filtered := make([]Event, 0, len(events))
		for _, e := range events {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	} else {
		events = append([]Event(nil), events...)
	}

	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events
}

// NationsSnapshot returns copies of the roster in ID order.
func (w *World) NationsSnapshot() []nations.Nation {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]nations.Nation, 0, len(w.Nations))
	for _, n := range w.Nations {
		out = append(out, cloneNation(n))
	}
	return out
}

// NationSnapshot returns a copy of one nation.
func (w *World) NationSnapshot(id nations.NationID) (nations.Nation, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	n, ok := w.Index[id]
	if !ok {
		return nations.Nation{}, false
	}
	return cloneNation(n), true
}

// Standing is one row of a nation's view of another: ledger values plus
// its own threat reading.
type Standing struct {
	With         nations.NationID `json:"with"`
	Name         string           `json:"name"`
	Relationship float64          `json:"relationship"`
	Trust        float64          `json:"trust"`
	Favors       float64          `json:"favors"`
	Allied       bool             `json:"allied"`
	Threat       float32          `json:"threat"`
}

// StandingsOf returns id's view of every other active nation, in roster
// order.
func (w *World) StandingsOf(id nations.NationID) []Standing {
	w.mu.RLock()
	defer w.mu.RUnlock()

	self, ok := w.Index[id]
	if !ok {
		return nil
	}

	out := make([]Standing, 0, len(w.Nations)-1)
	for _, other := range w.Nations {
		if other.ID == id || !other.Active {
			continue
		}
		out = append(out, Standing{
			With:         other.ID,
			Name:         other.Name,
			Relationship: w.Led.Relationship(id, other.ID),
			Trust:        w.Led.Trust(id, other.ID),
			Favors:       w.Led.FavorBalance(id, other.ID),
			Allied:       w.Led.Allied(id, other.ID),
			Threat:       self.ThreatOf(other.ID),
		})
	}
	return out
}

// SessionsSnapshot returns copies of sessions in flight, plus the
// resolved archive when asked.
func (w *World) SessionsSnapshot(includeResolved bool) []diplomacy.Session {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := copySessions(w.Open)
	if includeResolved {
		out = append(out, copySessions(w.Resolved)...)
	}
	return out
}

// PactsSnapshot returns the standing alliances and treaties.
func (w *World) PactsSnapshot() ([]ledger.Alliance, []ledger.Treaty) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.Led.Alliances(), w.Led.Treaties()
}

// ScenarioInfo returns the loaded scenario's name and seed.
func (w *World) ScenarioInfo() (string, int64) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.sc == nil {
		return "", 0
	}
	return w.sc.Name, w.sc.Seed
}

// cloneNation deep-copies the mutable parts of a nation so marshaling
// never races the turn loop.
func cloneNation(n *nations.Nation) nations.Nation {
	c := *n
	c.Threats = make(map[nations.NationID]float32, len(n.Threats))
	for k, v := range n.Threats {
		c.Threats[k] = v
	}
	c.Grievances = append([]nations.Grievance(nil), n.Grievances...)
	c.Violations = append([]nations.Violation(nil), n.Violations...)
	c.Allies = append([]nations.NationID(nil), n.Allies...)
	c.Territory = append([]world.HexCoord(nil), n.Territory...)
	return c
}

func copySessions(in []*diplomacy.Session) []diplomacy.Session {
	out := make([]diplomacy.Session, 0, len(in))
	for _, s := range in {
		c := *s
		c.Offers = append([]diplomacy.Item(nil), s.Offers...)
		c.Requests = append([]diplomacy.Item(nil), s.Requests...)
		out = append(out, c)
	}
	return out
}

func sessionPtrs(in []diplomacy.Session) []*diplomacy.Session {
	out := make([]*diplomacy.Session, 0, len(in))
	for i := range in {
		s := in[i]
		out = append(out, &s)
	}
	return out
}
