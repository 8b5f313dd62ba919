// Load side — row structs mirror the schema; JSON columns unmarshal back
// into their substructures.
package persistence

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/ledger"
	"github.com/talgya/statecraft/internal/nations"
	"github.com/talgya/statecraft/internal/world"
)

// HasWorldState reports whether the database holds a saved world.
func (db *DB) HasWorldState() bool {
	if _, err := db.GetMeta("turn"); err != nil {
		return false
	}
	return true
}

type nationRow struct {
	ID             uint64  `db:"id"`
	Name           string  `db:"name"`
	Personality    uint8   `db:"personality"`
	Production     float32 `db:"production"`
	Intel          float32 `db:"intel"`
	Uranium        float32 `db:"uranium"`
	CapitalQ       int     `db:"capital_q"`
	CapitalR       int     `db:"capital_r"`
	GrievanceSeq   uint64  `db:"grievance_seq"`
	FoundedTurn    uint64  `db:"founded_turn"`
	Active         int     `db:"active"`
	ForcesJSON     string  `db:"forces_json"`
	ThreatsJSON    string  `db:"threats_json"`
	GrievancesJSON string  `db:"grievances_json"`
	ViolationsJSON string  `db:"violations_json"`
	TerritoryJSON  string  `db:"territory_json"`
}

func (r nationRow) toNation() (nations.Nation, error) {
	n := nations.Nation{
		ID:           nations.NationID(r.ID),
		Name:         r.Name,
		Personality:  nations.Personality(r.Personality),
		Production:   r.Production,
		Intel:        r.Intel,
		Uranium:      r.Uranium,
		Capital:      world.HexCoord{Q: r.CapitalQ, R: r.CapitalR},
		GrievanceSeq: r.GrievanceSeq,
		Founded:      r.FoundedTurn,
		Active:       r.Active != 0,
	}
	if err := json.Unmarshal([]byte(r.ForcesJSON), &n.Forces); err != nil {
		return n, fmt.Errorf("nation %d forces: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.ThreatsJSON), &n.Threats); err != nil {
		return n, fmt.Errorf("nation %d threats: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.GrievancesJSON), &n.Grievances); err != nil {
		return n, fmt.Errorf("nation %d grievances: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.ViolationsJSON), &n.Violations); err != nil {
		return n, fmt.Errorf("nation %d violations: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.TerritoryJSON), &n.Territory); err != nil {
		return n, fmt.Errorf("nation %d territory: %w", r.ID, err)
	}
	if n.Threats == nil {
		n.Threats = make(map[nations.NationID]float32)
	}
	return n, nil
}

// LoadNations reads the saved roster.
func (db *DB) LoadNations() ([]nations.Nation, error) {
	var rows []nationRow
	if err := db.conn.Select(&rows, "SELECT * FROM nations ORDER BY id"); err != nil {
		return nil, err
	}

	roster := make([]nations.Nation, 0, len(rows))
	for _, r := range rows {
		n, err := r.toNation()
		if err != nil {
			return nil, err
		}
		roster = append(roster, n)
	}
	return roster, nil
}

// LoadRelations reads the saved standing ledger.
func (db *DB) LoadRelations() ([]ledger.RelationRecord, error) {
	var recs []ledger.RelationRecord
	err := db.conn.Select(&recs,
		"SELECT nation_a, nation_b, relationship, trust, favor FROM relations ORDER BY nation_a, nation_b")
	return recs, err
}

// LoadPacts reads the saved alliance and treaty registries.
func (db *DB) LoadPacts() ([]ledger.Alliance, []ledger.Treaty, error) {
	var alliances []ledger.Alliance
	if err := db.conn.Select(&alliances,
		"SELECT nation_a, nation_b, subtype, formed_turn, expires_at_turn FROM alliances ORDER BY nation_a, nation_b"); err != nil {
		return nil, nil, err
	}

	var treaties []ledger.Treaty
	if err := db.conn.Select(&treaties,
		"SELECT nation_a, nation_b, subtype, formed_turn, expires_at_turn FROM treaties ORDER BY nation_a, nation_b, subtype"); err != nil {
		return nil, nil, err
	}

	return alliances, treaties, nil
}

type sessionRow struct {
	ID            string `db:"id"`
	Proposer      uint64 `db:"proposer"`
	Counterpart   uint64 `db:"counterpart"`
	Purpose       uint8  `db:"purpose"`
	Urgency       uint8  `db:"urgency"`
	Status        uint8  `db:"status"`
	CreatedTurn   uint64 `db:"created_turn"`
	ExpiresAtTurn uint64 `db:"expires_at_turn"`
	CounterOf     string `db:"counter_of"`
	Resolved      int    `db:"resolved"`
	OffersJSON    string `db:"offers_json"`
	RequestsJSON  string `db:"requests_json"`
	ContextJSON   string `db:"context_json"`
}

func (r sessionRow) toSession() (diplomacy.Session, error) {
	s := diplomacy.Session{
		ID:            r.ID,
		Proposer:      nations.NationID(r.Proposer),
		Counterpart:   nations.NationID(r.Counterpart),
		Purpose:       diplomacy.Purpose(r.Purpose),
		Urgency:       diplomacy.Urgency(r.Urgency),
		Status:        diplomacy.Status(r.Status),
		CreatedTurn:   r.CreatedTurn,
		ExpiresAtTurn: r.ExpiresAtTurn,
		CounterOf:     r.CounterOf,
	}
	if err := json.Unmarshal([]byte(r.OffersJSON), &s.Offers); err != nil {
		return s, fmt.Errorf("session %s offers: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.RequestsJSON), &s.Requests); err != nil {
		return s, fmt.Errorf("session %s requests: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.ContextJSON), &s.Context); err != nil {
		return s, fmt.Errorf("session %s context: %w", r.ID, err)
	}
	return s, nil
}

// LoadSessions reads saved sessions, split into open and resolved.
func (db *DB) LoadSessions() (open, resolved []diplomacy.Session, err error) {
	var rows []sessionRow
	if err := db.conn.Select(&rows, "SELECT * FROM sessions ORDER BY created_turn, id"); err != nil {
		return nil, nil, err
	}

	for _, r := range rows {
		s, err := r.toSession()
		if err != nil {
			return nil, nil, err
		}
		if r.Resolved != 0 {
			resolved = append(resolved, s)
		} else {
			open = append(open, s)
		}
	}
	return open, resolved, nil
}

type eventRow struct {
	Turn        uint64 `db:"turn"`
	Description string `db:"description"`
	Category    string `db:"category"`
	MetaJSON    string `db:"meta_json"`
}

func (r eventRow) toEvent() engine.Event {
	e := engine.Event{
		Turn:        r.Turn,
		Description: r.Description,
		Category:    r.Category,
	}
	if r.MetaJSON != "" {
		// Best effort; a malformed meta column loses only annotations.
		json.Unmarshal([]byte(r.MetaJSON), &e.Meta)
	}
	return e
}

// LoadEvents reads the saved event log in insertion order.
func (db *DB) LoadEvents() ([]engine.Event, error) {
	var rows []eventRow
	if err := db.conn.Select(&rows,
		"SELECT turn, description, category, meta_json FROM events ORDER BY id"); err != nil {
		return nil, err
	}

	events := make([]engine.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.toEvent())
	}
	return events, nil
}

// LoadWorldState reads the complete saved snapshot.
func (db *DB) LoadWorldState() (engine.Snapshot, error) {
	var snap engine.Snapshot

	turnStr, err := db.GetMeta("turn")
	if err != nil {
		return snap, fmt.Errorf("no saved world: %w", err)
	}
	snap.Turn, err = strconv.ParseUint(turnStr, 10, 64)
	if err != nil {
		return snap, fmt.Errorf("bad turn meta %q: %w", turnStr, err)
	}

	if snap.Nations, err = db.LoadNations(); err != nil {
		return snap, fmt.Errorf("load nations: %w", err)
	}
	if snap.Relations, err = db.LoadRelations(); err != nil {
		return snap, fmt.Errorf("load relations: %w", err)
	}
	if snap.Alliances, snap.Treaties, err = db.LoadPacts(); err != nil {
		return snap, fmt.Errorf("load pacts: %w", err)
	}
	if snap.Open, snap.Resolved, err = db.LoadSessions(); err != nil {
		return snap, fmt.Errorf("load sessions: %w", err)
	}
	if snap.Events, err = db.LoadEvents(); err != nil {
		return snap, fmt.Errorf("load events: %w", err)
	}

	if statsStr, err := db.GetMeta("stats"); err == nil {
		json.Unmarshal([]byte(statsStr), &snap.Stats)
	}

	return snap, nil
}
