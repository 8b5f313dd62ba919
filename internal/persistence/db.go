// Package persistence provides SQLite-based world state storage.
// Saves are full-replace inside one transaction per table; substructures
// ride along as JSON text columns.
// See design doc Section 8.3.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/ledger"
	"github.com/talgya/statecraft/internal/nations"
)

// DB wraps a SQLite connection for world state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS nations (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		personality INTEGER NOT NULL,
		production REAL NOT NULL,
		intel REAL NOT NULL,
		uranium REAL NOT NULL,
		capital_q INTEGER NOT NULL,
		capital_r INTEGER NOT NULL,
		grievance_seq INTEGER NOT NULL,
		founded_turn INTEGER NOT NULL,
		active INTEGER NOT NULL,
		forces_json TEXT NOT NULL,
		threats_json TEXT NOT NULL,
		grievances_json TEXT NOT NULL,
		violations_json TEXT NOT NULL,
		territory_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS relations (
		nation_a INTEGER NOT NULL,
		nation_b INTEGER NOT NULL,
		relationship REAL NOT NULL,
		trust REAL NOT NULL,
		favor REAL NOT NULL,
		PRIMARY KEY (nation_a, nation_b)
	);

	CREATE TABLE IF NOT EXISTS alliances (
		nation_a INTEGER NOT NULL,
		nation_b INTEGER NOT NULL,
		subtype TEXT NOT NULL,
		formed_turn INTEGER NOT NULL,
		expires_at_turn INTEGER NOT NULL,
		PRIMARY KEY (nation_a, nation_b)
	);

	CREATE TABLE IF NOT EXISTS treaties (
		nation_a INTEGER NOT NULL,
		nation_b INTEGER NOT NULL,
		subtype TEXT NOT NULL,
		formed_turn INTEGER NOT NULL,
		expires_at_turn INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		proposer INTEGER NOT NULL,
		counterpart INTEGER NOT NULL,
		purpose INTEGER NOT NULL,
		urgency INTEGER NOT NULL,
		status INTEGER NOT NULL,
		created_turn INTEGER NOT NULL,
		expires_at_turn INTEGER NOT NULL,
		counter_of TEXT NOT NULL DEFAULT '',
		resolved INTEGER NOT NULL,
		offers_json TEXT NOT NULL,
		requests_json TEXT NOT NULL,
		context_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		turn INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		meta_json TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS sim_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_turn ON events(turn);
	CREATE INDEX IF NOT EXISTS idx_sessions_resolved ON sessions(resolved);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveNations writes the roster to the database (full replace).
func (db *DB) SaveNations(roster []nations.Nation) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM nations"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO nations
		(id, name, personality, production, intel, uranium,
		 capital_q, capital_r, grievance_seq, founded_turn, active,
		 forces_json, threats_json, grievances_json, violations_json, territory_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range roster {
		forcesJSON, _ := json.Marshal(n.Forces)
		threatsJSON, _ := json.Marshal(n.Threats)
		grievancesJSON, _ := json.Marshal(n.Grievances)
		violationsJSON, _ := json.Marshal(n.Violations)
		territoryJSON, _ := json.Marshal(n.Territory)

		active := 0
		if n.Active {
			active = 1
		}

		_, err := stmt.Exec(
			n.ID, n.Name, n.Personality, n.Production, n.Intel, n.Uranium,
			n.Capital.Q, n.Capital.R, n.GrievanceSeq, n.Founded, active,
			string(forcesJSON), string(threatsJSON), string(grievancesJSON),
			string(violationsJSON), string(territoryJSON),
		)
		if err != nil {
			return fmt.Errorf("insert nation %d: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

// SaveRelations writes the standing ledger to the database.
func (db *DB) SaveRelations(recs []ledger.RelationRecord) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM relations"); err != nil {
		return err
	}

	for _, rec := range recs {
		_, err := tx.Exec(`INSERT INTO relations
			(nation_a, nation_b, relationship, trust, favor)
			VALUES (?, ?, ?, ?, ?)`,
			rec.A, rec.B, rec.Relationship, rec.Trust, rec.Favor,
		)
		if err != nil {
			return fmt.Errorf("insert relation %d-%d: %w", rec.A, rec.B, err)
		}
	}

	return tx.Commit()
}

// SavePacts writes the alliance and treaty registries to the database.
func (db *DB) SavePacts(alliances []ledger.Alliance, treaties []ledger.Treaty) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM alliances"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM treaties"); err != nil {
		return err
	}

	for _, a := range alliances {
		_, err := tx.Exec(`INSERT INTO alliances
			(nation_a, nation_b, subtype, formed_turn, expires_at_turn)
			VALUES (?, ?, ?, ?, ?)`,
			a.A, a.B, a.Subtype, a.FormedTurn, a.ExpiresAtTurn,
		)
		if err != nil {
			return fmt.Errorf("insert alliance %d-%d: %w", a.A, a.B, err)
		}
	}

	for _, t := range treaties {
		_, err := tx.Exec(`INSERT INTO treaties
			(nation_a, nation_b, subtype, formed_turn, expires_at_turn)
			VALUES (?, ?, ?, ?, ?)`,
			t.A, t.B, t.Subtype, t.FormedTurn, t.ExpiresAtTurn,
		)
		if err != nil {
			return fmt.Errorf("insert treaty %d-%d: %w", t.A, t.B, err)
		}
	}

	return tx.Commit()
}

// SaveSessions writes open and resolved sessions to the database.
func (db *DB) SaveSessions(open, resolved []diplomacy.Session) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sessions"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO sessions
		(id, proposer, counterpart, purpose, urgency, status,
		 created_turn, expires_at_turn, counter_of, resolved,
		 offers_json, requests_json, context_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	insert := func(s diplomacy.Session, resolvedFlag int) error {
		offersJSON, _ := json.Marshal(s.Offers)
		requestsJSON, _ := json.Marshal(s.Requests)
		contextJSON, _ := json.Marshal(s.Context)

		_, err := stmt.Exec(
			s.ID, s.Proposer, s.Counterpart, s.Purpose, s.Urgency, s.Status,
			s.CreatedTurn, s.ExpiresAtTurn, s.CounterOf, resolvedFlag,
			string(offersJSON), string(requestsJSON), string(contextJSON),
		)
		return err
	}

	for _, s := range open {
		if err := insert(s, 0); err != nil {
			return fmt.Errorf("insert session %s: %w", s.ID, err)
		}
	}
	for _, s := range resolved {
		if err := insert(s, 1); err != nil {
			return fmt.Errorf("insert session %s: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

// SaveEvents writes the retained event log to the database (full replace).
func (db *DB) SaveEvents(events []engine.Event) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM events"); err != nil {
		return err
	}

	for _, e := range events {
		metaJSON := ""
		if len(e.Meta) > 0 {
			raw, _ := json.Marshal(e.Meta)
			metaJSON = string(raw)
		}
		_, err := tx.Exec(
			"INSERT INTO events (turn, description, category, meta_json) VALUES (?, ?, ?, ?)",
			e.Turn, e.Description, e.Category, metaJSON,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in simulation metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO sim_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM sim_meta WHERE key = ?", key)
	return value, err
}

// SaveWorldState performs a full save of a world snapshot.
func (db *DB) SaveWorldState(snap engine.Snapshot) error {
	slog.Info("saving world state",
		"turn", snap.Turn,
		"nations", len(snap.Nations),
		"open_sessions", len(snap.Open),
	)

	if err := db.SaveNations(snap.Nations); err != nil {
		return fmt.Errorf("save nations: %w", err)
	}
	if err := db.SaveRelations(snap.Relations); err != nil {
		return fmt.Errorf("save relations: %w", err)
	}
	if err := db.SavePacts(snap.Alliances, snap.Treaties); err != nil {
		return fmt.Errorf("save pacts: %w", err)
	}
	if err := db.SaveSessions(snap.Open, snap.Resolved); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	if err := db.SaveEvents(snap.Events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	statsJSON, _ := json.Marshal(snap.Stats)
	if err := db.SaveMeta("stats", string(statsJSON)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta("turn", fmt.Sprintf("%d", snap.Turn)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("world state saved")
	return nil
}

// RecentEvents returns the most recent N events.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var rows []eventRow
	err := db.conn.Select(&rows,
		"SELECT turn, description, category, meta_json FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}

	events := make([]engine.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.toEvent())
	}
	return events, nil
}
