package overseer

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// CycleRecord captures what happened in a single overseer cycle.
type CycleRecord struct {
	ID              int64     `db:"id"`
	ObservedAt      time.Time `db:"observed_at"`
	Turn            uint64    `db:"turn"`
	Crisis          string    `db:"crisis"`
	WarRisk         float64   `db:"war_risk"`
	AvgRelationship float64   `db:"avg_relationship"`
	OpenSessions    int       `db:"open_sessions"`
	Action          string    `db:"action"`
	PairA           string    `db:"pair_a"`
	PairB           string    `db:"pair_b"`
	Details         string    `db:"details"`
}

// Memory is the overseer's own sqlite database of past cycles. It survives
// restarts so cooldowns keep holding.
type Memory struct {
	conn *sqlx.DB
}

const memorySchema = `
CREATE TABLE IF NOT EXISTS cycles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    observed_at TIMESTAMP NOT NULL,
    turn INTEGER NOT NULL,
    crisis TEXT NOT NULL,
    war_risk REAL NOT NULL,
    avg_relationship REAL NOT NULL,
    open_sessions INTEGER NOT NULL,
    action TEXT NOT NULL,
    pair_a TEXT NOT NULL DEFAULT '',
    pair_b TEXT NOT NULL DEFAULT '',
    details TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_cycles_turn ON cycles(turn);
`

// OpenMemory opens (creating if needed) the overseer memory database.
func OpenMemory(path string) (*Memory, error) {
	conn, err := sqlx.Connect("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open overseer memory: %w", err)
	}
	if _, err := conn.Exec(memorySchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate overseer memory: %w", err)
	}
	return &Memory{conn: conn}, nil
}

// Close closes the database.
func (m *Memory) Close() error {
	return m.conn.Close()
}

// Record appends one cycle record.
func (m *Memory) Record(r CycleRecord) error {
	if r.ObservedAt.IsZero() {
		r.ObservedAt = time.Now().UTC()
	}
	_, err := m.conn.NamedExec(`
		INSERT INTO cycles
		    (observed_at, turn, crisis, war_risk, avg_relationship, open_sessions, action, pair_a, pair_b, details)
		VALUES
		    (:observed_at, :turn, :crisis, :war_risk, :avg_relationship, :open_sessions, :action, :pair_a, :pair_b, :details)`,
		r)
	if err != nil {
		return fmt.Errorf("record cycle: %w", err)
	}
	return nil
}

// Recent returns the last limit cycles, newest first.
func (m *Memory) Recent(limit int) ([]CycleRecord, error) {
	var recs []CycleRecord
	err := m.conn.Select(&recs,
		"SELECT * FROM cycles ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("recent cycles: %w", err)
	}
	return recs, nil
}
