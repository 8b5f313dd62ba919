// Package overseer implements the autonomous diplomatic watchdog.
// It observes world state via the API, diagnoses diplomatic health with a
// deterministic rule table, and acts through the admin endpoints.
package overseer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Pulse holds all data collected during an observation cycle.
type Pulse struct {
	Status    StatusData                `json:"status"`
	Nations   []NationSummary           `json:"nations"`
	Sessions  []SessionInfo             `json:"sessions"`
	Events    []EventInfo               `json:"events"`
	Standings map[uint64][]StandingInfo `json:"standings"`
}

// StatusData mirrors GET /api/v1/status.
type StatusData struct {
	Name            string  `json:"name"`
	Seed            int64   `json:"seed"`
	Turn            uint64  `json:"turn"`
	Paused          bool    `json:"paused"`
	ActiveNations   int     `json:"active_nations"`
	OpenSessions    int     `json:"open_sessions"`
	ProposedTotal   uint64  `json:"proposed_total"`
	AcceptedTotal   uint64  `json:"accepted_total"`
	RejectedTotal   uint64  `json:"rejected_total"`
	CounteredTotal  uint64  `json:"countered_total"`
	ExpiredTotal    uint64  `json:"expired_total"`
	Alliances       int     `json:"alliances"`
	Treaties        int     `json:"treaties"`
	OpenGrievances  int     `json:"open_grievances"`
	AvgRelationship float64 `json:"avg_relationship"`
	WarRisk         float64 `json:"war_risk"`
}

// NationSummary mirrors items from GET /api/v1/nations.
type NationSummary struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Personality string  `json:"personality"`
	Production  float32 `json:"production"`
	Intel       float32 `json:"intel"`
	Uranium     float32 `json:"uranium"`
	Power       float64 `json:"power"`
	Allies      int     `json:"allies"`
	Grievances  int     `json:"grievances"`
	Violations  int     `json:"violations"`
	Active      bool    `json:"active"`
}

// SessionInfo mirrors items from GET /api/v1/sessions. Offers and requests
// are omitted; the overseer only cares about lifecycle and age.
type SessionInfo struct {
	ID              string `json:"id"`
	Proposer        uint64 `json:"proposer"`
	Counterpart     uint64 `json:"counterpart"`
	Purpose         uint8  `json:"purpose"`
	Status          uint8  `json:"status"`
	CreatedTurn     uint64 `json:"created_turn"`
	ExpiresAtTurn   uint64 `json:"expires_at_turn"`
	ProposerName    string `json:"proposer_name"`
	CounterpartName string `json:"counterpart_name"`
}

// EventInfo mirrors items from GET /api/v1/events.
type EventInfo struct {
	Turn        uint64 `json:"turn"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// StandingInfo mirrors one row of the standings array from
// GET /api/v1/nations/{id}.
type StandingInfo struct {
	With         uint64  `json:"with"`
	Name         string  `json:"name"`
	Relationship float64 `json:"relationship"`
	Trust        float64 `json:"trust"`
	Favors       float64 `json:"favors"`
	Allied       bool    `json:"allied"`
	Threat       float32 `json:"threat"`
}

// Observer fetches world state from the API.
type Observer struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewObserver creates an Observer targeting the given API base URL.
func NewObserver(baseURL string) *Observer {
	return &Observer{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Observe fetches the public endpoints and returns a Pulse. Standings come
// from the per-nation detail endpoint, one call per active nation.
func (o *Observer) Observe() (*Pulse, error) {
	p := &Pulse{}

	if err := o.fetchJSON("/api/v1/status", &p.Status); err != nil {
		return nil, fmt.Errorf("fetch status: %w", err)
	}
	if err := o.fetchJSON("/api/v1/nations", &p.Nations); err != nil {
		return nil, fmt.Errorf("fetch nations: %w", err)
	}
	if err := o.fetchJSON("/api/v1/sessions", &p.Sessions); err != nil {
		return nil, fmt.Errorf("fetch sessions: %w", err)
	}
	if err := o.fetchJSON("/api/v1/events?limit=40", &p.Events); err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	p.Standings = make(map[uint64][]StandingInfo)
	for _, n := range p.Nations {
		if !n.Active {
			continue
		}
		var detail struct {
			Standings []StandingInfo `json:"standings"`
		}
		if err := o.fetchJSON(fmt.Sprintf("/api/v1/nations/%d", n.ID), &detail); err != nil {
			return nil, fmt.Errorf("fetch nation %d: %w", n.ID, err)
		}
		p.Standings[n.ID] = detail.Standings
	}

	return p, nil
}

// fetchJSON GETs a path and decodes the JSON response into target.
func (o *Observer) fetchJSON(path string, target any) error {
	resp, err := o.HTTPClient.Get(o.BaseURL + path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s returned %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
