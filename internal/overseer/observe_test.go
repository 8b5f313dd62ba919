package overseer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fixtures ---

// worldAPI stands in for the engine's read endpoints.
func worldAPI(t *testing.T) *httptest.Server {
	t.Helper()

	respond := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(v))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", func(w http.ResponseWriter, r *http.Request) {
		respond(w, StatusData{
			Name:            "balance-of-powers",
			Seed:            42,
			Turn:            12,
			ActiveNations:   3,
			OpenSessions:    1,
			OpenGrievances:  2,
			AvgRelationship: -5.5,
			WarRisk:         30,
		})
	})
	mux.HandleFunc("/api/v1/nations", func(w http.ResponseWriter, r *http.Request) {
		respond(w, []NationSummary{
			{ID: 1, Name: "Aldoria", Personality: "balanced", Power: 900, Allies: 1, Active: true},
			{ID: 2, Name: "Borvena", Personality: "aggressive", Power: 1100, Active: true},
			{ID: 3, Name: "Cassara", Personality: "defensive", Active: false},
		})
	})
	mux.HandleFunc("/api/v1/sessions", func(w http.ResponseWriter, r *http.Request) {
		respond(w, []SessionInfo{
			{ID: "s-1", Proposer: 1, Counterpart: 2, Status: 0, CreatedTurn: 11, ExpiresAtTurn: 21,
				ProposerName: "Aldoria", CounterpartName: "Borvena"},
		})
	})
	mux.HandleFunc("/api/v1/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "40", r.URL.Query().Get("limit"))
		respond(w, []EventInfo{
			{Turn: 11, Description: "Aldoria approaches Borvena with a trade-opportunity proposal", Category: "diplomacy"},
			{Turn: 12, Description: "Borvena forces clash with Aldoria patrols along the frontier", Category: "incident"},
		})
	})
	mux.HandleFunc("/api/v1/nations/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/v1/nations/")
		if id == "3" {
			t.Errorf("fetched standings for an inactive nation")
		}
		standings := map[string][]StandingInfo{
			"1": {{With: 2, Name: "Borvena", Relationship: -40, Trust: 35, Threat: 22}},
			"2": {{With: 1, Name: "Aldoria", Relationship: -40, Trust: 35, Threat: 18}},
		}
		respond(w, map[string]any{"standings": standings[id]})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// --- Observe ---

func TestObserve(t *testing.T) {
	srv := worldAPI(t)
	p, err := NewObserver(srv.URL).Observe()
	require.NoError(t, err)

	assert.Equal(t, uint64(12), p.Status.Turn)
	assert.Equal(t, 30.0, p.Status.WarRisk)
	assert.Equal(t, "balance-of-powers", p.Status.Name)

	require.Len(t, p.Nations, 3)
	assert.Equal(t, "Borvena", p.Nations[1].Name)
	assert.Equal(t, 1100.0, p.Nations[1].Power)

	require.Len(t, p.Sessions, 1)
	assert.Equal(t, "Aldoria", p.Sessions[0].ProposerName)

	require.Len(t, p.Events, 2)
	assert.Equal(t, "incident", p.Events[1].Category)

	// Standings only for the two active nations.
	require.Len(t, p.Standings, 2)
	require.Len(t, p.Standings[1], 1)
	assert.Equal(t, "Borvena", p.Standings[1][0].Name)
	assert.Equal(t, -40.0, p.Standings[1][0].Relationship)
	assert.Equal(t, float32(22), p.Standings[1][0].Threat)
	_, skipped := p.Standings[3]
	assert.False(t, skipped)
}

func TestObserveSurfacesFailures(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "the world is down", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewObserver(srv.URL).Observe()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch status")
		assert.Contains(t, err.Error(), "returned 500")
	})

	t.Run("garbled body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("static over the wire"))
		}))
		defer srv.Close()

		_, err := NewObserver(srv.URL).Observe()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode /api/v1/status")
	})
}
