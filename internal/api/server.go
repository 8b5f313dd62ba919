// Package api provides the HTTP API for querying world state.
// GET endpoints are public (read-only observation).
// POST endpoints under /admin require a bearer token (control plane).
// See design doc Section 8.4.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/talgya/statecraft/internal/communique"
	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/llm"
	"github.com/talgya/statecraft/internal/nations"
)

// Server serves the world state over HTTP.
type Server struct {
	World      *engine.World
	Runner     *engine.Runner
	LLM        *llm.Client
	Renderer   *communique.Renderer
	Port       int
	AdminToken string // Bearer token for admin endpoints. Empty = admin disabled.

	// Cached chronicle (regenerated at most once per turn).
	chronMu       sync.Mutex
	cachedChron   *llm.Chronicle
	lastChronTurn uint64
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// The chronicle can reach the model; everything else just reads
	// snapshots.
	publicLimiter := NewRateLimiter(240, time.Minute)
	chronicleLimiter := NewRateLimiter(30, time.Hour)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only — anyone can check in on the world).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/nations", s.handleNations)
	mux.HandleFunc("/api/v1/nations/", s.handleNationDetail)
	mux.HandleFunc("/api/v1/sessions", s.handleSessions)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/report", s.handleReport)
	mux.HandleFunc("/api/v1/chronicle", RateLimitMiddleware(chronicleLimiter, s.handleChronicle))

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/admin/incident", s.adminOnly(s.handleAdminIncident))
	mux.HandleFunc("/api/v1/admin/relations", s.adminOnly(s.handleAdminRelations))
	mux.HandleFunc("/api/v1/admin/pause", s.adminOnly(s.handleAdminPause))
	mux.HandleFunc("/api/v1/admin/reset", s.adminOnly(s.handleAdminReset))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminToken != "", "llm", s.LLM.Enabled())

	go func() {
		handler := corsMiddleware(RateLimitMiddleware(publicLimiter, mux.ServeHTTP))
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminToken
}

// adminOnly wraps a handler to require POST with a bearer token.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminToken == "" {
			http.Error(w, "admin endpoints disabled (no STATECRAFT_ADMIN_TOKEN set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.World.StatsSnapshot()
	name, seed := s.World.ScenarioInfo()

	paused := false
	if s.Runner != nil {
		paused = s.Runner.Paused()
	}

	writeJSON(w, map[string]any{
		"name":             name,
		"seed":             seed,
		"turn":             stats.Turn,
		"paused":           paused,
		"active_nations":   stats.ActiveNations,
		"open_sessions":    stats.OpenSessions,
		"proposed_total":   stats.Proposed,
		"accepted_total":   stats.Accepted,
		"rejected_total":   stats.Rejected,
		"countered_total":  stats.Countered,
		"expired_total":    stats.Expired,
		"alliances":        stats.Alliances,
		"treaties":         stats.Treaties,
		"open_grievances":  stats.OpenGrievances,
		"avg_relationship": stats.AvgRelationship,
		"war_risk":         stats.WarRisk,
	})
}

func (s *Server) handleNations(w http.ResponseWriter, r *http.Request) {
	type nationSummary struct {
		ID          nations.NationID `json:"id"`
		Name        string           `json:"name"`
		Personality string           `json:"personality"`
		Production  float32          `json:"production"`
		Intel       float32          `json:"intel"`
		Uranium     float32          `json:"uranium"`
		Power       float64          `json:"power"`
		Allies      int              `json:"allies"`
		Grievances  int              `json:"grievances"`
		Violations  int              `json:"violations"`
		Active      bool             `json:"active"`
	}

	roster := s.World.NationsSnapshot()
	result := make([]nationSummary, 0, len(roster))
	for _, n := range roster {
		result = append(result, nationSummary{
			ID:          n.ID,
			Name:        n.Name,
			Personality: n.Personality.String(),
			Production:  n.Production,
			Intel:       n.Intel,
			Uranium:     n.Uranium,
			Power:       n.Forces.Power(),
			Allies:      len(n.Allies),
			Grievances:  len(n.Grievances),
			Violations:  len(n.Violations),
			Active:      n.Active,
		})
	}
	writeJSON(w, result)
}

func (s *Server) handleNationDetail(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/nations/")
	if idStr == "" {
		http.Error(w, "missing nation id", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid nation id", http.StatusBadRequest)
		return
	}

	n, ok := s.World.NationSnapshot(nations.NationID(id))
	if !ok {
		http.Error(w, "nation not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{
		"nation":    n,
		"standings": s.World.StandingsOf(n.ID),
	})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	includeResolved := r.URL.Query().Get("include") == "resolved"
	sessions := s.World.SessionsSnapshot(includeResolved)

	type sessionView struct {
		diplomacy.Session
		ProposerName    string `json:"proposer_name"`
		CounterpartName string `json:"counterpart_name"`
		Message         string `json:"message,omitempty"`
	}

	result := make([]sessionView, 0, len(sessions))
	for i := range sessions {
		sess := sessions[i]
		view := sessionView{Session: sess}
		from, okF := s.World.NationSnapshot(sess.Proposer)
		to, okT := s.World.NationSnapshot(sess.Counterpart)
		if okF && okT {
			view.ProposerName = from.Name
			view.CounterpartName = to.Name
			if s.Renderer != nil {
				view.Message = s.Renderer.Compose(&sess, &from, &to)
			}
		}
		result = append(result, view)
	}
	writeJSON(w, result)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	category := r.URL.Query().Get("category")

	writeJSON(w, s.World.EventsSnapshot(limit, category))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	stats := s.World.StatsSnapshot()
	roster := s.World.NationsSnapshot()

	data := &communique.ReportData{
		Turn:            stats.Turn,
		ActiveNations:   stats.ActiveNations,
		OpenSessions:    stats.OpenSessions,
		Proposed:        stats.Proposed,
		Accepted:        stats.Accepted,
		Rejected:        stats.Rejected,
		Countered:       stats.Countered,
		Expired:         stats.Expired,
		Alliances:       stats.Alliances,
		Treaties:        stats.Treaties,
		OpenGrievances:  stats.OpenGrievances,
		AvgRelationship: stats.AvgRelationship,
		WarRisk:         stats.WarRisk,
	}
	for _, n := range roster {
		if !n.Active {
			continue
		}
		data.Powers = append(data.Powers, communique.PowerLine{
			Name:        n.Name,
			Personality: n.Personality.String(),
			Power:       n.Forces.Power(),
			Production:  float64(n.Production),
			Intel:       float64(n.Intel),
			Uranium:     float64(n.Uranium),
			Allies:      len(n.Allies),
			Grievances:  len(n.Grievances),
		})
	}
	for _, e := range s.World.EventsSnapshot(10, "") {
		data.Events = append(data.Events, e.Description)
	}

	writeJSON(w, map[string]any{
		"turn":   stats.Turn,
		"report": communique.RenderReport(data),
	})
}

func (s *Server) handleChronicle(w http.ResponseWriter, r *http.Request) {
	s.chronMu.Lock()
	defer s.chronMu.Unlock()

	turn := s.World.CurrentTurn()
	if s.cachedChron != nil && s.lastChronTurn == turn {
		writeJSON(w, s.cachedChron)
		return
	}

	chron, err := llm.GenerateChronicle(s.LLM, s.buildChronicleData(turn))
	if err != nil {
		http.Error(w, "chronicle generation failed", http.StatusInternalServerError)
		return
	}

	s.cachedChron = chron
	s.lastChronTurn = turn
	writeJSON(w, chron)
}

// buildChronicleData assembles the briefing the chronicle is written from.
func (s *Server) buildChronicleData(turn uint64) *llm.ChronicleData {
	stats := s.World.StatsSnapshot()

	data := &llm.ChronicleData{
		Turn:            turn,
		ActiveNations:   stats.ActiveNations,
		WarRisk:         stats.WarRisk,
		AvgRelationship: stats.AvgRelationship,
		OpenSessions:    stats.OpenSessions,
		Alliances:       stats.Alliances,
		Treaties:        stats.Treaties,
		OpenGrievances:  stats.OpenGrievances,
	}

	for _, n := range s.World.NationsSnapshot() {
		if !n.Active {
			continue
		}
		data.Powers = append(data.Powers, llm.PowerSummary{
			Name:        n.Name,
			Personality: n.Personality.String(),
			Power:       n.Forces.Power(),
			Allies:      len(n.Allies),
			Grievances:  len(n.Grievances),
		})
	}
	for _, e := range s.World.EventsSnapshot(8, "deal") {
		data.Deals = append(data.Deals, e.Description)
	}
	for _, e := range s.World.EventsSnapshot(8, "incident") {
		data.Incidents = append(data.Incidents, e.Description)
	}
	for _, e := range s.World.EventsSnapshot(12, "diplomacy") {
		data.Diplomacy = append(data.Diplomacy, e.Description)
	}
	return data
}

func (s *Server) handleAdminIncident(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Perpetrator string `json:"perpetrator"`
		Victim      string `json:"victim"`
		Severity    string `json:"severity,omitempty"`
		Cause       string `json:"cause,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Perpetrator == "" || req.Victim == "" {
		http.Error(w, "perpetrator and victim required", http.StatusBadRequest)
		return
	}

	details, err := s.World.InjectIncident(req.Perpetrator, req.Victim, req.Severity, req.Cause)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"success": true, "details": details})
}

func (s *Server) handleAdminRelations(w http.ResponseWriter, r *http.Request) {
	var req struct {
		A     string  `json:"a"`
		B     string  `json:"b"`
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.A == "" || req.B == "" {
		http.Error(w, "both nations required", http.StatusBadRequest)
		return
	}

	details, err := s.World.SetRelations(req.A, req.B, req.Value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"success": true, "details": details})
}

func (s *Server) handleAdminPause(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Paused bool `json:"paused"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if s.Runner == nil {
		http.Error(w, "no turn loop attached", http.StatusServiceUnavailable)
		return
	}

	s.Runner.SetPaused(req.Paused)
	slog.Info("pause intervention", "paused", req.Paused)
	writeJSON(w, map[string]any{"success": true, "paused": req.Paused})
}

func (s *Server) handleAdminReset(w http.ResponseWriter, r *http.Request) {
	details, err := s.World.Reset()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "details": details})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
