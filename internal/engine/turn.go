// Turn loop — advances the world on a fixed cadence.
// See design doc Section 6.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/talgya/statecraft/internal/nations"
)

// AdvanceTurn runs one full turn: territorial income, expiry sweeps,
// incidents, violation detection, pending responses, fresh diplomacy
// rounds, then drift. Every step is deterministic for a given world state.
func (w *World) AdvanceTurn() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.Turn++
	turn := w.Turn

	w.accrueStockpiles(turn)
	w.sweepExpired(turn)
	w.generateIncidents(turn)
	w.detectViolations(turn)
	w.respondToPending(turn)
	w.holdDiplomacyRounds(turn)
	w.applyDrift(turn)
	w.refreshAllies()
	w.updateStats()

	slog.Info("turn report",
		"turn", turn,
		"open_sessions", w.Stats.OpenSessions,
		"accepted", w.Stats.Accepted,
		"rejected", w.Stats.Rejected,
		"countered", w.Stats.Countered,
		"expired", w.Stats.Expired,
		"alliances", w.Stats.Alliances,
		"war_risk", int(w.Stats.WarRisk),
	)
	return turn
}

// sweepExpired retires sessions past their window and pacts past their
// term.
func (w *World) sweepExpired(turn uint64) {
	open := w.Open[:0]
	for _, s := range w.Open {
		if s.ExpireIfDue(turn) {
			w.Stats.Expired++
			w.Led.AdjustRelationship(s.Proposer, s.Counterpart, expireRelPenalty)
			w.emitEvent(Event{
				Turn:        turn,
				Description: "a " + s.Purpose.String() + " proposal lapsed unanswered",
				Category:    "diplomacy",
				Meta:        map[string]any{"session_id": s.ID},
			})
		}
		if s.Terminal() {
			w.archive(s)
			continue
		}
		open = append(open, s)
	}
	w.Open = open

	lapsedAlliances, lapsedTreaties := w.Led.ExpirePacts(turn)
	for _, a := range lapsedAlliances {
		w.emitEvent(Event{
			Turn:        turn,
			Description: "the " + a.Subtype + " alliance between " + w.nameOf(a.A) + " and " + w.nameOf(a.B) + " has run its term",
			Category:    "pact",
		})
	}
	for _, t := range lapsedTreaties {
		w.emitEvent(Event{
			Turn:        turn,
			Description: "the " + t.Subtype + " treaty between " + w.nameOf(t.A) + " and " + w.nameOf(t.B) + " has lapsed",
			Category:    "pact",
		})
	}
}

func (w *World) nameOf(id nations.NationID) string {
	if n, ok := w.Index[id]; ok {
		return n.Name
	}
	return "an unknown power"
}

// Runner drives the world forward on a wall-clock interval.
type Runner struct {
	World    *World
	Interval time.Duration

	mu      sync.Mutex
	running bool
	paused  bool
}

// NewRunner creates a runner with the given turn interval.
func NewRunner(w *World, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{World: w, Interval: interval}
}

// Run advances turns until Stop is called. Blocks.
func (r *Runner) Run() {
	r.mu.Lock()
	r.running = true
	r.mu.Unlock()

	slog.Info("turn loop started", "interval", r.Interval)

	for {
		r.mu.Lock()
		running, paused := r.running, r.paused
		r.mu.Unlock()

		if !running {
			break
		}
		if paused {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		r.World.AdvanceTurn()

		elapsed := time.Since(start)
		if elapsed < r.Interval {
			time.Sleep(r.Interval - elapsed)
		}
	}

	slog.Info("turn loop stopped", "turn", r.World.CurrentTurn())
}

// Stop halts the loop after the current turn.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

// SetPaused pauses or resumes turn advancement.
func (r *Runner) SetPaused(paused bool) {
	r.mu.Lock()
	r.paused = paused
	r.mu.Unlock()
}

// Paused reports whether the loop is holding.
func (r *Runner) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}
