// Command overseer runs the autonomous diplomatic watchdog for Statecraft.
// It observes world state, diagnoses diplomatic health with a deterministic
// rule table, and acts via the admin intervention API.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/talgya/statecraft/internal/overseer"
)

func main() {
	godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment.
	apiURL := envOrDefault("STATECRAFT_API_URL", "http://localhost:8080")
	token := os.Getenv("STATECRAFT_ADMIN_TOKEN")
	memPath := envOrDefault("OVERSEER_DB", "data/overseer.db")
	intervalMin := envIntOrDefault("OVERSEER_INTERVAL", 15)

	if token == "" {
		slog.Error("STATECRAFT_ADMIN_TOKEN is required")
		os.Exit(1)
	}

	interval := time.Duration(intervalMin) * time.Minute

	slog.Info("Statecraft Overseer starting",
		"api_url", apiURL,
		"interval", interval,
		"memory", memPath,
	)

	os.MkdirAll("data", 0755)
	mem, err := overseer.OpenMemory(memPath)
	if err != nil {
		slog.Error("failed to open overseer memory", "error", err)
		os.Exit(1)
	}
	defer mem.Close()

	observer := overseer.NewObserver(apiURL)
	actor := overseer.NewActor(apiURL, token)

	// Wait for the statecraft API to be ready before the first cycle.
	// systemd After= only ensures process start, not HTTP readiness.
	slog.Info("waiting for statecraft API...")
	waitForAPI(apiURL)

	// Run first cycle immediately.
	runCycle(observer, actor, mem)

	// Timer loop.
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			runCycle(observer, actor, mem)
		case sig := <-sigCh:
			slog.Info("received signal, shutting down", "signal", sig)
			fmt.Println("Overseer stopped.")
			return
		}
	}
}

// runCycle executes one observe → triage → decide → act cycle.
func runCycle(observer *overseer.Observer, actor *overseer.Actor, mem *overseer.Memory) {
	slog.Info("overseer cycle starting")

	// Observe.
	pulse, err := observer.Observe()
	if err != nil {
		slog.Error("observation failed", "error", err)
		return
	}

	// Triage.
	health := overseer.Triage(pulse)
	slog.Info("triage complete",
		"turn", health.Turn,
		"crisis", health.CrisisLevel,
		"war_risk", fmt.Sprintf("%.1f", health.WarRisk),
		"avg_relationship", fmt.Sprintf("%.1f", health.AvgRelationship),
		"open_sessions", health.OpenSessions,
		"isolated", len(health.Isolated),
	)

	if pulse.Status.Paused {
		slog.Info("overseer cycle complete — world is paused")
		return
	}

	// Decide.
	history, err := mem.Recent(20)
	if err != nil {
		slog.Error("memory read failed", "error", err)
		history = nil
	}
	directive := overseer.Decide(health, history)
	slog.Info("decision made",
		"action", directive.Action,
		"reason", directive.Reason,
	)

	record := overseer.CycleRecord{
		Turn:            health.Turn,
		Crisis:          health.CrisisLevel,
		WarRisk:         health.WarRisk,
		AvgRelationship: health.AvgRelationship,
		OpenSessions:    health.OpenSessions,
		Action:          directive.Action,
		PairA:           directive.A,
		PairB:           directive.B,
		Details:         directive.Reason,
	}

	// Act.
	if directive.Action != "none" {
		result, err := actor.Act(directive)
		if err != nil {
			slog.Error("directive failed", "error", err)
			record.Details = fmt.Sprintf("%s (failed: %v)", directive.Reason, err)
		} else {
			slog.Info("directive executed",
				"action", directive.Action,
				"pair", directive.A+"/"+directive.B,
				"success", result.Success,
				"details", result.Details,
			)
			record.Details = result.Details
		}
	}

	if err := mem.Record(record); err != nil {
		slog.Error("memory write failed", "error", err)
	}
	slog.Info("overseer cycle complete", "action", directive.Action)
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

// waitForAPI polls the statecraft status endpoint with exponential backoff
// until it responds. Exits after 5 minutes if the API never becomes ready.
func waitForAPI(apiURL string) {
	backoff := 2 * time.Second
	maxBackoff := 30 * time.Second
	deadline := time.Now().Add(5 * time.Minute)

	for {
		resp, err := http.Get(apiURL + "/api/v1/status")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == 200 {
				slog.Info("statecraft API is ready")
				return
			}
		}
		if time.Now().After(deadline) {
			slog.Error("statecraft API did not become ready within 5 minutes")
			os.Exit(1)
		}
		slog.Info("statecraft not ready, retrying...", "backoff", backoff)
		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
