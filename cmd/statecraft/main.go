// Command statecraft runs the autonomous diplomatic negotiation engine.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/talgya/statecraft/internal/api"
	"github.com/talgya/statecraft/internal/communique"
	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/entropy"
	"github.com/talgya/statecraft/internal/llm"
	"github.com/talgya/statecraft/internal/persistence"
	"github.com/talgya/statecraft/internal/scenario"
)

func main() {
	godotenv.Load()

	scenarioPath := flag.String("scenario", os.Getenv("STATECRAFT_SCENARIO"), "scenario YAML file (empty = generated default)")
	dbPath := flag.String("db", envOrDefault("STATECRAFT_DB", "data/statecraft.db"), "sqlite database path")
	port := flag.Int("port", envIntOrDefault("STATECRAFT_PORT", 8080), "HTTP API port")
	turnSec := flag.Int("turn", envIntOrDefault("STATECRAFT_TURN_SECONDS", 30), "seconds per turn")
	saveMin := flag.Int("save", envIntOrDefault("STATECRAFT_SAVE_MINUTES", 5), "minutes between autosaves")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	slog.Info("STATECRAFT — Autonomous Diplomatic Negotiation Engine")

	// ── Scenario ──────────────────────────────────────────────────────
	sc, err := scenario.LoadOrDefault(*scenarioPath)
	if err != nil {
		slog.Error("failed to load scenario", "error", err)
		os.Exit(1)
	}
	slog.Info("scenario loaded", "name", sc.Name, "seed", sc.Seed)

	// ── World ─────────────────────────────────────────────────────────
	world, err := engine.NewWorld(sc)
	if err != nil {
		slog.Error("failed to materialize world", "error", err)
		os.Exit(1)
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	// The map is regenerated deterministically from the scenario seed;
	// a saved snapshot overlays the dynamic state on top of it.
	startTurn := uint64(0)
	if db.HasWorldState() {
		slog.Info("found saved world state, loading...")
		snap, err := db.LoadWorldState()
		if err != nil {
			slog.Error("failed to load world state", "error", err)
			os.Exit(1)
		}
		world.Restore(snap)
		startTurn = snap.Turn
		slog.Info("world state restored",
			"turn", snap.Turn,
			"nations", len(snap.Nations),
			"open_sessions", len(snap.Open),
		)
	} else {
		slog.Info("no saved state found, starting fresh")
		if err := db.SaveWorldState(world.Capture()); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	// ── LLM Client ────────────────────────────────────────────────────
	llmClient := llm.NewClient(os.Getenv("STATECRAFT_LLM_URL"), os.Getenv("STATECRAFT_LLM_MODEL"))
	if llmClient.Enabled() {
		slog.Info("LLM client enabled (Ollama)")
	} else {
		slog.Warn("STATECRAFT_LLM_URL not set — chronicle will use the template fallback")
	}

	// ── Communiqué entropy ────────────────────────────────────────────
	var feed entropy.Feed
	if rc := entropy.NewClient(os.Getenv("STATECRAFT_RANDOM_ORG_KEY")); rc != nil {
		slog.Info("communiqué entropy from random.org")
		feed = rc
	} else {
		feed = entropy.NewSource(sc.Seed)
	}
	renderer := communique.NewRenderer(feed)

	// ── Turn loop + HTTP API ──────────────────────────────────────────
	runner := engine.NewRunner(world, time.Duration(*turnSec)*time.Second)

	adminToken := os.Getenv("STATECRAFT_ADMIN_TOKEN")
	if adminToken == "" {
		slog.Warn("STATECRAFT_ADMIN_TOKEN not set — admin POST endpoints will be disabled")
	}

	apiServer := &api.Server{
		World:      world,
		Runner:     runner,
		LLM:        llmClient,
		Renderer:   renderer,
		Port:       *port,
		AdminToken: adminToken,
	}
	apiServer.Start()

	// ── Autosave ──────────────────────────────────────────────────────
	saveDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Duration(*saveMin) * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := db.SaveWorldState(world.Capture()); err != nil {
					slog.Error("autosave failed", "error", err)
				}
			case <-saveDone:
				return
			}
		}
	}()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		runner.Stop()
	}()

	stats := world.StatsSnapshot()
	fmt.Printf("\n%s: %d powers at the table, %d pacts in force.\n",
		sc.Name, stats.ActiveNations, stats.Alliances+stats.Treaties)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", *port)
	if startTurn > 0 {
		fmt.Printf("Resuming from turn %d\n", startTurn)
	}
	fmt.Println("Starting negotiations... (Ctrl+C to stop)")

	runner.Run()

	// Final save on shutdown.
	close(saveDone)
	slog.Info("final save...")
	if err := db.SaveWorldState(world.Capture()); err != nil {
		slog.Error("final save failed", "error", err)
	}

	fmt.Println("Engine stopped. World state saved.")
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
