// Command vitalsd runs the personal health analytics daemon.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/talgya/vitals/internal/advisor"
	"github.com/talgya/vitals/internal/api"
	"github.com/talgya/vitals/internal/engine"
	"github.com/talgya/vitals/internal/history"
	"github.com/talgya/vitals/internal/metrics"
	"github.com/talgya/vitals/internal/persistence"
)

const seedDays = 30

func main() {
	godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	dbPath := envStr("VITALS_DB_PATH", "data/vitals.db")
	apiPort := envInt("VITALS_PORT", 8080)
	adminKey := os.Getenv("VITALS_ADMIN_KEY")
	apiKey := os.Getenv("ANTHROPIC_API_KEY")

	profile := metrics.Profile{
		WeightKg:      envFloat("VITALS_WEIGHT_KG", 78.5),
		HeightCm:      envFloat("VITALS_HEIGHT_CM", 180),
		AgeYears:      envInt("VITALS_AGE", 28),
		Sex:           metrics.SexMale,
		ActivityLevel: envStr("VITALS_ACTIVITY", "sedentary"),
	}
	if os.Getenv("VITALS_SEX") == "female" {
		profile.Sex = metrics.SexFemale
	}
	if !engine.ValidActivityLevel(profile.ActivityLevel) {
		slog.Warn("unknown activity level, using sedentary", "level", profile.ActivityLevel)
		profile.ActivityLevel = "sedentary"
	}
	targets := metrics.DefaultTargets()

	// ── Database ──────────────────────────────────────────────────────
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── History (seed when empty) ─────────────────────────────────────
	store := history.NewStore()
	snaps, err := db.LoadSnapshots()
	if err != nil {
		slog.Warn("snapshot load failed, treating store as empty", "error", err)
		snaps = nil
	}
	if len(snaps) == 0 {
		snaps = history.Seed(seedDays, 42, targets)
		if err := db.SaveSnapshots(snaps); err != nil {
			slog.Warn("failed to persist seeded history", "error", err)
		}
	}
	for _, snap := range snaps {
		store.Put(snap)
	}
	slog.Info("history loaded", "days", store.Len())

	// ── Food / exercise databases ─────────────────────────────────────
	userFoods, err := db.LoadFoods()
	if err != nil {
		slog.Warn("user foods load failed", "error", err)
	}
	userExercises, err := db.LoadExercises()
	if err != nil {
		slog.Warn("user exercises load failed", "error", err)
	}
	foods := metrics.NewFoodDB(userFoods)
	exercises := metrics.NewExerciseDB(userExercises)

	// ── Tracker ───────────────────────────────────────────────────────
	tracker := engine.NewTracker(engine.Today(), profile, targets, foods, exercises)
	tracker.OnSnapshot = func(snap metrics.DailySnapshot, day metrics.DayLog) {
		store.Put(snap)
		if err := db.SaveSnapshot(snap); err != nil {
			slog.Error("snapshot save failed", "date", snap.Date, "error", err)
		}
		if err := db.SaveDayLog(day); err != nil {
			slog.Error("day log save failed", "error", err)
		}
	}
	if day, ok := db.LoadDayLog(); ok && day.Date == engine.Today() {
		tracker.Restore(day)
		slog.Info("working day restored", "date", day.Date)
	}

	// ── Advisor ───────────────────────────────────────────────────────
	llm := advisor.NewClient(apiKey)
	if llm.Enabled() {
		slog.Info("advisor enabled")
	} else {
		slog.Info("advisor disabled (no ANTHROPIC_API_KEY), using placeholders")
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	server := &api.Server{
		Tracker:  tracker,
		Store:    store,
		DB:       db,
		Advisor:  llm,
		Port:     apiPort,
		AdminKey: adminKey,
	}
	server.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	slog.Info("shutting down, saving working day")
	if err := db.SaveDayLog(tracker.Day()); err != nil {
		slog.Error("final day log save failed", "error", err)
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
