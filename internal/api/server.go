// Package api serves the dashboard state over HTTP.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (single active editor).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/talgya/vitals/internal/advisor"
	"github.com/talgya/vitals/internal/engine"
	"github.com/talgya/vitals/internal/history"
	"github.com/talgya/vitals/internal/metrics"
	"github.com/talgya/vitals/internal/persistence"
)

// Server serves the tracked day and history over HTTP.
type Server struct {
	Tracker  *engine.Tracker
	Store    *history.Store
	DB       *persistence.DB
	Advisor  *advisor.Client
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	// Cached advisory report (regenerated at most once per date).
	reportMu     sync.Mutex
	cachedReport *advisor.Report
	reportDate   string
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	advisoryLimiter := NewRateLimiter(30, time.Hour)
	mealLimiter := NewRateLimiter(10, time.Hour)

	r := mux.NewRouter()
	v1 := r.PathPrefix("/api/v1").Subrouter()

	// Public read-only endpoints.
	v1.HandleFunc("/status", s.handleStatus).Methods("GET")
	v1.HandleFunc("/day", s.handleDay).Methods("GET")
	v1.HandleFunc("/snapshots", s.handleSnapshots).Methods("GET")
	v1.HandleFunc("/history/{metric}", s.handleHistory).Methods("GET")
	v1.HandleFunc("/trend/{metric}", s.handleTrend).Methods("GET")
	v1.HandleFunc("/correlation", s.handleCorrelation).Methods("GET")
	v1.HandleFunc("/foods", s.handleFoods).Methods("GET")
	v1.HandleFunc("/exercises", s.handleExercises).Methods("GET")

	// Advisor endpoints (LLM-consuming, rate limited).
	v1.HandleFunc("/advisory", RateLimitMiddleware(advisoryLimiter, s.handleAdvisory)).Methods("GET")
	v1.HandleFunc("/advisory/meal", RateLimitMiddleware(mealLimiter, s.handleAdvisoryMeal)).Methods("GET")

	// Mutations (bearer token).
	v1.HandleFunc("/log/meal", s.adminOnly(s.handleLogMeal)).Methods("POST")
	v1.HandleFunc("/log/run", s.adminOnly(s.handleLogRun)).Methods("POST")
	v1.HandleFunc("/log/strength", s.adminOnly(s.handleLogStrength)).Methods("POST")
	v1.HandleFunc("/log/sleep", s.adminOnly(s.handleLogSleep)).Methods("POST")
	v1.HandleFunc("/log/hydration", s.adminOnly(s.handleLogHydration)).Methods("POST")
	v1.HandleFunc("/log/steps", s.adminOnly(s.handleLogSteps)).Methods("POST")
	v1.HandleFunc("/log/screen", s.adminOnly(s.handleLogScreen)).Methods("POST")
	v1.HandleFunc("/log/study", s.adminOnly(s.handleLogStudy)).Methods("POST")
	v1.HandleFunc("/foods", s.adminOnly(s.handleAddFood)).Methods("POST")
	v1.HandleFunc("/exercises", s.adminOnly(s.handleAddExercise)).Methods("POST")
	v1.HandleFunc("/day/close", s.adminOnly(s.handleCloseDay)).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, c.Handler(r)); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// adminOnly wraps a handler to require bearer token auth.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "mutations disabled (no VITALS_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	day := s.Tracker.Day()
	d := s.Tracker.Derived()

	writeJSON(w, map[string]any{
		"date":      day.Date,
		"integrity": d.Scores.Composite,
		"scores":    d.Scores,
		"energy":    d.Energy,
		"history":   s.Store.Len(),
	})
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"day":     s.Tracker.Day(),
		"derived": s.Tracker.Derived(),
	})
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 30
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 365 {
			limit = n
		}
	}
	writeJSON(w, s.Store.LastN(limit))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	m, err := metrics.ParseMetric(mux.Vars(r)["metric"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	days := queryInt(r, "days", 30, 365)
	writeJSON(w, map[string]any{
		"metric": m.String(),
		"series": s.Store.Series(m, days),
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	m, err := metrics.ParseMetric(mux.Vars(r)["metric"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	window := queryInt(r, "window", 14, 90)
	writeJSON(w, map[string]any{
		"metric": m.String(),
		"window": window,
		"points": s.Store.Trend(m, window),
	})
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	x, err := metrics.ParseMetric(r.URL.Query().Get("x"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	y, err := metrics.ParseMetric(r.URL.Query().Get("y"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	days := queryInt(r, "days", 30, 365)
	writeJSON(w, s.Store.Correlate(x, y, days))
}

func (s *Server) handleFoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Tracker.FoodDB().All())
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Tracker.ExerciseDB().All())
}

func (s *Server) handleAdvisory(w http.ResponseWriter, r *http.Request) {
	s.reportMu.Lock()
	defer s.reportMu.Unlock()

	day := s.Tracker.Day()
	if s.cachedReport != nil && s.reportDate == day.Date {
		writeJSON(w, s.cachedReport)
		return
	}

	d := s.Tracker.Derived()
	report := advisor.GenerateReport(s.Advisor, advisor.ReportContext{
		Date:        day.Date,
		Scores:      d.Scores,
		Energy:      d.Energy,
		Sleep:       d.Sleep,
		Steps:       day.Steps,
		VolumeKg:    d.Physical.VolumeKg,
		HydrationMl: day.HydrationMl,
		Correlation: s.Store.Correlate(metrics.MetricSleepMin, metrics.MetricComposite, 30),
	})

	// Only healthy reports are cached; a transient advisor failure should be
	// retried on the next request, not pinned until the date rolls.
	if report.Status == advisor.StatusNominal {
		s.cachedReport = report
		s.reportDate = day.Date
	}
	writeJSON(w, report)
}

func (s *Server) handleAdvisoryMeal(w http.ResponseWriter, r *http.Request) {
	d := s.Tracker.Derived()
	writeJSON(w, advisor.SuggestMeal(s.Advisor, d.Nutrition.Totals, s.Tracker.Targets))
}

func (s *Server) handleLogMeal(w http.ResponseWriter, r *http.Request) {
	var req metrics.MealEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}
	if req.Slot == "" {
		req.Slot = metrics.SlotSnack
	}
	entry := s.Tracker.LogMeal(req)
	writeJSON(w, entry)
}

func (s *Server) handleLogRun(w http.ResponseWriter, r *http.Request) {
	var req metrics.RunEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.DurationMin <= 0 {
		http.Error(w, "duration_min must be positive", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.Tracker.LogRun(req))
}

func (s *Server) handleLogStrength(w http.ResponseWriter, r *http.Request) {
	var req metrics.StrengthEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Sets <= 0 || req.Reps <= 0 {
		http.Error(w, "sets and reps must be positive", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.Tracker.LogStrength(req))
}

func (s *Server) handleLogSleep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bed      string    `json:"bed"`  // HH:MM
		Wake     string    `json:"wake"` // HH:MM
		AwakeMin float64   `json:"awake_min"`
		NapMins  []float64 `json:"nap_mins"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	bed, err := parseClock(req.Bed)
	if err != nil {
		http.Error(w, "bed: "+err.Error(), http.StatusBadRequest)
		return
	}
	wake, err := parseClock(req.Wake)
	if err != nil {
		http.Error(w, "wake: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.Tracker.SetSleep(metrics.SleepLog{
		BedMinute:  bed,
		WakeMinute: wake,
		AwakeMin:   req.AwakeMin,
		NapMins:    req.NapMins,
	})
	writeJSON(w, s.Tracker.Derived().Sleep)
}

func (s *Server) handleLogHydration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ml float64 `json:"ml"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Ml <= 0 {
		http.Error(w, "ml must be positive", http.StatusBadRequest)
		return
	}
	s.Tracker.AddHydration(req.Ml)
	writeJSON(w, map[string]float64{"hydration_ml": s.Tracker.Day().HydrationMl})
}

func (s *Server) handleLogSteps(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Steps int `json:"steps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Steps < 0 {
		http.Error(w, "steps must be non-negative", http.StatusBadRequest)
		return
	}
	s.Tracker.SetSteps(req.Steps)
	writeJSON(w, map[string]int{"steps": req.Steps})
}

func (s *Server) handleLogScreen(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Min float64 `json:"min"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Min <= 0 {
		http.Error(w, "min must be positive", http.StatusBadRequest)
		return
	}
	s.Tracker.AddScreenTime(req.Min)
	writeJSON(w, s.Tracker.Derived().Cognitive)
}

func (s *Server) handleLogStudy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReadingMin float64 `json:"reading_min"`
		LectureMin float64 `json:"lecture_min"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.ReadingMin < 0 || req.LectureMin < 0 {
		http.Error(w, "minutes must be non-negative", http.StatusBadRequest)
		return
	}
	s.Tracker.AddStudy(req.ReadingMin, req.LectureMin)
	writeJSON(w, s.Tracker.Derived().Cognitive)
}

func (s *Server) handleAddFood(w http.ResponseWriter, r *http.Request) {
	var req metrics.Food
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "invalid food", http.StatusBadRequest)
		return
	}
	if s.DB != nil {
		if err := s.DB.SaveFood(req); err != nil {
			slog.Error("save food failed", "id", req.ID, "error", err)
			http.Error(w, "save failed", http.StatusInternalServerError)
			return
		}
		userFoods, err := s.DB.LoadFoods()
		if err == nil {
			s.Tracker.SetFoods(metrics.NewFoodDB(userFoods))
		}
	}
	writeJSON(w, req)
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var req metrics.Exercise
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "invalid exercise", http.StatusBadRequest)
		return
	}
	if s.DB != nil {
		if err := s.DB.SaveExercise(req); err != nil {
			slog.Error("save exercise failed", "id", req.ID, "error", err)
			http.Error(w, "save failed", http.StatusInternalServerError)
			return
		}
		userExercises, err := s.DB.LoadExercises()
		if err == nil {
			s.Tracker.SetExercises(metrics.NewExerciseDB(userExercises))
		}
	}
	writeJSON(w, req)
}

func (s *Server) handleCloseDay(w http.ResponseWriter, r *http.Request) {
	closed := s.Tracker.CloseDay(engine.Today())
	writeJSON(w, closed)
}

func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", v)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func queryInt(r *http.Request, key string, def, max int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > max {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
