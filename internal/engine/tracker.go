package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/vitals/internal/metrics"
)

// Derived is the full set of values computed from one DayLog. It is rebuilt
// from scratch on every recompute; nothing in it is mutated incrementally.
type Derived struct {
	Nutrition NutritionResult  `json:"nutrition"`
	Physical  PhysicalResult   `json:"physical"`
	Sleep     SleepResult      `json:"sleep"`
	Cognitive CognitiveResult  `json:"cognitive"`
	Energy    EnergyResult     `json:"energy"`
	Scores    metrics.ScoreSet `json:"scores"`
}

// Recompute runs every calculator over the given working state and scores the
// results. Pure function of its inputs: same state, same output.
func Recompute(day metrics.DayLog, profile metrics.Profile, targets metrics.Targets,
	foods *metrics.FoodDB, exercises *metrics.ExerciseDB) Derived {

	var d Derived
	d.Nutrition = AggregateNutrition(day.Meals, foods)
	d.Physical = ComputePhysical(day.Steps, day.Runs, day.Strength, profile.WeightKg, exercises)
	d.Sleep = ComputeSleep(day.Sleep)
	d.Cognitive = ComputeCognitive(day.ReadingMin, day.LectureMin, day.ScreenMin)
	d.Energy = ComputeEnergy(profile, d.Nutrition.Totals.Cal, d.Physical.CardioCal(), d.Physical.StrengthCal, 0)

	d.Scores = metrics.ScoreSet{
		Sleep:     SleepScore(d.Sleep),
		Nutrition: NutritionScore(d.Nutrition, targets),
		Hydration: HydrationScore(day.HydrationMl, targets),
		Physical:  PhysicalScore(day.Steps, d.Physical.VolumeKg, targets),
		Mind:      MindScore(d.Cognitive),
	}
	d.Scores.Composite = Composite(d.Scores)
	return d
}

// Snapshot flattens a day's derived values into the persisted record shape.
func Snapshot(day metrics.DayLog, d Derived) metrics.DailySnapshot {
	return metrics.DailySnapshot{
		Date:        day.Date,
		SleepMin:    d.Sleep.TotalSleepMin,
		SleepEff:    d.Sleep.EfficiencyPct,
		Calories:    d.Nutrition.Totals.Cal,
		ProteinG:    d.Nutrition.Totals.P,
		HydrationMl: day.HydrationMl,
		Steps:       day.Steps,
		VolumeKg:    d.Physical.VolumeKg,
		ScreenMin:   day.ScreenMin,
		StudyMin:    day.ReadingMin + day.LectureMin,
		Composite:   d.Scores.Composite,
	}
}

// Tracker owns the single mutable working day. Every mutation recomputes all
// derived values and hands the date's snapshot to the OnSnapshot hook
// (persistence lives behind that hook, not here).
type Tracker struct {
	mu      sync.Mutex
	day     metrics.DayLog
	derived Derived

	Profile   metrics.Profile
	Targets   metrics.Targets
	Foods     *metrics.FoodDB
	Exercises *metrics.ExerciseDB

	// OnSnapshot is called after every recompute with the fresh snapshot.
	// Last write wins when the same date is recomputed repeatedly.
	OnSnapshot func(metrics.DailySnapshot, metrics.DayLog)
}

// NewTracker creates a tracker for the given date with empty working state.
func NewTracker(date string, profile metrics.Profile, targets metrics.Targets,
	foods *metrics.FoodDB, exercises *metrics.ExerciseDB) *Tracker {

	t := &Tracker{
		Profile:   profile,
		Targets:   targets,
		Foods:     foods,
		Exercises: exercises,
	}
	t.day = metrics.DayLog{Date: date}
	t.derived = Recompute(t.day, profile, targets, foods, exercises)
	return t
}

// Restore replaces the working state wholesale, e.g. after loading a saved
// in-progress day at startup.
func (t *Tracker) Restore(day metrics.DayLog) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.day = day
	t.recompute()
}

// Day returns a copy of the current working state.
func (t *Tracker) Day() metrics.DayLog {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.day
}

// Derived returns the most recent recomputation result.
func (t *Tracker) Derived() Derived {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.derived
}

// recompute must be called with the lock held.
func (t *Tracker) recompute() {
	t.derived = Recompute(t.day, t.Profile, t.Targets, t.Foods, t.Exercises)
	if t.OnSnapshot != nil {
		t.OnSnapshot(Snapshot(t.day, t.derived), t.day)
	}
}

// LogMeal appends a meal entry and recomputes. An entry id is assigned when
// the caller left it empty.
func (t *Tracker) LogMeal(entry metrics.MealEntry) metrics.MealEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	t.day.Meals = append(t.day.Meals, entry)
	t.recompute()
	return entry
}

// LogRun appends a cardio session and recomputes.
func (t *Tracker) LogRun(entry metrics.RunEntry) metrics.RunEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	t.day.Runs = append(t.day.Runs, entry)
	t.recompute()
	return entry
}

// LogStrength appends a strength session and recomputes.
func (t *Tracker) LogStrength(entry metrics.StrengthEntry) metrics.StrengthEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	t.day.Strength = append(t.day.Strength, entry)
	t.recompute()
	return entry
}

// SetSleep replaces the night's sleep log and recomputes.
func (t *Tracker) SetSleep(log metrics.SleepLog) {
	t.mu.Lock()
	defer t.mu.Unlock()
	log.Logged = true
	t.day.Sleep = log
	t.recompute()
}

// AddHydration adds intake in milliliters and recomputes.
func (t *Tracker) AddHydration(ml float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.day.HydrationMl += ml
	t.recompute()
}

// SetSteps replaces the day's step count and recomputes.
func (t *Tracker) SetSteps(steps int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.day.Steps = steps
	t.recompute()
}

// AddScreenTime adds screen minutes and recomputes.
func (t *Tracker) AddScreenTime(min float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.day.ScreenMin += min
	t.recompute()
}

// AddStudy adds reading and lecture minutes and recomputes.
func (t *Tracker) AddStudy(readingMin, lectureMin float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.day.ReadingMin += readingMin
	t.day.LectureMin += lectureMin
	t.recompute()
}

// SetFoods swaps in a rebuilt food database and recomputes, so meals logged
// against updated entries resolve immediately.
func (t *Tracker) SetFoods(foods *metrics.FoodDB) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Foods = foods
	t.recompute()
}

// SetExercises swaps in a rebuilt exercise database and recomputes.
func (t *Tracker) SetExercises(exercises *metrics.ExerciseDB) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Exercises = exercises
	t.recompute()
}

// FoodDB returns the current food database.
func (t *Tracker) FoodDB() *metrics.FoodDB {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Foods
}

// ExerciseDB returns the current exercise database.
func (t *Tracker) ExerciseDB() *metrics.ExerciseDB {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Exercises
}

// CloseDay finalizes the current date and starts a fresh working day for
// newDate. The closed day's snapshot was already written by the last
// recompute; closing just rolls the working state forward.
func (t *Tracker) CloseDay(newDate string) metrics.DailySnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	closed := Snapshot(t.day, t.derived)
	slog.Info("day closed", "date", t.day.Date, "composite", closed.Composite)
	t.day = metrics.DayLog{Date: newDate}
	t.recompute()
	return closed
}

// Today returns the current calendar date in the layout snapshots are keyed by.
func Today() string {
	return time.Now().Format("2006-01-02")
}
