// Package metrics provides the health data model: the mutable working day,
// logged entries, user profile and targets, and the derived snapshot types.
package metrics

import "fmt"

// MealSlot labels where in the day a meal entry was logged.
// The junk slot is tracked separately so its calories can feed the
// junk-penalty term of the nutrition score.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
	SlotJunk      MealSlot = "junk"
)

// Sex is used only for the Mifflin-St Jeor basal rate constant.
type Sex uint8

const (
	SexMale   Sex = 0
	SexFemale Sex = 1
)

// Profile holds the user's static body parameters and activity level.
type Profile struct {
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	AgeYears      int     `json:"age_years"`
	Sex           Sex     `json:"sex"`
	ActivityLevel string  `json:"activity_level"` // sedentary, light, moderate, active, very_active
}

// Targets holds the configured daily goals that scoring measures against.
type Targets struct {
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	HydrationMl float64 `json:"hydration_ml"`
	Steps       int     `json:"steps"`
	VolumeKg    float64 `json:"volume_kg"`
	SleepMin    float64 `json:"sleep_min"`
}

// DefaultTargets are used until the user configures their own.
func DefaultTargets() Targets {
	return Targets{
		ProteinG:    150,
		CarbsG:      250,
		FatG:        70,
		HydrationMl: 3000,
		Steps:       10000,
		VolumeKg:    10000,
		SleepMin:    480,
	}
}

// MacroProfile is the per-unit nutritional contribution of one food.
type MacroProfile struct {
	Cal float64 `json:"cal"`
	P   float64 `json:"p"`
	C   float64 `json:"c"`
	F   float64 `json:"f"`
}

// MealEntry is one logged food item. Simple entries reference the food
// database by FoodID; composite entries carry their own Inline profile and
// leave FoodID empty.
type MealEntry struct {
	ID     string        `json:"id"`
	Slot   MealSlot      `json:"slot"`
	FoodID string        `json:"food_id,omitempty"`
	Inline *MacroProfile `json:"inline,omitempty"`
	Amount float64       `json:"amount"` // Quantity multiplier applied to the per-unit profile
}

// RunEntry is one logged cardio session.
type RunEntry struct {
	ID          string  `json:"id"`
	DurationMin float64 `json:"duration_min"`
}

// StrengthEntry is one logged strength session.
type StrengthEntry struct {
	ID         string  `json:"id"`
	ExerciseID string  `json:"exercise_id"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	LoadKg     float64 `json:"load_kg"`
}

// Volume returns the standard workload metric sets × reps × load.
func (e StrengthEntry) Volume() float64 {
	return float64(e.Sets) * float64(e.Reps) * e.LoadKg
}

// SleepLog holds the night's bed/wake times as minutes after midnight,
// time spent awake during the night, and any naps.
type SleepLog struct {
	BedMinute  int       `json:"bed_minute"`  // 0–1439, minute of day
	WakeMinute int       `json:"wake_minute"` // 0–1439, minute of day
	AwakeMin   float64   `json:"awake_min"`
	NapMins    []float64 `json:"nap_mins,omitempty"`
	Logged     bool      `json:"logged"`
}

// DayLog is the complete mutable working state for one calendar day.
// It is owned by a single Tracker; every mutation triggers a full pure
// recomputation of all derived values.
type DayLog struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	Meals       []MealEntry     `json:"meals,omitempty"`
	Runs        []RunEntry      `json:"runs,omitempty"`
	Strength    []StrengthEntry `json:"strength,omitempty"`
	Sleep       SleepLog        `json:"sleep"`
	Steps       int             `json:"steps"`
	HydrationMl float64         `json:"hydration_ml"`
	ScreenMin   float64         `json:"screen_min"`
	ReadingMin  float64         `json:"reading_min"`
	LectureMin  float64         `json:"lecture_min"`
}

// NutrientTotals is the day's accumulated macro intake. Rebuilt from the
// meal entries on every recompute, never mutated incrementally.
type NutrientTotals struct {
	Cal float64 `json:"cal"`
	P   float64 `json:"p"`
	C   float64 `json:"c"`
	F   float64 `json:"f"`
}

// Add accumulates a profile scaled by amount.
func (t *NutrientTotals) Add(p MacroProfile, amount float64) {
	t.Cal += p.Cal * amount
	t.P += p.P * amount
	t.C += p.C * amount
	t.F += p.F * amount
}

// ScoreSet holds the five normalized sub-scores and their composite.
// All values are clamped to [0,100].
type ScoreSet struct {
	Sleep     float64 `json:"sleep"`
	Nutrition float64 `json:"nutrition"`
	Hydration float64 `json:"hydration"`
	Physical  float64 `json:"physical"`
	Mind      float64 `json:"mind"`
	Composite float64 `json:"composite"`
}

// DailySnapshot is one day's derived metrics, persisted for historical
// analysis. Immutable once the day closes; while the day is in progress the
// date's row is rewritten on every recompute (last write wins).
type DailySnapshot struct {
	Date          string  `json:"date" db:"date"`
	SleepMin      float64 `json:"sleep_min" db:"sleep_min"`
	SleepEff      float64 `json:"sleep_eff" db:"sleep_eff"`
	Calories      float64 `json:"calories" db:"calories"`
	ProteinG      float64 `json:"protein_g" db:"protein_g"`
	HydrationMl   float64 `json:"hydration_ml" db:"hydration_ml"`
	Steps         int     `json:"steps" db:"steps"`
	VolumeKg      float64 `json:"volume_kg" db:"volume_kg"`
	ScreenMin     float64 `json:"screen_min" db:"screen_min"`
	StudyMin      float64 `json:"study_min" db:"study_min"`
	Composite     float64 `json:"composite" db:"composite"`
}

// Metric is an enumerated key for addressing one numeric column of a
// DailySnapshot. Using a fixed enum instead of raw strings keeps series
// extraction compile-time safe.
type Metric uint8

const (
	MetricSleepMin Metric = iota
	MetricSleepEff
	MetricCalories
	MetricProtein
	MetricHydration
	MetricSteps
	MetricVolume
	MetricScreen
	MetricStudy
	MetricComposite
)

var metricNames = map[Metric]string{
	MetricSleepMin:  "sleep_min",
	MetricSleepEff:  "sleep_eff",
	MetricCalories:  "calories",
	MetricProtein:   "protein_g",
	MetricHydration: "hydration_ml",
	MetricSteps:     "steps",
	MetricVolume:    "volume_kg",
	MetricScreen:    "screen_min",
	MetricStudy:     "study_min",
	MetricComposite: "composite",
}

// String returns the stable wire name of the metric.
func (m Metric) String() string {
	if n, ok := metricNames[m]; ok {
		return n
	}
	return fmt.Sprintf("metric#%d", m)
}

// ParseMetric maps a wire name back to its Metric. Used at the API boundary.
func ParseMetric(name string) (Metric, error) {
	for m, n := range metricNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", name)
}

// Value extracts the metric's numeric value from a snapshot.
func (s DailySnapshot) Value(m Metric) float64 {
	switch m {
	case MetricSleepMin:
		return s.SleepMin
	case MetricSleepEff:
		return s.SleepEff
	case MetricCalories:
		return s.Calories
	case MetricProtein:
		return s.ProteinG
	case MetricHydration:
		return s.HydrationMl
	case MetricSteps:
		return float64(s.Steps)
	case MetricVolume:
		return s.VolumeKg
	case MetricScreen:
		return s.ScreenMin
	case MetricStudy:
		return s.StudyMin
	case MetricComposite:
		return s.Composite
	}
	return 0
}
