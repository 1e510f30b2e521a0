package metrics

// Exercise is one entry in the exercise database. CalPerRep is an empirical
// per-repetition calorie constant used for the strength burn estimate.
type Exercise struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	CalPerRep float64 `json:"cal_per_rep" db:"cal_per_rep"`
	Custom    bool    `json:"custom,omitempty" db:"custom"`
}

var builtinExercises = []Exercise{
	{ID: "squat", Name: "Back squat", CalPerRep: 0.95},
	{ID: "deadlift", Name: "Deadlift", CalPerRep: 1.1},
	{ID: "bench", Name: "Bench press", CalPerRep: 0.6},
	{ID: "ohp", Name: "Overhead press", CalPerRep: 0.5},
	{ID: "row", Name: "Barbell row", CalPerRep: 0.65},
	{ID: "pullup", Name: "Pull-up", CalPerRep: 0.9},
	{ID: "dip", Name: "Dip", CalPerRep: 0.7},
	{ID: "lunge", Name: "Walking lunge", CalPerRep: 0.55},
	{ID: "curl", Name: "Biceps curl", CalPerRep: 0.3},
	{ID: "leg_press", Name: "Leg press", CalPerRep: 0.75},
}

// ExerciseDB resolves exercise ids against built-ins unioned with
// user-defined entries, same merge semantics as FoodDB.
type ExerciseDB struct {
	byID map[string]Exercise
}

// NewExerciseDB builds the merged lookup.
func NewExerciseDB(userExercises []Exercise) *ExerciseDB {
	byID := make(map[string]Exercise, len(builtinExercises)+len(userExercises))
	for _, e := range builtinExercises {
		byID[e.ID] = e
	}
	for _, e := range userExercises {
		e.Custom = true
		byID[e.ID] = e
	}
	return &ExerciseDB{byID: byID}
}

// Lookup returns the exercise for id, or ok=false when unknown. Sessions
// referencing unknown ids still count toward volume but burn zero calories.
func (db *ExerciseDB) Lookup(id string) (Exercise, bool) {
	e, ok := db.byID[id]
	return e, ok
}

// All returns every exercise in the merged database. No ordering guarantee.
func (db *ExerciseDB) All() []Exercise {
	out := make([]Exercise, 0, len(db.byID))
	for _, e := range db.byID {
		out = append(out, e)
	}
	return out
}
