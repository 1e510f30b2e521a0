package engine

import "github.com/talgya/vitals/internal/metrics"

// Empirical burn constants. Neither is physiologically exact; both match the
// reference dashboard's behavior.
const (
	KcalPerStep = 0.045 // flat per-step cost
	RunningMETs = 10.0  // moderate running
)

// PhysicalResult is the output of the physical load calculator.
type PhysicalResult struct {
	StepCal     float64 `json:"step_cal"`
	RunCal      float64 `json:"run_cal"`
	StrengthCal float64 `json:"strength_cal"`
	VolumeKg    float64 `json:"volume_kg"`
}

// CardioCal returns total cardio burn (steps plus runs).
func (r PhysicalResult) CardioCal() float64 {
	return r.StepCal + r.RunCal
}

// ComputePhysical converts steps, runs, and strength sessions into estimated
// calorie burn and training volume. Run burn uses METs × bodyweight ×
// duration in hours. Sessions referencing unknown exercise ids contribute
// zero calories but still count toward volume.
func ComputePhysical(steps int, runs []metrics.RunEntry, strength []metrics.StrengthEntry,
	bodyWeightKg float64, exercises *metrics.ExerciseDB) PhysicalResult {

	var res PhysicalResult
	res.StepCal = float64(steps) * KcalPerStep

	for _, run := range runs {
		res.RunCal += RunningMETs * bodyWeightKg * (run.DurationMin / 60)
	}

	for _, sess := range strength {
		res.VolumeKg += sess.Volume()
		if ex, ok := exercises.Lookup(sess.ExerciseID); ok {
			res.StrengthCal += float64(sess.Sets) * float64(sess.Reps) * ex.CalPerRep
		}
	}
	return res
}
