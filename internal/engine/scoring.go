package engine

import (
	"math"

	"github.com/talgya/vitals/internal/metrics"
)

// Scoring curve parameters. The sleep curve is a Gaussian centered on the
// 8-hour target; the junk penalty caps at 30 points; overhydration decays at
// 20 points per full target above the goal.
const (
	SleepTargetHours = 8.0
	SleepSigmaHours  = 1.5
	JunkPenaltyCap   = 30.0
	OverhydrateDecay = 20.0
	MindBaseline     = 70.0
	StudyBonusCap    = 20.0
	StudyBonusDiv    = 6.0
)

// Composite weights. A fixed convex combination: the weights sum to 1.
const (
	WeightSleep     = 0.30
	WeightNutrition = 0.20
	WeightHydration = 0.10
	WeightPhysical  = 0.25
	WeightMind      = 0.15
)

func clampScore(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// SleepScore maps sleep duration onto a Gaussian curve peaking at the target.
// 8 hours scores 100; the spread is fixed at 1.5 hours.
func SleepScore(sleep SleepResult) float64 {
	hours := sleep.TotalSleepMin / 60
	z := (hours - SleepTargetHours) / SleepSigmaHours
	return clampScore(100 * math.Exp(-0.5*z*z))
}

// NutritionScore measures linear adherence to the macro targets minus a
// junk-calorie penalty. Adherence is the summed absolute macro deltas
// relative to the summed targets; the junk penalty caps at 30 points.
func NutritionScore(nut NutritionResult, targets metrics.Targets) float64 {
	totalTargets := targets.ProteinG + targets.CarbsG + targets.FatG
	if totalTargets <= 0 {
		return 0
	}
	miss := math.Abs(nut.Totals.P-targets.ProteinG) +
		math.Abs(nut.Totals.C-targets.CarbsG) +
		math.Abs(nut.Totals.F-targets.FatG)
	adherence := 100 - miss/totalTargets*100

	junkPenalty := math.Min(JunkPenaltyCap, nut.JunkCal/1000*JunkPenaltyCap)
	return clampScore(adherence - junkPenalty)
}

// HydrationScore ramps linearly to 100 at the target; above the target a
// decay penalty models overhydration risk, never dropping below 0.
func HydrationScore(intakeMl float64, targets metrics.Targets) float64 {
	if targets.HydrationMl <= 0 {
		return 0
	}
	ratio := intakeMl / targets.HydrationMl
	if ratio <= 1 {
		return clampScore(ratio * 100)
	}
	return clampScore(100 - (ratio-1)*OverhydrateDecay)
}

// PhysicalScore blends a steps-ratio term and a volume-ratio term 50/50,
// each capped at 100 before blending.
func PhysicalScore(steps int, volumeKg float64, targets metrics.Targets) float64 {
	stepTerm := 0.0
	if targets.Steps > 0 {
		stepTerm = math.Min(100, float64(steps)/float64(targets.Steps)*100)
	}
	volTerm := 0.0
	if targets.VolumeKg > 0 {
		volTerm = math.Min(100, volumeKg/targets.VolumeKg*100)
	}
	return clampScore(0.5*stepTerm + 0.5*volTerm)
}

// MindScore starts from a neutral 70 baseline, adds a capped study bonus,
// and subtracts the screen fatigue index.
func MindScore(cog CognitiveResult) float64 {
	bonus := math.Min(StudyBonusCap, cog.StudyScore/StudyBonusDiv)
	return clampScore(MindBaseline + bonus - cog.ScreenFatigue)
}

// Composite combines the five sub-scores with the fixed weights. Sub-scores
// are clamped before combination so a pathological input can never push an
// illegal value into the weighted sum.
func Composite(s metrics.ScoreSet) float64 {
	return clampScore(
		WeightSleep*clampScore(s.Sleep) +
			WeightNutrition*clampScore(s.Nutrition) +
			WeightHydration*clampScore(s.Hydration) +
			WeightPhysical*clampScore(s.Physical) +
			WeightMind*clampScore(s.Mind))
}
