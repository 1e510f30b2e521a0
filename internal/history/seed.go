package history

import (
	"log/slog"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/vitals/internal/engine"
	"github.com/talgya/vitals/internal/metrics"
)

// Seed generates days of deterministic synthetic history ending yesterday.
// Used when the persisted store is missing or empty so the correlation views
// have something to draw before real data accumulates. Smooth noise layers
// keep adjacent days plausibly correlated instead of white-noise jumpy.
func Seed(days int, seed int64, targets metrics.Targets) []metrics.DailySnapshot {
	sleepNoise := opensimplex.NewNormalized(seed)
	foodNoise := opensimplex.NewNormalized(seed + 1)
	moveNoise := opensimplex.NewNormalized(seed + 2)
	mindNoise := opensimplex.NewNormalized(seed + 3)

	out := make([]metrics.DailySnapshot, 0, days)
	start := time.Now().AddDate(0, 0, -days)

	for i := 0; i < days; i++ {
		x := float64(i) * 0.35

		sleepMin := 360 + sleepNoise.Eval2(x, 0)*180 // 6h–9h
		sleepEff := 85 + sleepNoise.Eval2(x, 7)*13
		calories := 1800 + foodNoise.Eval2(x, 0)*900
		protein := 90 + foodNoise.Eval2(x, 7)*80
		hydration := 1500 + moveNoise.Eval2(x, 3)*2000
		steps := int(4000 + moveNoise.Eval2(x, 0)*9000)
		volume := moveNoise.Eval2(x, 9) * 14000
		screen := 60 + mindNoise.Eval2(x, 0)*240
		study := mindNoise.Eval2(x, 5) * 150

		scores := metrics.ScoreSet{
			Sleep:     engine.SleepScore(engine.SleepResult{TotalSleepMin: sleepMin, TimeInBedMin: sleepMin / (sleepEff / 100), EfficiencyPct: sleepEff}),
			Nutrition: engine.NutritionScore(engine.NutritionResult{Totals: metrics.NutrientTotals{Cal: calories, P: protein, C: calories * 0.45 / 4, F: calories * 0.3 / 9}}, targets),
			Hydration: engine.HydrationScore(hydration, targets),
			Physical:  engine.PhysicalScore(steps, volume, targets),
			Mind:      engine.MindScore(engine.ComputeCognitive(study*0.6, study*0.4, screen)),
		}
		scores.Composite = engine.Composite(scores)

		out = append(out, metrics.DailySnapshot{
			Date:        start.AddDate(0, 0, i).Format("2006-01-02"),
			SleepMin:    sleepMin,
			SleepEff:    sleepEff,
			Calories:    calories,
			ProteinG:    protein,
			HydrationMl: hydration,
			Steps:       steps,
			VolumeKg:    volume,
			ScreenMin:   screen,
			StudyMin:    study,
			Composite:   scores.Composite,
		})
	}

	slog.Info("seeded synthetic history", "days", days, "seed", seed)
	return out
}
