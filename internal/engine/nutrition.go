// Package engine provides the analytics core: pure calculators that turn the
// day's working state into derived metrics, and the scoring engine that maps
// those onto normalized sub-scores and a weighted composite.
package engine

import "github.com/talgya/vitals/internal/metrics"

// NutritionResult is the output of the nutrient aggregator.
type NutritionResult struct {
	Totals  metrics.NutrientTotals `json:"totals"`
	JunkCal float64                `json:"junk_cal"`
}

// AggregateNutrition rebuilds the day's nutrient totals from scratch over the
// logged meal entries. Composite entries carry their own profile; simple
// entries resolve through the food database, and entries with unknown ids are
// skipped silently. Junk-slot calories are accumulated separately.
func AggregateNutrition(meals []metrics.MealEntry, foods *metrics.FoodDB) NutritionResult {
	var res NutritionResult
	for _, entry := range meals {
		profile, ok := resolveProfile(entry, foods)
		if !ok {
			continue
		}
		res.Totals.Add(profile, entry.Amount)
		if entry.Slot == metrics.SlotJunk {
			res.JunkCal += profile.Cal * entry.Amount
		}
	}
	return res
}

func resolveProfile(entry metrics.MealEntry, foods *metrics.FoodDB) (metrics.MacroProfile, bool) {
	if entry.Inline != nil {
		return *entry.Inline, true
	}
	f, ok := foods.Lookup(entry.FoodID)
	if !ok {
		return metrics.MacroProfile{}, false
	}
	return f.Profile, true
}
