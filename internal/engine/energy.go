package engine

import "github.com/talgya/vitals/internal/metrics"

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is also the validation source for profile updates.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// ValidActivityLevel reports whether level is a known activity multiplier key.
func ValidActivityLevel(level string) bool {
	_, ok := activityMultipliers[level]
	return ok
}

// EnergyResult is the output of the energy balance calculator.
type EnergyResult struct {
	BasalRate   float64 `json:"basal_rate"`
	Expenditure float64 `json:"expenditure"`
	Balance     float64 `json:"balance"` // positive = surplus
}

// ComputeEnergy combines the Mifflin-St Jeor basal rate with activity burn
// and intake into a caloric balance. Only male/female constants are modeled.
// Unknown activity levels fall back to sedentary.
func ComputeEnergy(p metrics.Profile, intakeCal, cardioCal, strengthCal, simulatedDelta float64) EnergyResult {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.AgeYears)
	if p.Sex == metrics.SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	mult, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		mult = activityMultipliers["sedentary"]
	}
	expenditure := bmr*mult + cardioCal + strengthCal

	return EnergyResult{
		BasalRate:   bmr,
		Expenditure: expenditure,
		Balance:     intakeCal - expenditure + simulatedDelta,
	}
}
