package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/vitals/internal/metrics"
)

func TestBMRWorkedExample(t *testing.T) {
	// 78.5 kg, 180 cm, 28 y, male → 785 + 1125 − 140 + 5 = 1775.
	p := metrics.Profile{WeightKg: 78.5, HeightCm: 180, AgeYears: 28, Sex: metrics.SexMale, ActivityLevel: "sedentary"}
	res := ComputeEnergy(p, 0, 0, 0, 0)
	assert.InDelta(t, 1775, res.BasalRate, 1e-9)
}

func TestBMRFemaleConstant(t *testing.T) {
	male := metrics.Profile{WeightKg: 60, HeightCm: 165, AgeYears: 30, Sex: metrics.SexMale, ActivityLevel: "sedentary"}
	female := male
	female.Sex = metrics.SexFemale

	diff := ComputeEnergy(male, 0, 0, 0, 0).BasalRate - ComputeEnergy(female, 0, 0, 0, 0).BasalRate
	assert.InDelta(t, 166, diff, 1e-9, "+5 vs −161")
}

func TestEnergyBalanceSign(t *testing.T) {
	p := metrics.Profile{WeightKg: 78.5, HeightCm: 180, AgeYears: 28, Sex: metrics.SexMale, ActivityLevel: "sedentary"}

	surplus := ComputeEnergy(p, 4000, 0, 0, 0)
	assert.Positive(t, surplus.Balance)

	deficit := ComputeEnergy(p, 1200, 300, 100, 0)
	assert.Negative(t, deficit.Balance)
}

func TestEnergyActivityMultiplier(t *testing.T) {
	p := metrics.Profile{WeightKg: 78.5, HeightCm: 180, AgeYears: 28, Sex: metrics.SexMale, ActivityLevel: "moderate"}
	res := ComputeEnergy(p, 0, 0, 0, 0)
	assert.InDelta(t, 1775*1.55, res.Expenditure, 1e-9)
}

func TestEnergyUnknownActivityFallsBackToSedentary(t *testing.T) {
	p := metrics.Profile{WeightKg: 78.5, HeightCm: 180, AgeYears: 28, Sex: metrics.SexMale, ActivityLevel: "heroic"}
	res := ComputeEnergy(p, 0, 0, 0, 0)
	assert.InDelta(t, 1775*1.2, res.Expenditure, 1e-9)
}

func TestEnergySimulatedDelta(t *testing.T) {
	p := metrics.Profile{WeightKg: 78.5, HeightCm: 180, AgeYears: 28, Sex: metrics.SexMale, ActivityLevel: "sedentary"}
	base := ComputeEnergy(p, 2000, 0, 0, 0)
	shifted := ComputeEnergy(p, 2000, 0, 0, 250)
	assert.InDelta(t, 250, shifted.Balance-base.Balance, 1e-9)
}
