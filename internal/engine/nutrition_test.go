package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/vitals/internal/metrics"
)

func TestAggregateNutritionSumsScaledProfiles(t *testing.T) {
	foods := metrics.NewFoodDB(nil)

	meals := []metrics.MealEntry{
		{Slot: metrics.SlotBreakfast, FoodID: "egg", Amount: 3},
		{Slot: metrics.SlotBreakfast, FoodID: "oats", Amount: 1},
	}
	res := AggregateNutrition(meals, foods)

	assert.InDelta(t, 3*72+190, res.Totals.Cal, 1e-9)
	assert.InDelta(t, 3*6.3+6.5, res.Totals.P, 1e-9)
	assert.Zero(t, res.JunkCal)
}

func TestAggregateNutritionOrderIndependent(t *testing.T) {
	foods := metrics.NewFoodDB(nil)
	a := metrics.MealEntry{Slot: metrics.SlotLunch, FoodID: "chicken_breast", Amount: 1}
	b := metrics.MealEntry{Slot: metrics.SlotLunch, FoodID: "white_rice", Amount: 2}

	ab := AggregateNutrition([]metrics.MealEntry{a, b}, foods)
	ba := AggregateNutrition([]metrics.MealEntry{b, a}, foods)
	assert.Equal(t, ab, ba)
}

func TestAggregateNutritionSkipsUnknownIDs(t *testing.T) {
	foods := metrics.NewFoodDB(nil)
	meals := []metrics.MealEntry{
		{Slot: metrics.SlotDinner, FoodID: "no_such_food", Amount: 2},
		{Slot: metrics.SlotDinner, FoodID: "banana", Amount: 1},
	}
	res := AggregateNutrition(meals, foods)
	assert.InDelta(t, 105, res.Totals.Cal, 1e-9, "unknown id contributes nothing")
}

func TestAggregateNutritionInlineComposite(t *testing.T) {
	foods := metrics.NewFoodDB(nil)
	meals := []metrics.MealEntry{
		{Slot: metrics.SlotSnack, Inline: &metrics.MacroProfile{Cal: 300, P: 20, C: 30, F: 8}, Amount: 0.5},
	}
	res := AggregateNutrition(meals, foods)
	assert.InDelta(t, 150, res.Totals.Cal, 1e-9)
	assert.InDelta(t, 10, res.Totals.P, 1e-9)
}

func TestAggregateNutritionJunkSlot(t *testing.T) {
	foods := metrics.NewFoodDB(nil)
	meals := []metrics.MealEntry{
		{Slot: metrics.SlotJunk, FoodID: "pizza_slice", Amount: 2},
		{Slot: metrics.SlotDinner, FoodID: "salmon", Amount: 1},
	}
	res := AggregateNutrition(meals, foods)
	assert.InDelta(t, 570, res.JunkCal, 1e-9, "only junk-slot calories feed the penalty scalar")
	assert.InDelta(t, 570+312, res.Totals.Cal, 1e-9, "junk still counts toward totals")
}

func TestFoodDBUserMerge(t *testing.T) {
	foods := metrics.NewFoodDB([]metrics.Food{
		{ID: "my_shake", Name: "Homemade shake", Profile: metrics.MacroProfile{Cal: 400, P: 35, C: 40, F: 10}},
	})
	f, ok := foods.Lookup("my_shake")
	assert.True(t, ok)
	assert.True(t, f.Custom)

	res := AggregateNutrition([]metrics.MealEntry{{Slot: metrics.SlotSnack, FoodID: "my_shake", Amount: 1}}, foods)
	assert.InDelta(t, 400, res.Totals.Cal, 1e-9)
}
