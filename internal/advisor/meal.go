package advisor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/talgya/vitals/internal/metrics"
)

// MealSuggestion is the structured meal-advice payload.
type MealSuggestion struct {
	Status      string   `json:"status"`
	MealName    string   `json:"meal_name"`
	Ingredients []string `json:"ingredients"`
	Rationale   string   `json:"rationale"`
	Warnings    []string `json:"warnings,omitempty"`
}

// SuggestMeal asks for one meal that closes the day's remaining macro gap.
// Degrades to a deterministic placeholder when the client is disabled or the
// call fails.
func SuggestMeal(client *Client, totals metrics.NutrientTotals, targets metrics.Targets) *MealSuggestion {
	gapP := targets.ProteinG - totals.P
	gapC := targets.CarbsG - totals.C
	gapF := targets.FatG - totals.F

	if !client.Enabled() {
		return fallbackMeal(gapP, StatusSimulation, "advisor offline")
	}

	system := `You are a meal planner for a health dashboard. Given remaining macro targets for today, respond ONLY with a single JSON object: {"meal_name", "ingredients": [strings], "rationale"}. One realistic meal, no supplements.`

	prompt := fmt.Sprintf(
		"Remaining today: protein %.0fg, carbs %.0fg, fat %.0fg. Suggest one meal.",
		gapP, gapC, gapF)

	raw, err := client.Complete(system, prompt, 400)
	if err != nil {
		slog.Warn("meal suggestion failed", "error", err)
		return fallbackMeal(gapP, StatusError, fmt.Sprintf("advisor call failed: %v", err))
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return fallbackMeal(gapP, StatusError, "malformed advisor response")
	}

	var meal MealSuggestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &meal); err != nil {
		slog.Warn("meal suggestion unparseable", "error", err)
		return fallbackMeal(gapP, StatusError, "malformed advisor response")
	}
	meal.Status = StatusNominal
	return &meal
}

func fallbackMeal(gapProtein float64, status, warning string) *MealSuggestion {
	meal := &MealSuggestion{
		Status:      status,
		MealName:    "Chicken, rice, and greens",
		Ingredients: []string{"chicken breast", "white rice", "broccoli", "olive oil"},
		Rationale:   "Default recovery plate covering protein, carbohydrate, and fat in one sitting.",
		Warnings:    []string{warning},
	}
	if gapProtein <= 0 {
		meal.MealName = "Greek yogurt and fruit"
		meal.Ingredients = []string{"greek yogurt", "banana", "almonds"}
		meal.Rationale = "Protein target already met; light plate to round out the day."
	}
	return meal
}
