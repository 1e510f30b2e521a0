package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/vitals/internal/metrics"
)

func testContext() ReportContext {
	return ReportContext{
		Date: "2026-03-01",
		Scores: metrics.ScoreSet{
			Sleep: 82, Nutrition: 64, Hydration: 90, Physical: 45, Mind: 70, Composite: 68,
		},
	}
}

func TestParseReportExtractsEmbeddedJSON(t *testing.T) {
	raw := `Here is the report:
{"diagnosis": "Stable", "prime_directive": "Sleep earlier",
 "subsystems": [{"name": "sleep", "status": "Optimal", "advisory": "hold"}],
 "correlation_insight": "Sleep tracks integrity."}
Done.`

	report, err := parseReport(raw)
	require.NoError(t, err)
	assert.Equal(t, "Stable", report.Diagnosis)
	assert.Equal(t, "Sleep earlier", report.PrimeDirective)
	require.Len(t, report.Subsystems, 1)
	assert.Equal(t, "sleep", report.Subsystems[0].Name)
}

func TestParseReportToleratesMissingFields(t *testing.T) {
	report, err := parseReport(`{"diagnosis": "All systems nominal"}`)
	require.NoError(t, err)
	assert.Equal(t, "All systems nominal", report.Diagnosis)
	assert.Empty(t, report.Subsystems)
	assert.Empty(t, report.PrimeDirective)
}

func TestParseReportNoJSON(t *testing.T) {
	_, err := parseReport("plain prose, no braces")
	assert.Error(t, err)
}

func TestGenerateReportDisabledClientDegrades(t *testing.T) {
	// nil client: must yield a Simulation placeholder, never an error.
	report := GenerateReport(nil, testContext())
	require.NotNil(t, report)
	assert.Equal(t, StatusSimulation, report.Status)
	assert.NotEmpty(t, report.Diagnosis)
	assert.Len(t, report.Subsystems, 5)
	assert.NotEmpty(t, report.Warnings)
}

func TestFallbackReportNamesWorstSubsystem(t *testing.T) {
	report := fallbackReport(testContext(), StatusError, "down")
	assert.Contains(t, report.Diagnosis, "physical", "physical is the weakest sub-score")
}

func TestStatusForBands(t *testing.T) {
	assert.Equal(t, "Optimal", statusFor(92))
	assert.Equal(t, "Stable", statusFor(60))
	assert.Equal(t, "Degraded", statusFor(40))
	assert.Equal(t, "Critical", statusFor(10))
}

func TestSuggestMealDisabledClientDegrades(t *testing.T) {
	targets := metrics.DefaultTargets()

	meal := SuggestMeal(nil, metrics.NutrientTotals{}, targets)
	require.NotNil(t, meal)
	assert.Equal(t, StatusSimulation, meal.Status)
	assert.NotEmpty(t, meal.Ingredients)

	// Protein already covered: lighter default plate.
	full := SuggestMeal(nil, metrics.NutrientTotals{P: targets.ProteinG + 10}, targets)
	assert.NotEqual(t, meal.MealName, full.MealName)
}

func TestBuildReportPromptCarriesTelemetry(t *testing.T) {
	ctx := testContext()
	ctx.Steps = 12345
	prompt := buildReportPrompt(ctx)
	assert.Contains(t, prompt, "2026-03-01")
	assert.Contains(t, prompt, "12,345")
}
