package advisor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/vitals/internal/engine"
	"github.com/talgya/vitals/internal/history"
	"github.com/talgya/vitals/internal/metrics"
)

// Report statuses. Simulation marks a placeholder produced without the API;
// Error marks a degraded result after a failed call.
const (
	StatusNominal    = "Nominal"
	StatusSimulation = "Simulation"
	StatusError      = "Error"
)

// SubsystemAdvice is one per-domain line of the report.
type SubsystemAdvice struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Advisory string `json:"advisory"`
}

// Report is the advisory payload rendered by the dashboard. All fields are
// optional; the renderer tolerates any of them being absent.
type Report struct {
	Status             string            `json:"status"`
	Diagnosis          string            `json:"diagnosis,omitempty"`
	PrimeDirective     string            `json:"prime_directive,omitempty"`
	Subsystems         []SubsystemAdvice `json:"subsystems,omitempty"`
	CorrelationInsight string            `json:"correlation_insight,omitempty"`
	Warnings           []string          `json:"warnings,omitempty"`
}

// ReportContext carries the numbers embedded into the report prompt.
type ReportContext struct {
	Date        string
	Scores      metrics.ScoreSet
	Energy      engine.EnergyResult
	Sleep       engine.SleepResult
	Steps       int
	VolumeKg    float64
	HydrationMl float64
	Correlation history.CorrelationResult
}

// GenerateReport builds the daily system report. Any failure — disabled
// client, transport error, malformed response — yields a degraded placeholder
// instead of an error; the caller never has to handle one.
func GenerateReport(client *Client, ctx ReportContext) *Report {
	if !client.Enabled() {
		return fallbackReport(ctx, StatusSimulation, "advisor offline: deterministic summary only")
	}

	raw, err := client.Complete(reportSystemPrompt, buildReportPrompt(ctx), 700)
	if err != nil {
		slog.Warn("advisor report failed", "error", err)
		return fallbackReport(ctx, StatusError, fmt.Sprintf("advisor call failed: %v", err))
	}

	report, err := parseReport(raw)
	if err != nil {
		slog.Warn("advisor report unparseable", "error", err)
		// Free-form text is still an acceptable response shape.
		return &Report{Status: StatusNominal, Diagnosis: strings.TrimSpace(raw)}
	}
	report.Status = StatusNominal
	return report
}

const reportSystemPrompt = `You are the diagnostic voice of a personal health dashboard that frames the body as a machine under maintenance. You receive one day of telemetry: five subsystem scores (0-100), a composite integrity score, caloric balance, and one historical correlation.

Respond ONLY with a single JSON object containing:
- "diagnosis": 1-2 sentences on overall system state
- "prime_directive": the single highest-leverage instruction for tomorrow
- "subsystems": array of {"name", "status", "advisory"} for sleep, nutrition, hydration, physical, mind (status one of "Optimal", "Stable", "Degraded", "Critical")
- "correlation_insight": one sentence interpreting the correlation figure

Keep the machine-maintenance register. Do not mention being an AI.`

func buildReportPrompt(ctx ReportContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Telemetry for %s:\n", ctx.Date)
	fmt.Fprintf(&b, "System integrity: %.1f\n", ctx.Scores.Composite)
	fmt.Fprintf(&b, "Subsystems: sleep %.1f, nutrition %.1f, hydration %.1f, physical %.1f, mind %.1f\n",
		ctx.Scores.Sleep, ctx.Scores.Nutrition, ctx.Scores.Hydration, ctx.Scores.Physical, ctx.Scores.Mind)
	fmt.Fprintf(&b, "Sleep: %.0f min (%.1f%% efficiency)\n", ctx.Sleep.TotalSleepMin, ctx.Sleep.EfficiencyPct)
	fmt.Fprintf(&b, "Movement: %s steps, %s kg lifted\n",
		humanize.Comma(int64(ctx.Steps)), humanize.CommafWithDigits(ctx.VolumeKg, 0))
	fmt.Fprintf(&b, "Hydration: %s ml\n", humanize.CommafWithDigits(ctx.HydrationMl, 0))
	fmt.Fprintf(&b, "Caloric balance: %+.0f kcal (basal %.0f, expenditure %.0f)\n",
		ctx.Energy.Balance, ctx.Energy.BasalRate, ctx.Energy.Expenditure)

	if len(ctx.Correlation.SeriesX) >= 2 {
		fmt.Fprintf(&b, "Correlation %s vs %s over %d days: r=%.2f\n",
			ctx.Correlation.XName, ctx.Correlation.YName,
			len(ctx.Correlation.SeriesX), ctx.Correlation.Coefficient)
	}

	b.WriteString("\nProduce the JSON report.")
	return b.String()
}

func parseReport(raw string) (*Report, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var report Report
	if err := json.Unmarshal([]byte(raw[start:end+1]), &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}

// fallbackReport renders a deterministic placeholder from the telemetry the
// prompt would have carried, so the dashboard always has something to show.
func fallbackReport(ctx ReportContext, status, warning string) *Report {
	worst := "sleep"
	worstScore := ctx.Scores.Sleep
	for name, score := range map[string]float64{
		"nutrition": ctx.Scores.Nutrition,
		"hydration": ctx.Scores.Hydration,
		"physical":  ctx.Scores.Physical,
		"mind":      ctx.Scores.Mind,
	} {
		if score < worstScore {
			worst, worstScore = name, score
		}
	}

	return &Report{
		Status: status,
		Diagnosis: fmt.Sprintf("System integrity at %.0f/100. Weakest subsystem: %s (%.0f).",
			ctx.Scores.Composite, worst, worstScore),
		PrimeDirective: fmt.Sprintf("Prioritize the %s subsystem.", worst),
		Subsystems: []SubsystemAdvice{
			{Name: "sleep", Status: statusFor(ctx.Scores.Sleep)},
			{Name: "nutrition", Status: statusFor(ctx.Scores.Nutrition)},
			{Name: "hydration", Status: statusFor(ctx.Scores.Hydration)},
			{Name: "physical", Status: statusFor(ctx.Scores.Physical)},
			{Name: "mind", Status: statusFor(ctx.Scores.Mind)},
		},
		Warnings: []string{warning},
	}
}

func statusFor(score float64) string {
	switch {
	case score >= 85:
		return "Optimal"
	case score >= 60:
		return "Stable"
	case score >= 35:
		return "Degraded"
	default:
		return "Critical"
	}
}
