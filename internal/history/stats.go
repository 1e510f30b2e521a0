package history

import (
	"math"

	"github.com/talgya/vitals/internal/metrics"
)

// CorrelationResult pairs a Pearson coefficient with the two series it was
// computed over.
type CorrelationResult struct {
	X           metrics.Metric `json:"-"`
	Y           metrics.Metric `json:"-"`
	XName       string         `json:"x"`
	YName       string         `json:"y"`
	Coefficient float64        `json:"coefficient"`
	SeriesX     []float64      `json:"series_x"`
	SeriesY     []float64      `json:"series_y"`
}

// Pearson computes the correlation coefficient of two equal-length series.
// Returns 0 when either series has fewer than 2 points or the denominator is
// 0 (constant series) — a defined fallback, not an error.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	fn := float64(n)
	denom := math.Sqrt((fn*sumX2 - sumX*sumX) * (fn*sumY2 - sumY*sumY))
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// StdDev computes the population standard deviation of a series. Returns 0
// for an empty series.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}

// Correlate extracts two metric series over the same trailing window and
// computes their Pearson coefficient.
func (s *Store) Correlate(x, y metrics.Metric, days int) CorrelationResult {
	sx := s.Series(x, days)
	sy := s.Series(y, days)
	return CorrelationResult{
		X: x, Y: y,
		XName:       x.String(),
		YName:       y.String(),
		Coefficient: Pearson(sx, sy),
		SeriesX:     sx,
		SeriesY:     sy,
	}
}

// Trend returns the trailing window points of one metric for visualization.
func (s *Store) Trend(m metrics.Metric, window int) []float64 {
	if window <= 0 {
		window = 14
	}
	return s.Series(m, window)
}
