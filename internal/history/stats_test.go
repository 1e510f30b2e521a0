package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/vitals/internal/metrics"
)

func TestPearsonSelfCorrelation(t *testing.T) {
	x := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	assert.InDelta(t, 1.0, Pearson(x, x), 1e-12)
}

func TestPearsonPerfectInverse(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{10, 8, 6, 4, 2}
	assert.InDelta(t, -1.0, Pearson(x, y), 1e-12)
}

func TestPearsonConstantSeriesFallback(t *testing.T) {
	x := []float64{5, 5, 5, 5}
	y := []float64{1, 2, 3, 4}
	assert.Zero(t, Pearson(x, y), "zero denominator is a defined fallback, not NaN")
	assert.Zero(t, Pearson(x, x))
}

func TestPearsonShortSeries(t *testing.T) {
	assert.Zero(t, Pearson(nil, nil))
	assert.Zero(t, Pearson([]float64{1}, []float64{2}))
}

func TestPearsonKnownValue(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 5, 4, 5}
	// Hand-computed: r = (5·66 − 15·20) / sqrt((5·55−225)(5·86−400)) = 30/sqrt(50·30)
	assert.InDelta(t, 0.7746, Pearson(x, y), 1e-4)
}

func TestStdDevPopulation(t *testing.T) {
	assert.Zero(t, StdDev(nil))
	assert.Zero(t, StdDev([]float64{7, 7, 7}))
	// Population stddev of {2,4,4,4,5,5,7,9} is exactly 2.
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
}

func TestCorrelateOverWindow(t *testing.T) {
	store := NewStore()
	for i := 0; i < 10; i++ {
		store.Put(metrics.DailySnapshot{
			Date:     fmt.Sprintf("2026-01-%02d", i+1),
			SleepMin: float64(400 + i*10),
			Steps:    4000 + i*1000,
		})
	}

	res := store.Correlate(metrics.MetricSleepMin, metrics.MetricSteps, 10)
	assert.InDelta(t, 1.0, res.Coefficient, 1e-12, "both series rise linearly together")
	assert.Len(t, res.SeriesX, 10)
	assert.Equal(t, "sleep_min", res.XName)
	assert.Equal(t, "steps", res.YName)
}

func TestTrendDefaultsToFourteen(t *testing.T) {
	store := NewStore()
	for i := 0; i < 30; i++ {
		store.Put(metrics.DailySnapshot{Date: fmt.Sprintf("2026-01-%02d", i+1), Composite: float64(i)})
	}
	points := store.Trend(metrics.MetricComposite, 0)
	assert.Len(t, points, 14)
	assert.Equal(t, 29.0, points[len(points)-1], "trailing window ends at the latest day")
}
