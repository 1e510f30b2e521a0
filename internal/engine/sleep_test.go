package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/vitals/internal/metrics"
)

func sleepLog(bed, wake int, awake float64, naps ...float64) metrics.SleepLog {
	return metrics.SleepLog{BedMinute: bed, WakeMinute: wake, AwakeMin: awake, NapMins: naps, Logged: true}
}

func TestSleepOvernightWheel(t *testing.T) {
	// 23:00 → 07:00 crosses midnight and must not come out negative.
	res := ComputeSleep(sleepLog(23*60, 7*60, 0))
	assert.Equal(t, 480.0, res.TimeInBedMin)
	assert.Equal(t, 480.0, res.TotalSleepMin)
	assert.Equal(t, 100.0, res.EfficiencyPct)
}

func TestSleepSameDayWindow(t *testing.T) {
	// 01:00 → 09:00, no wheel adjustment needed.
	res := ComputeSleep(sleepLog(60, 9*60, 0))
	assert.Equal(t, 480.0, res.TimeInBedMin)
}

func TestSleepIdenticalTimesZeroInBed(t *testing.T) {
	res := ComputeSleep(sleepLog(22*60, 22*60, 0))
	assert.Equal(t, 0.0, res.TimeInBedMin)
	assert.Equal(t, 0.0, res.EfficiencyPct, "efficiency is defined as 0 when time in bed is 0")
}

func TestSleepWorkedExample(t *testing.T) {
	// 22:30 → 06:15 with 25 awake minutes.
	res := ComputeSleep(sleepLog(22*60+30, 6*60+15, 25))
	assert.Equal(t, 465.0, res.TimeInBedMin)
	assert.Equal(t, 440.0, res.TotalSleepMin)
	assert.InDelta(t, 94.6, res.EfficiencyPct, 0.05)
}

func TestSleepNapsAddBack(t *testing.T) {
	res := ComputeSleep(sleepLog(23*60, 7*60, 60, 30, 15))
	assert.Equal(t, 480.0, res.TimeInBedMin)
	assert.Equal(t, 480.0-60+45, res.TotalSleepMin)
}

func TestSleepUnloggedIsZero(t *testing.T) {
	res := ComputeSleep(metrics.SleepLog{})
	assert.Zero(t, res.TimeInBedMin)
	assert.Zero(t, res.TotalSleepMin)
	assert.Zero(t, res.EfficiencyPct)
}
