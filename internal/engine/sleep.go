package engine

import "github.com/talgya/vitals/internal/metrics"

// SleepResult is the output of the sleep physics calculator.
type SleepResult struct {
	TimeInBedMin  float64 `json:"time_in_bed_min"`
	TotalSleepMin float64 `json:"total_sleep_min"`
	EfficiencyPct float64 `json:"efficiency_pct"`
}

// ComputeSleep derives duration and efficiency from the night's log.
// Bed and wake times are minutes of day on a 24-hour wheel: a wake minute
// earlier than the bed minute means sleep crossed midnight, so a full day is
// added. Identical times yield zero time in bed. Naps add back sleep without
// extending time in bed, and efficiency is defined as 0 when time in bed is 0.
func ComputeSleep(log metrics.SleepLog) SleepResult {
	var res SleepResult
	if !log.Logged {
		return res
	}

	tib := log.WakeMinute - log.BedMinute
	if tib < 0 {
		tib += 24 * 60
	}
	res.TimeInBedMin = float64(tib)

	total := res.TimeInBedMin - log.AwakeMin
	for _, nap := range log.NapMins {
		total += nap
	}
	if total < 0 {
		total = 0
	}
	res.TotalSleepMin = total

	if res.TimeInBedMin > 0 {
		res.EfficiencyPct = res.TotalSleepMin / res.TimeInBedMin * 100
	}
	return res
}
