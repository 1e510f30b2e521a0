package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/vitals/internal/metrics"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "vitals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "vitals.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.SaveMeta("k", "v"))
	v, ok, err := db.GetMeta("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := openTestDB(t)

	snap := metrics.DailySnapshot{
		Date: "2026-03-01", SleepMin: 465, SleepEff: 94.6, Calories: 2100,
		ProteinG: 140, HydrationMl: 2800, Steps: 9000, VolumeKg: 4500,
		ScreenMin: 95, StudyMin: 60, Composite: 78.2,
	}
	require.NoError(t, db.SaveSnapshot(snap))

	loaded, err := db.LoadSnapshots()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, snap, loaded[0])
}

func TestSnapshotUpsertLastWriteWins(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveSnapshot(metrics.DailySnapshot{Date: "2026-03-01", Composite: 40}))
	require.NoError(t, db.SaveSnapshot(metrics.DailySnapshot{Date: "2026-03-01", Composite: 71}))

	loaded, err := db.LoadSnapshots()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 71.0, loaded[0].Composite)
}

func TestSnapshotBatchOrdering(t *testing.T) {
	db := openTestDB(t)

	batch := []metrics.DailySnapshot{
		{Date: "2026-03-02"},
		{Date: "2026-03-01"},
		{Date: "2026-03-03"},
	}
	require.NoError(t, db.SaveSnapshots(batch))

	loaded, err := db.LoadSnapshots()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "2026-03-01", loaded[0].Date)
	assert.Equal(t, "2026-03-03", loaded[2].Date)
}

func TestFoodRoundTrip(t *testing.T) {
	db := openTestDB(t)

	food := metrics.Food{ID: "my_shake", Name: "Homemade shake",
		Profile: metrics.MacroProfile{Cal: 400, P: 35, C: 40, F: 10}}
	require.NoError(t, db.SaveFood(food))

	loaded, err := db.LoadFoods()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, food.Profile, loaded[0].Profile)
	assert.True(t, loaded[0].Custom)
}

func TestExerciseRoundTrip(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveExercise(metrics.Exercise{ID: "farmer_carry", Name: "Farmer carry", CalPerRep: 0.8}))
	loaded, err := db.LoadExercises()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 0.8, loaded[0].CalPerRep)
}

func TestDayLogRoundTrip(t *testing.T) {
	db := openTestDB(t)

	day := metrics.DayLog{
		Date:  "2026-03-01",
		Steps: 7500,
		Meals: []metrics.MealEntry{{ID: "m1", Slot: metrics.SlotLunch, FoodID: "oats", Amount: 1}},
	}
	require.NoError(t, db.SaveDayLog(day))

	loaded, ok := db.LoadDayLog()
	require.True(t, ok)
	assert.Equal(t, day.Date, loaded.Date)
	assert.Equal(t, day.Steps, loaded.Steps)
	require.Len(t, loaded.Meals, 1)
}

func TestDayLogMalformedBlobTreatedAsAbsent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveMeta("current_day", "{not json"))
	_, ok := db.LoadDayLog()
	assert.False(t, ok, "unparseable state falls back to a fresh day")
}

func TestGetMetaMissingKey(t *testing.T) {
	db := openTestDB(t)
	_, ok, err := db.GetMeta("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}
