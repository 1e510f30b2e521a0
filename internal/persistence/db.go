// Package persistence provides SQLite-backed storage for daily snapshots,
// user-defined foods and exercises, and the in-progress working day.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/vitals/internal/metrics"
)

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path, creating the
// parent directory when it does not exist.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		date TEXT PRIMARY KEY,
		sleep_min REAL NOT NULL,
		sleep_eff REAL NOT NULL,
		calories REAL NOT NULL,
		protein_g REAL NOT NULL,
		hydration_ml REAL NOT NULL,
		steps INTEGER NOT NULL,
		volume_kg REAL NOT NULL,
		screen_min REAL NOT NULL,
		study_min REAL NOT NULL,
		composite REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS foods (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		profile_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		cal_per_rep REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSnapshot upserts the snapshot for its date. Called on every recompute
// of the working day, so the current date's row is rewritten repeatedly
// until the day closes (last write wins).
func (db *DB) SaveSnapshot(s metrics.DailySnapshot) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO snapshots
		(date, sleep_min, sleep_eff, calories, protein_g, hydration_ml,
		 steps, volume_kg, screen_min, study_min, composite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Date, s.SleepMin, s.SleepEff, s.Calories, s.ProteinG, s.HydrationMl,
		s.Steps, s.VolumeKg, s.ScreenMin, s.StudyMin, s.Composite,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.Date, err)
	}
	return nil
}

// SaveSnapshots writes a batch in one transaction (used for seeding).
func (db *DB) SaveSnapshots(snaps []metrics.DailySnapshot) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR REPLACE INTO snapshots
		(date, sleep_min, sleep_eff, calories, protein_g, hydration_ml,
		 steps, volume_kg, screen_min, study_min, composite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range snaps {
		if _, err := stmt.Exec(
			s.Date, s.SleepMin, s.SleepEff, s.Calories, s.ProteinG, s.HydrationMl,
			s.Steps, s.VolumeKg, s.ScreenMin, s.StudyMin, s.Composite,
		); err != nil {
			return fmt.Errorf("insert snapshot %s: %w", s.Date, err)
		}
	}
	return tx.Commit()
}

// LoadSnapshots returns all stored snapshots in date order.
func (db *DB) LoadSnapshots() ([]metrics.DailySnapshot, error) {
	var out []metrics.DailySnapshot
	err := db.conn.Select(&out, `SELECT date, sleep_min, sleep_eff, calories,
		protein_g, hydration_ml, steps, volume_kg, screen_min, study_min, composite
		FROM snapshots ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	return out, nil
}

// SaveFood upserts a user-defined food.
func (db *DB) SaveFood(f metrics.Food) error {
	profileJSON, err := json.Marshal(f.Profile)
	if err != nil {
		return fmt.Errorf("marshal food profile: %w", err)
	}
	_, err = db.conn.Exec(
		"INSERT OR REPLACE INTO foods (id, name, profile_json) VALUES (?, ?, ?)",
		f.ID, f.Name, string(profileJSON),
	)
	return err
}

// LoadFoods returns all user-defined foods. Rows with unparseable profiles
// are skipped with a warning rather than failing the load.
func (db *DB) LoadFoods() ([]metrics.Food, error) {
	rows, err := db.conn.Queryx("SELECT id, name, profile_json FROM foods")
	if err != nil {
		return nil, fmt.Errorf("load foods: %w", err)
	}
	defer rows.Close()

	var out []metrics.Food
	for rows.Next() {
		var id, name, profileJSON string
		if err := rows.Scan(&id, &name, &profileJSON); err != nil {
			return nil, err
		}
		var profile metrics.MacroProfile
		if err := json.Unmarshal([]byte(profileJSON), &profile); err != nil {
			slog.Warn("skipping food with bad profile", "id", id, "error", err)
			continue
		}
		out = append(out, metrics.Food{ID: id, Name: name, Profile: profile, Custom: true})
	}
	return out, rows.Err()
}

// SaveExercise upserts a user-defined exercise.
func (db *DB) SaveExercise(e metrics.Exercise) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO exercises (id, name, cal_per_rep) VALUES (?, ?, ?)",
		e.ID, e.Name, e.CalPerRep,
	)
	return err
}

// LoadExercises returns all user-defined exercises.
func (db *DB) LoadExercises() ([]metrics.Exercise, error) {
	var out []metrics.Exercise
	err := db.conn.Select(&out, "SELECT id, name, cal_per_rep FROM exercises")
	if err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}
	for i := range out {
		out[i].Custom = true
	}
	return out, nil
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value. ok is false when the key is absent.
func (db *DB) GetMeta(key string) (string, bool, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SaveDayLog persists the in-progress working day as a JSON blob.
func (db *DB) SaveDayLog(day metrics.DayLog) error {
	data, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("marshal day log: %w", err)
	}
	return db.SaveMeta("current_day", string(data))
}

// LoadDayLog restores the saved working day. A missing or unparseable blob
// is treated as absent — startup never fails on bad persisted state.
func (db *DB) LoadDayLog() (metrics.DayLog, bool) {
	var day metrics.DayLog
	value, ok, err := db.GetMeta("current_day")
	if err != nil || !ok {
		return day, false
	}
	if err := json.Unmarshal([]byte(value), &day); err != nil {
		slog.Warn("saved day log unparseable, starting fresh", "error", err)
		return metrics.DayLog{}, false
	}
	return day, true
}
