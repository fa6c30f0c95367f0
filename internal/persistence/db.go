// Package persistence stores social indicator history and social events
// in SQLite, one run per simulation.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/troop/internal/engine"
	"github.com/talgya/troop/internal/social"
	"github.com/talgya/troop/internal/world"
)

// DB wraps a SQLite connection for indicator and event storage.
type DB struct {
	conn *sqlx.DB
}

// Run is one recorded simulation.
type Run struct {
	ID        string `db:"id" json:"id"`
	Seed      int64  `db:"seed" json:"seed"`
	StartedAt string `db:"started_at" json:"started_at"`
	Config    string `db:"config_json" json:"config"`
}

type indicatorRow struct {
	RunID            string `db:"run_id"`
	Days             uint32 `db:"days"`
	Minutes          uint16 `db:"minutes"`
	Population       int    `db:"population"`
	SocialLinks      int    `db:"social_links"`
	Cohesion         int    `db:"cohesion"`
	Familiarity      int    `db:"familiarity"`
	Amorousness      int    `db:"amorousness"`
	Parasites        int    `db:"parasites"`
	ParasiteMobility int    `db:"parasite_mobility"`
	Grooming         int    `db:"grooming"`
	Chat             int    `db:"chat"`
	EnergyOutput     int    `db:"energy_output"`
	Conceptions      int    `db:"conceptions"`
	Squabbles        int    `db:"squabbles"`
	Drives           string `db:"drives_json"`
	Density          string `db:"density_json"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
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
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		config_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS indicators (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		days INTEGER NOT NULL,
		minutes INTEGER NOT NULL,
		population INTEGER NOT NULL,
		social_links INTEGER NOT NULL,
		cohesion INTEGER NOT NULL,
		familiarity INTEGER NOT NULL,
		amorousness INTEGER NOT NULL,
		parasites INTEGER NOT NULL,
		parasite_mobility INTEGER NOT NULL,
		grooming INTEGER NOT NULL,
		chat INTEGER NOT NULL,
		energy_output INTEGER NOT NULL,
		conceptions INTEGER NOT NULL,
		squabbles INTEGER NOT NULL,
		drives_json TEXT NOT NULL,
		density_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS troop_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id, tick);
	CREATE INDEX IF NOT EXISTS idx_indicators_run ON indicators(run_id, days, minutes);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// NewRun registers a simulation run and returns its ID.
func (db *DB) NewRun(seed int64, cfg any) (string, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode run config: %w", err)
	}
	run := Run{
		ID:        uuid.NewString(),
		Seed:      seed,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    string(raw),
	}
	_, err = db.conn.NamedExec(
		"INSERT INTO runs (id, seed, started_at, config_json) VALUES (:id, :seed, :started_at, :config_json)",
		run,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return run.ID, nil
}

// Runs lists recorded runs, newest first.
func (db *DB) Runs(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT id, seed, started_at, config_json FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return runs, err
}

// LatestRun returns the ID of the most recently started run.
func (db *DB) LatestRun() (string, error) {
	var id string
	err := db.conn.Get(&id, "SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1")
	return id, err
}

// SaveIndicators appends indicator samples to a run.
func (db *DB) SaveIndicators(runID string, samples []social.Indicators) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, ind := range samples {
		drives, err := json.Marshal(ind.Drives)
		if err != nil {
			return fmt.Errorf("encode drives: %w", err)
		}
		density, err := json.Marshal(ind.Density)
		if err != nil {
			return fmt.Errorf("encode density: %w", err)
		}
		row := indicatorRow{
			RunID:            runID,
			Days:             ind.Date.Days,
			Minutes:          ind.Date.Minutes,
			Population:       ind.Population,
			SocialLinks:      ind.SocialLinks,
			Cohesion:         ind.Cohesion,
			Familiarity:      ind.Familiarity,
			Amorousness:      ind.Amorousness,
			Parasites:        ind.Parasites,
			ParasiteMobility: ind.ParasiteMobility,
			Grooming:         ind.Grooming,
			Chat:             ind.Chat,
			EnergyOutput:     ind.EnergyOutput,
			Conceptions:      ind.Conceptions,
			Squabbles:        ind.Squabbles,
			Drives:           string(drives),
			Density:          string(density),
		}
		_, err = tx.NamedExec(`INSERT INTO indicators
			(run_id, days, minutes, population, social_links, cohesion, familiarity,
			 amorousness, parasites, parasite_mobility, grooming, chat, energy_output,
			 conceptions, squabbles, drives_json, density_json)
			VALUES (:run_id, :days, :minutes, :population, :social_links, :cohesion, :familiarity,
			 :amorousness, :parasites, :parasite_mobility, :grooming, :chat, :energy_output,
			 :conceptions, :squabbles, :drives_json, :density_json)`, row)
		if err != nil {
			return fmt.Errorf("insert indicators: %w", err)
		}
	}

	return tx.Commit()
}

// IndicatorHistory returns the last limit samples of a run in
// chronological order.
func (db *DB) IndicatorHistory(runID string, limit int) ([]social.Indicators, error) {
	var rows []indicatorRow
	err := db.conn.Select(&rows, `SELECT run_id, days, minutes, population, social_links,
		cohesion, familiarity, amorousness, parasites, parasite_mobility, grooming, chat,
		energy_output, conceptions, squabbles, drives_json, density_json
		FROM indicators WHERE run_id = ? ORDER BY id DESC LIMIT ?`, runID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]social.Indicators, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		ind := social.Indicators{
			Date:             world.Date{Days: r.Days, Minutes: r.Minutes},
			Population:       r.Population,
			SocialLinks:      r.SocialLinks,
			Cohesion:         r.Cohesion,
			Familiarity:      r.Familiarity,
			Amorousness:      r.Amorousness,
			Parasites:        r.Parasites,
			ParasiteMobility: r.ParasiteMobility,
			Grooming:         r.Grooming,
			Chat:             r.Chat,
			EnergyOutput:     r.EnergyOutput,
			Conceptions:      r.Conceptions,
			Squabbles:        r.Squabbles,
		}
		if err := json.Unmarshal([]byte(r.Drives), &ind.Drives); err != nil {
			return nil, fmt.Errorf("decode drives: %w", err)
		}
		if err := json.Unmarshal([]byte(r.Density), &ind.Density); err != nil {
			return nil, fmt.Errorf("decode density: %w", err)
		}
		out = append(out, ind)
	}
	return out, nil
}

// SaveEvents appends events to a run.
func (db *DB) SaveEvents(runID string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (run_id, tick, description, category) VALUES (?, ?, ?, ?)",
			runID, e.Tick, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentEvents returns the most recent N events of a run, newest first.
func (db *DB) RecentEvents(runID string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events WHERE run_id = ? ORDER BY id DESC LIMIT ?",
		runID, limit,
	)
	return events, err
}

// SaveMeta stores a key-value pair in troop metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO troop_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM troop_meta WHERE key = ?", key)
	return value, err
}

// SaveRunState flushes the simulation's pending indicator samples and the
// events recorded after tick since. It returns the tick to pass as since
// on the next call.
func (db *DB) SaveRunState(runID string, sim *engine.Simulation, since uint64) (uint64, error) {
	samples := sim.DrainIndicators()
	if err := db.SaveIndicators(runID, samples); err != nil {
		return since, fmt.Errorf("save indicators: %w", err)
	}

	var pending []engine.Event
	for _, e := range sim.Events {
		if e.Tick > since {
			pending = append(pending, e)
		}
	}
	if err := db.SaveEvents(runID, pending); err != nil {
		return since, fmt.Errorf("save events: %w", err)
	}
	if err := db.SaveMeta("last_tick", fmt.Sprintf("%d", sim.CurrentTick())); err != nil {
		return since, fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta("last_run", runID); err != nil {
		return since, fmt.Errorf("save meta: %w", err)
	}

	slog.Debug("run state saved",
		"run", runID,
		"indicators", len(samples),
		"events", len(pending),
		"alive", sim.Population.Len(),
	)
	return sim.CurrentTick(), nil
}
