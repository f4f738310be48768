// Package store keeps the resolution history in memory and the panel
// snapshot in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/i474232898/today-forecast/internal/state"
	"github.com/i474232898/today-forecast/internal/weather"
)

// Snapshot is the persisted panel state. The loading flag is never stored.
type Snapshot struct {
	Location  weather.Location `json:"location"`
	Forecast  weather.Forecast `json:"forecast"`
	Ui        state.UiState    `json:"ui"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// SQLiteStore keeps the latest Snapshot in a single-row table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens (or creates) the database at path and applies the schema.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer; modernc sqlite serializes anyway.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS snapshot (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	location   TEXT NOT NULL,
	forecast   TEXT NOT NULL,
	ui         TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("create snapshot table: %w", err)
	}
	return nil
}

// SaveSnapshot replaces the stored snapshot.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	loc, err := json.Marshal(snap.Location)
	if err != nil {
		return err
	}
	forecast, err := json.Marshal(snap.Forecast)
	if err != nil {
		return err
	}
	ui, err := json.Marshal(snap.Ui)
	if err != nil {
		return err
	}
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = s.now()
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO snapshot (id, location, forecast, ui, updated_at) VALUES (1, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	location = excluded.location,
	forecast = excluded.forecast,
	ui = excluded.ui,
	updated_at = excluded.updated_at`,
		string(loc), string(forecast), string(ui), snap.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot or ErrNotFound.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	var loc, forecast, ui, updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT location, forecast, ui, updated_at FROM snapshot WHERE id = 1`,
	).Scan(&loc, &forecast, &ui, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(loc), &snap.Location); err != nil {
		return Snapshot{}, fmt.Errorf("decode location: %w", err)
	}
	if err := json.Unmarshal([]byte(forecast), &snap.Forecast); err != nil {
		return Snapshot{}, fmt.Errorf("decode forecast: %w", err)
	}
	if err := json.Unmarshal([]byte(ui), &snap.Ui); err != nil {
		return Snapshot{}, fmt.Errorf("decode ui: %w", err)
	}
	if snap.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return Snapshot{}, fmt.Errorf("decode updated_at: %w", err)
	}
	return snap, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Persist saves a snapshot after every Weather or Ui dispatch and returns a
// function that stops persisting. Location changes are not watched on their
// own: a resolution always dispatches Weather right after Location, so the
// saved pair stays consistent.
func Persist(ctx context.Context, db *SQLiteStore, location *state.LocationStore, forecast *state.WeatherStore, ui *state.UiStore) (stop func()) {
	// Reading the stores and writing the row happen under one lock, so a save
	// that read older state cannot land after a newer one.
	var mu sync.Mutex
	save := func() {
		mu.Lock()
		defer mu.Unlock()
		snap := Snapshot{
			Location: location.State(),
			Forecast: forecast.State(),
			Ui:       ui.State(),
		}
		if err := db.SaveSnapshot(ctx, snap); err != nil {
			slog.Warn("failed to persist snapshot", "error", err)
		}
	}

	stopWeather := forecast.Subscribe(func(weather.Forecast) { save() })
	stopUi := ui.Subscribe(func(state.UiState) { save() })
	return func() {
		stopWeather()
		stopUi()
	}
}
