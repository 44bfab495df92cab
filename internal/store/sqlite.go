package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/quakelab/seissect/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS events (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	catalog    TEXT NOT NULL,
	lon        REAL NOT NULL,
	lat        REAL NOT NULL,
	depth_km   REAL NOT NULL,
	event_time DATETIME,
	payload    TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS section_runs (
	id         TEXT PRIMARY KEY,
	catalog    TEXT NOT NULL,
	params     TEXT NOT NULL,
	sections   TEXT NOT NULL,
	counts     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_events_catalog ON events(catalog);
CREATE INDEX IF NOT EXISTS idx_events_time ON events(event_time);
CREATE INDEX IF NOT EXISTS idx_section_runs_catalog ON section_runs(catalog);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveEvents inserts events in a single transaction, preserving input order
// through the autoincrement sequence.
func (s *SQLiteStore) SaveEvents(ctx context.Context, catalog string, events []model.Event) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (id, catalog, lon, lat, depth_km, event_time, payload) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	for i, ev := range events {
		var t any
		if !ev.Time.IsZero() {
			t = ev.Time.UTC()
		}
		var payload any
		if len(ev.Payload) > 0 {
			payload = string(ev.Payload)
		}
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), catalog, ev.Lon, ev.Lat, ev.DepthKM, t, payload); err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert event %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit")
	}
	return int64(len(events)), nil
}

func (s *SQLiteStore) ListEvents(ctx context.Context, catalog string, limit, offset int) ([]model.Event, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT lon, lat, depth_km, event_time, payload FROM events WHERE catalog = ? ORDER BY seq LIMIT ? OFFSET ?`,
		catalog, limit, offset)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list events")
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var ev model.Event
		var t sql.NullTime
		var payload sql.NullString
		if err := rows.Scan(&ev.Lon, &ev.Lat, &ev.DepthKM, &t, &payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan event")
		}
		if t.Valid {
			ev.Time = t.Time.UTC()
		}
		if payload.Valid {
			ev.Payload = json.RawMessage(payload.String)
		}
		events = append(events, ev)
	}
	return events, eris.Wrap(rows.Err(), "sqlite: iterate events")
}

func (s *SQLiteStore) CountEvents(ctx context.Context, catalog string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE catalog = ?`, catalog).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count events")
}

func (s *SQLiteStore) SaveSectionRun(ctx context.Context, run *SectionRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	params, err := json.Marshal(run.Params)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal run params")
	}
	sections, err := json.Marshal(run.Sections)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal run sections")
	}
	counts, err := json.Marshal(run.Counts)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal run counts")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO section_runs (id, catalog, params, sections, counts, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Catalog, string(params), string(sections), string(counts), run.CreatedAt)
	return eris.Wrap(err, "sqlite: insert section run")
}

func (s *SQLiteStore) GetSectionRun(ctx context.Context, id string) (*SectionRun, error) {
	var run SectionRun
	var params, sections, counts string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, catalog, params, sections, counts, created_at FROM section_runs WHERE id = ?`, id).
		Scan(&run.ID, &run.Catalog, &params, &sections, &counts, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(err, "sqlite: section run %s not found", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get section run %s", id)
	}

	if err := json.Unmarshal([]byte(params), &run.Params); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal run params")
	}
	if err := json.Unmarshal([]byte(sections), &run.Sections); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal run sections")
	}
	if err := json.Unmarshal([]byte(counts), &run.Counts); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal run counts")
	}
	return &run, nil
}
