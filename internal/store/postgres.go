package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/quakelab/seissect/internal/db"
	"github.com/quakelab/seissect/internal/export"
	"github.com/quakelab/seissect/internal/model"
)

// PostgresStore implements Store using pgxpool against a PostGIS-enabled
// database. Event epicenters and section traces are stored as SRID 4326
// geometries so spatial tooling can query them directly.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}

	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS events (
	seq        BIGSERIAL PRIMARY KEY,
	id         UUID NOT NULL UNIQUE,
	catalog    TEXT NOT NULL,
	lon        DOUBLE PRECISION NOT NULL,
	lat        DOUBLE PRECISION NOT NULL,
	depth_km   DOUBLE PRECISION NOT NULL,
	event_time TIMESTAMPTZ,
	payload    JSONB,
	geom       geometry(Point, 4326),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS section_runs (
	id         UUID PRIMARY KEY,
	catalog    TEXT NOT NULL,
	params     JSONB NOT NULL,
	sections   JSONB NOT NULL,
	counts     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS section_traces (
	run_id        UUID NOT NULL REFERENCES section_runs(id),
	section_index INT NOT NULL,
	strike_deg    DOUBLE PRECISION NOT NULL,
	geom          geometry(LineString, 4326) NOT NULL,
	PRIMARY KEY (run_id, section_index)
);

CREATE INDEX IF NOT EXISTS idx_events_catalog ON events(catalog);
CREATE INDEX IF NOT EXISTS idx_events_geom ON events USING GIST(geom);
CREATE INDEX IF NOT EXISTS idx_section_runs_catalog ON section_runs(catalog);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// SaveEvents bulk-loads events with COPY. The epicenter geometry column is
// populated from EWKB so PostGIS indexes it natively.
func (s *PostgresStore) SaveEvents(ctx context.Context, catalog string, events []model.Event) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	columns := []string{"id", "catalog", "lon", "lat", "depth_km", "event_time", "payload", "geom"}
	rows := make([][]any, 0, len(events))
	for i, ev := range events {
		geom, err := export.EncodePointEWKB(ev.Geographic())
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: event %d geometry", i)
		}
		var t any
		if !ev.Time.IsZero() {
			t = ev.Time.UTC()
		}
		var payload any
		if len(ev.Payload) > 0 {
			payload = []byte(ev.Payload)
		}
		rows = append(rows, []any{uuid.New().String(), catalog, ev.Lon, ev.Lat, ev.DepthKM, t, payload, geom})
	}

	return db.CopyFrom(ctx, s.pool, "events", columns, rows)
}

func (s *PostgresStore) ListEvents(ctx context.Context, catalog string, limit, offset int) ([]model.Event, error) {
	if limit <= 0 {
		limit = 1000000
	}
	rows, err := s.pool.Query(ctx,
		`SELECT lon, lat, depth_km, event_time, payload FROM events WHERE catalog = $1 ORDER BY seq LIMIT $2 OFFSET $3`,
		catalog, limit, offset)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list events")
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var ev model.Event
		var t *time.Time
		var payload []byte
		if err := rows.Scan(&ev.Lon, &ev.Lat, &ev.DepthKM, &t, &payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan event")
		}
		if t != nil {
			ev.Time = t.UTC()
		}
		if len(payload) > 0 {
			ev.Payload = json.RawMessage(payload)
		}
		events = append(events, ev)
	}
	return events, eris.Wrap(rows.Err(), "postgres: iterate events")
}

func (s *PostgresStore) CountEvents(ctx context.Context, catalog string) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE catalog = $1`, catalog).Scan(&n)
	return n, eris.Wrap(err, "postgres: count events")
}

func (s *PostgresStore) SaveSectionRun(ctx context.Context, run *SectionRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	params, err := json.Marshal(run.Params)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal run params")
	}
	sections, err := json.Marshal(run.Sections)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal run sections")
	}
	counts, err := json.Marshal(run.Counts)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal run counts")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO section_runs (id, catalog, params, sections, counts, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, run.Catalog, params, sections, counts, run.CreatedAt)
	if err != nil {
		return eris.Wrap(err, "postgres: insert section run")
	}

	for _, sec := range run.Sections.Sections {
		trace, err := export.EncodeTraceEWKB(sec)
		if err != nil {
			return eris.Wrapf(err, "postgres: section %d trace", sec.Index)
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO section_traces (run_id, section_index, strike_deg, geom) VALUES ($1, $2, $3, ST_GeomFromEWKB($4))`,
			run.ID, sec.Index, sec.StrikeDeg, trace)
		if err != nil {
			return eris.Wrapf(err, "postgres: insert section %d trace", sec.Index)
		}
	}
	return nil
}

func (s *PostgresStore) GetSectionRun(ctx context.Context, id string) (*SectionRun, error) {
	var run SectionRun
	var params, sections, counts []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, catalog, params, sections, counts, created_at FROM section_runs WHERE id = $1`, id).
		Scan(&run.ID, &run.Catalog, &params, &sections, &counts, &run.CreatedAt)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(err, "postgres: section run %s not found", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get section run %s", id)
	}

	if err := json.Unmarshal(params, &run.Params); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal run params")
	}
	if err := json.Unmarshal(sections, &run.Sections); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal run sections")
	}
	if err := json.Unmarshal(counts, &run.Counts); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal run counts")
	}
	return &run, nil
}
