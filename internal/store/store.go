// Package store persists earthquake catalogs and cross-section runs.
// Two backends are provided: an embedded SQLite database for local work and
// a PostGIS-enabled Postgres database for shared deployments.
package store

import (
	"context"
	"time"

	"github.com/quakelab/seissect/internal/model"
	"github.com/quakelab/seissect/internal/section"
)

// SectionRun records one cross-section assignment: the parameters it ran
// with, the section geometry it produced, and per-section event counts.
type SectionRun struct {
	ID        string              `json:"id"`
	Catalog   string              `json:"catalog"`
	Params    section.BuildParams `json:"params"`
	Sections  model.SectionSet    `json:"sections"`
	Counts    map[int]int         `json:"counts"`
	CreatedAt time.Time           `json:"created_at"`
}

// Store defines the persistence interface for catalogs and section runs.
type Store interface {
	// Catalog events
	SaveEvents(ctx context.Context, catalog string, events []model.Event) (int64, error)
	ListEvents(ctx context.Context, catalog string, limit, offset int) ([]model.Event, error)
	CountEvents(ctx context.Context, catalog string) (int64, error)

	// Section runs
	SaveSectionRun(ctx context.Context, run *SectionRun) error
	GetSectionRun(ctx context.Context, id string) (*SectionRun, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
