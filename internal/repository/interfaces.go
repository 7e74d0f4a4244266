// Package repository provides data access for the tips pipeline. All
// implementations are backed by PostgreSQL via pgx; the pipeline can
// also run file-to-file with the database disabled, in which case no
// repository is constructed.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/tennis-tips/internal/models"
)

// MatchResultRepository stores historical match results
type MatchResultRepository interface {
	// InsertBatch bulk-inserts results, skipping duplicates
	InsertBatch(ctx context.Context, results []models.MatchResult) (int64, error)
	// GetByDateRange retrieves results ordered by date
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.MatchResult, error)
	// Count returns the total number of stored results
	Count(ctx context.Context) (int64, error)
}

// OddsRepository stores historical bookmaker odds
type OddsRepository interface {
	InsertBatch(ctx context.Context, records []models.OddsRecord) (int64, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.OddsRecord, error)
	Count(ctx context.Context) (int64, error)
}

// MergedMatchRepository stores the joined result+odds rows the dataset
// builder produces
type MergedMatchRepository interface {
	ReplaceAll(ctx context.Context, merged []models.MergedMatch) (int64, error)
	GetAll(ctx context.Context) ([]models.MergedMatch, error)
}

// TipRepository stores generated tips
type TipRepository interface {
	Insert(ctx context.Context, tip *models.Tip) error
	InsertBatch(ctx context.Context, tips []*models.Tip) error
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Tip, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tip, error)
}

// ModelRepository stores trained model artifacts
type ModelRepository interface {
	Insert(ctx context.Context, artifact *models.ModelArtifact) error
	GetActive(ctx context.Context) (*models.ModelArtifact, error)
	SetActive(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ModelArtifact, error)
	List(ctx context.Context) ([]*models.ModelArtifact, error)
}
