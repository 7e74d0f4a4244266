package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/tennis-tips/internal/database"
	"github.com/yourusername/tennis-tips/internal/models"
)

// PostgresModelRepository implements ModelRepository for PostgreSQL
type PostgresModelRepository struct {
	db *database.DB
}

// NewPostgresModelRepository creates a new model repository
func NewPostgresModelRepository(db *database.DB) ModelRepository {
	return &PostgresModelRepository{db: db}
}

// Insert inserts a new model artifact
func (r *PostgresModelRepository) Insert(ctx context.Context, artifact *models.ModelArtifact) error {
	query := `
		INSERT INTO model_artifacts (id, name, version, feature_schema, path, metrics, trained_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		artifact.ID, artifact.Name, artifact.Version, artifact.FeatureSchema,
		artifact.Path, artifact.Metrics, artifact.TrainedAt, artifact.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to insert model artifact: %w", err)
	}
	return nil
}

// GetActive retrieves the currently active model artifact
func (r *PostgresModelRepository) GetActive(ctx context.Context) (*models.ModelArtifact, error) {
	query := `
		SELECT id, name, version, feature_schema, path, metrics, trained_at, active, created_at
		FROM model_artifacts
		WHERE active = true
		ORDER BY trained_at DESC
		LIMIT 1
	`

	artifact, err := scanArtifact(r.db.GetPool().QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active model: %w", err)
	}
	return artifact, nil
}

// SetActive marks one artifact active and all others inactive. Exactly
// one model serves predictions at a time.
func (r *PostgresModelRepository) SetActive(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "UPDATE model_artifacts SET active = false WHERE active = true"); err != nil {
			return fmt.Errorf("failed to deactivate models: %w", err)
		}
		tag, err := tx.Exec(ctx, "UPDATE model_artifacts SET active = true WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to activate model: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

// GetByID retrieves a single model artifact
func (r *PostgresModelRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ModelArtifact, error) {
	query := `
		SELECT id, name, version, feature_schema, path, metrics, trained_at, active, created_at
		FROM model_artifacts
		WHERE id = $1
	`

	artifact, err := scanArtifact(r.db.GetPool().QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model artifact: %w", err)
	}
	return artifact, nil
}

// List retrieves all model artifacts, newest first
func (r *PostgresModelRepository) List(ctx context.Context) ([]*models.ModelArtifact, error) {
	query := `
		SELECT id, name, version, feature_schema, path, metrics, trained_at, active, created_at
		FROM model_artifacts
		ORDER BY trained_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list model artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []*models.ModelArtifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan model artifact: %w", err)
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, rows.Err()
}

func scanArtifact(row pgx.Row) (*models.ModelArtifact, error) {
	artifact := &models.ModelArtifact{}
	err := row.Scan(
		&artifact.ID, &artifact.Name, &artifact.Version, &artifact.FeatureSchema,
		&artifact.Path, &artifact.Metrics, &artifact.TrainedAt, &artifact.Active,
		&artifact.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return artifact, nil
}
