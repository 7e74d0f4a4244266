package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/tennis-tips/internal/database"
	"github.com/yourusername/tennis-tips/internal/models"
)

// PostgresTipRepository implements TipRepository for PostgreSQL
type PostgresTipRepository struct {
	db *database.DB
}

// NewPostgresTipRepository creates a new tip repository
func NewPostgresTipRepository(db *database.DB) TipRepository {
	return &PostgresTipRepository{db: db}
}

// Insert inserts a single tip
func (r *PostgresTipRepository) Insert(ctx context.Context, tip *models.Tip) error {
	query := `
		INSERT INTO tips (id, fixture_date, player_a, player_b, surface, side, probability, odds, edge, stake_suggest, decision, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		tip.ID, tip.FixtureDate, tip.PlayerA, tip.PlayerB, string(tip.Surface),
		string(tip.Side), tip.Probability, tip.Odds, tip.Edge,
		tip.StakeSuggest, tip.Decision, tip.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tip: %w", err)
	}
	return nil
}

// InsertBatch inserts multiple tips using a bulk copy
func (r *PostgresTipRepository) InsertBatch(ctx context.Context, tips []*models.Tip) error {
	if len(tips) == 0 {
		return nil
	}

	columns := []string{"id", "fixture_date", "player_a", "player_b", "surface", "side", "probability", "odds", "edge", "stake_suggest", "decision", "generated_at"}
	rows := make([][]interface{}, len(tips))
	for i, t := range tips {
		rows[i] = []interface{}{
			t.ID, t.FixtureDate, t.PlayerA, t.PlayerB, string(t.Surface),
			string(t.Side), t.Probability, t.Odds, t.Edge,
			t.StakeSuggest, t.Decision, t.GeneratedAt,
		}
	}

	count, err := r.db.GetPool().CopyFrom(ctx, pgx.Identifier{"tips"}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert tips: %w", err)
	}
	if count != int64(len(tips)) {
		return fmt.Errorf("inserted %d tips, expected %d", count, len(tips))
	}
	return nil
}

// GetByDateRange retrieves tips for fixtures within a date range
func (r *PostgresTipRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Tip, error) {
	query := `
		SELECT id, fixture_date, player_a, player_b, surface, side, probability, odds, edge, stake_suggest, decision, generated_at
		FROM tips
		WHERE fixture_date >= $1 AND fixture_date <= $2
		ORDER BY fixture_date ASC, edge DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query tips: %w", err)
	}
	defer rows.Close()

	var tips []*models.Tip
	for rows.Next() {
		tip, err := scanTip(rows)
		if err != nil {
			return nil, err
		}
		tips = append(tips, tip)
	}
	return tips, rows.Err()
}

// GetByID retrieves a single tip
func (r *PostgresTipRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tip, error) {
	query := `
		SELECT id, fixture_date, player_a, player_b, surface, side, probability, odds, edge, stake_suggest, decision, generated_at
		FROM tips
		WHERE id = $1
	`

	tip, err := scanTip(r.db.GetPool().QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tip: %w", err)
	}
	return tip, nil
}

func scanTip(row pgx.Row) (*models.Tip, error) {
	tip := &models.Tip{}
	var surface, side string
	err := row.Scan(
		&tip.ID, &tip.FixtureDate, &tip.PlayerA, &tip.PlayerB, &surface,
		&side, &tip.Probability, &tip.Odds, &tip.Edge,
		&tip.StakeSuggest, &tip.Decision, &tip.GeneratedAt,
	)
	if err != nil {
		return nil, err
	}
	tip.Surface = models.Surface(surface)
	tip.Side = models.TipSide(side)
	return tip, nil
}
