package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/tennis-tips/internal/database"
	"github.com/yourusername/tennis-tips/internal/models"
)

// PostgresMatchResultRepository implements MatchResultRepository for PostgreSQL
type PostgresMatchResultRepository struct {
	db *database.DB
}

// NewPostgresMatchResultRepository creates a new match result repository
func NewPostgresMatchResultRepository(db *database.DB) MatchResultRepository {
	return &PostgresMatchResultRepository{db: db}
}

// InsertBatch bulk-inserts results through a staging table so reruns of
// the same archive years are idempotent
func (r *PostgresMatchResultRepository) InsertBatch(ctx context.Context, results []models.MatchResult) (int64, error) {
	if len(results) == 0 {
		return 0, nil
	}

	var inserted int64
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			CREATE TEMP TABLE match_results_staging
			(LIKE match_results INCLUDING DEFAULTS)
			ON COMMIT DROP
		`)
		if err != nil {
			return fmt.Errorf("failed to create staging table: %w", err)
		}

		columns := []string{"match_date", "tournament", "level", "round", "surface", "player_a", "player_b", "winner", "score"}
		rows := make([][]interface{}, len(results))
		for i, m := range results {
			rows[i] = []interface{}{
				m.Date, m.Tournament, m.Level, m.Round, string(m.Surface),
				m.PlayerA, m.PlayerB, int(m.Winner), m.Score,
			}
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"match_results_staging"}, columns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("failed to copy results: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO match_results (match_date, tournament, level, round, surface, player_a, player_b, winner, score)
			SELECT match_date, tournament, level, round, surface, player_a, player_b, winner, score
			FROM match_results_staging
			ON CONFLICT (match_date, player_a, player_b, round) DO NOTHING
		`)
		if err != nil {
			return fmt.Errorf("failed to merge staged results: %w", err)
		}
		inserted = tag.RowsAffected()
		return nil
	})
	return inserted, err
}

// GetByDateRange retrieves results in chronological order
func (r *PostgresMatchResultRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.MatchResult, error) {
	query := `
		SELECT match_date, tournament, level, round, surface, player_a, player_b, winner, score
		FROM match_results
		WHERE match_date >= $1 AND match_date <= $2
		ORDER BY match_date ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query match results: %w", err)
	}
	defer rows.Close()

	var results []models.MatchResult
	for rows.Next() {
		var m models.MatchResult
		var surface string
		var winner int
		if err := rows.Scan(&m.Date, &m.Tournament, &m.Level, &m.Round, &surface, &m.PlayerA, &m.PlayerB, &winner, &m.Score); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		m.Surface = models.Surface(surface)
		m.Winner = models.WinnerSide(winner)
		results = append(results, m)
	}
	return results, rows.Err()
}

// Count returns the total number of stored results
func (r *PostgresMatchResultRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetPool().QueryRow(ctx, "SELECT COUNT(*) FROM match_results").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count match results: %w", err)
	}
	return count, nil
}
