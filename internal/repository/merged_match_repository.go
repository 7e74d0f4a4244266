package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/yourusername/tennis-tips/internal/database"
	"github.com/yourusername/tennis-tips/internal/models"
)

// PostgresMergedMatchRepository implements MergedMatchRepository for PostgreSQL
type PostgresMergedMatchRepository struct {
	db *database.DB
}

// NewPostgresMergedMatchRepository creates a new merged match repository
func NewPostgresMergedMatchRepository(db *database.DB) MergedMatchRepository {
	return &PostgresMergedMatchRepository{db: db}
}

// ReplaceAll swaps the merged dataset atomically. The merge is a full
// recomputation from raw records, so a partial replace is never useful.
func (r *PostgresMergedMatchRepository) ReplaceAll(ctx context.Context, merged []models.MergedMatch) (int64, error) {
	var inserted int64
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "TRUNCATE merged_matches"); err != nil {
			return fmt.Errorf("failed to truncate merged matches: %w", err)
		}
		if len(merged) == 0 {
			return nil
		}

		columns := []string{"match_date", "tournament", "level", "round", "surface", "player_a", "player_b", "winner", "score", "odds_a", "odds_b", "confidence"}
		rows := make([][]interface{}, len(merged))
		for i, m := range merged {
			rows[i] = []interface{}{
				m.Result.Date, m.Result.Tournament, m.Result.Level, m.Result.Round,
				string(m.Result.Surface), m.Result.PlayerA, m.Result.PlayerB,
				int(m.Result.Winner), m.Result.Score,
				m.OddsA, m.OddsB, m.Confidence,
			}
		}
		count, err := tx.CopyFrom(ctx, pgx.Identifier{"merged_matches"}, columns, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("failed to copy merged matches: %w", err)
		}
		inserted = count
		return nil
	})
	return inserted, err
}

// GetAll retrieves the merged dataset in chronological order
func (r *PostgresMergedMatchRepository) GetAll(ctx context.Context) ([]models.MergedMatch, error) {
	query := `
		SELECT match_date, tournament, level, round, surface, player_a, player_b, winner, score, odds_a, odds_b, confidence
		FROM merged_matches
		ORDER BY match_date ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query merged matches: %w", err)
	}
	defer rows.Close()

	var merged []models.MergedMatch
	for rows.Next() {
		var m models.MergedMatch
		var surface string
		var winner int
		var oddsA, oddsB *decimal.Decimal
		err := rows.Scan(
			&m.Result.Date, &m.Result.Tournament, &m.Result.Level, &m.Result.Round,
			&surface, &m.Result.PlayerA, &m.Result.PlayerB, &winner, &m.Result.Score,
			&oddsA, &oddsB, &m.Confidence,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan merged match: %w", err)
		}
		m.Result.Surface = models.Surface(surface)
		m.Result.Winner = models.WinnerSide(winner)
		m.OddsA = oddsA
		m.OddsB = oddsB
		merged = append(merged, m)
	}
	return merged, rows.Err()
}
