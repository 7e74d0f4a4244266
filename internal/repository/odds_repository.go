package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/tennis-tips/internal/database"
	"github.com/yourusername/tennis-tips/internal/models"
)

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// InsertBatch bulk-inserts odds records, skipping duplicates
func (r *PostgresOddsRepository) InsertBatch(ctx context.Context, records []models.OddsRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var inserted int64
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			CREATE TEMP TABLE odds_records_staging
			(LIKE odds_records INCLUDING DEFAULTS)
			ON COMMIT DROP
		`)
		if err != nil {
			return fmt.Errorf("failed to create staging table: %w", err)
		}

		columns := []string{"odds_date", "player_a", "player_b", "odds_a", "odds_b", "bookmaker"}
		rows := make([][]interface{}, len(records))
		for i, o := range records {
			rows[i] = []interface{}{o.Date, o.PlayerA, o.PlayerB, o.OddsA, o.OddsB, o.Bookmaker}
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"odds_records_staging"}, columns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("failed to copy odds records: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO odds_records (odds_date, player_a, player_b, odds_a, odds_b, bookmaker)
			SELECT odds_date, player_a, player_b, odds_a, odds_b, bookmaker
			FROM odds_records_staging
			ON CONFLICT (odds_date, player_a, player_b, bookmaker) DO NOTHING
		`)
		if err != nil {
			return fmt.Errorf("failed to merge staged odds: %w", err)
		}
		inserted = tag.RowsAffected()
		return nil
	})
	return inserted, err
}

// GetByDateRange retrieves odds records in chronological order
func (r *PostgresOddsRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.OddsRecord, error) {
	query := `
		SELECT odds_date, player_a, player_b, odds_a, odds_b, bookmaker
		FROM odds_records
		WHERE odds_date >= $1 AND odds_date <= $2
		ORDER BY odds_date ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query odds records: %w", err)
	}
	defer rows.Close()

	var records []models.OddsRecord
	for rows.Next() {
		var o models.OddsRecord
		if err := rows.Scan(&o.Date, &o.PlayerA, &o.PlayerB, &o.OddsA, &o.OddsB, &o.Bookmaker); err != nil {
			return nil, fmt.Errorf("failed to scan odds record: %w", err)
		}
		records = append(records, o)
	}
	return records, rows.Err()
}

// Count returns the total number of stored odds records
func (r *PostgresOddsRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetPool().QueryRow(ctx, "SELECT COUNT(*) FROM odds_records").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count odds records: %w", err)
	}
	return count, nil
}
