package postgres

import (
	"context"
	"database/sql"

	"festregistry/internal/domain"
)

type systemStatsRepository struct {
	DB *sql.DB
}

// NewSystemStatsRepository creates a SystemStatsRepository backed by the
// given pool.
func NewSystemStatsRepository(db *sql.DB) domain.SystemStatsRepository {
	return &systemStatsRepository{DB: db}
}

// Increment adds delta to the named counter in a single atomic statement and
// returns the resulting value. The counter is never read into application
// memory and written back.
func (r *systemStatsRepository) Increment(ctx context.Context, name string, delta int64) (int64, error) {
	query := `
		INSERT INTO system_stats (stat_name, stat_value)
		VALUES ($1, $2)
		ON CONFLICT (stat_name) DO UPDATE SET stat_value = system_stats.stat_value + EXCLUDED.stat_value
		RETURNING stat_value
	`
	var value int64
	if err := r.DB.QueryRowContext(ctx, query, name, delta).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

func (r *systemStatsRepository) GetAll(ctx context.Context) (map[string]int64, error) {
	query := `SELECT stat_name, stat_value FROM system_stats`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]int64)
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		stats[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
