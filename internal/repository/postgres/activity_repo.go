package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"festregistry/internal/domain"
)

type activityRepository struct {
	DB *sql.DB
}

// NewActivityRepository creates the append-only audit trail store.
func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &activityRepository{DB: db}
}

func (r *activityRepository) Append(ctx context.Context, rec *domain.ActivityRecord) error {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("marshal activity payload: %w", err)
	}
	query := `
		INSERT INTO activity_log (registration_id, activity_type, activity_data, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		rec.RegistrationID, rec.ActivityType, payload, rec.IPAddress, rec.UserAgent, rec.CreatedAt).
		Scan(&rec.ID)
}
