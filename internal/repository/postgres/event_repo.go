package postgres

import (
	"context"
	"database/sql"

	"festregistry/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository creates a read-only EventRepository over the externally
// curated event catalog.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT event_key, name, event_type, prize_amount, max_participants, is_active
		FROM events
		WHERE is_active
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		ev := &domain.Event{}
		if err := rows.Scan(&ev.EventKey, &ev.Name, &ev.EventType, &ev.PrizeAmount, &ev.MaxParticipants, &ev.IsActive); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
