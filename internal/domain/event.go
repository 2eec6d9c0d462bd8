package domain

import "context"

// Event is a catalog entry registrations reference by EventKey. The catalog
// is provisioned externally; this service never mutates it.
type Event struct {
	EventKey        string `json:"event_key"`
	Name            string `json:"event_name"`
	EventType       string `json:"event_type"`
	PrizeAmount     int64  `json:"prize_amount"`
	MaxParticipants int    `json:"max_participants"`
	IsActive        bool   `json:"is_active"`
}

// EventRepository defines read access to the event catalog.
type EventRepository interface {
	ListActive(ctx context.Context) ([]*Event, error)
}
