package domain

import (
	"context"
	"time"
)

// Activity types written to the audit trail.
const (
	ActivityRegistrationCompleted = "registration_completed"
	ActivitySystemStarted         = "system_started"
)

// ActivityRecord is one append-only audit entry. Records are never updated
// or deleted.
type ActivityRecord struct {
	ID             int64          `json:"id"`
	RegistrationID *int64         `json:"registration_id,omitempty"`
	ActivityType   string         `json:"activity_type"`
	Payload        map[string]any `json:"activity_data"`
	IPAddress      string         `json:"ip_address"`
	UserAgent      string         `json:"user_agent"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ActivityRepository appends audit records.
type ActivityRepository interface {
	Append(ctx context.Context, rec *ActivityRecord) error
}

// ActivityLogger writes the audit trail. Strictly best-effort: failures are
// recorded to the operational log and never returned, so audit logging can
// never fail a user-facing operation.
type ActivityLogger interface {
	Log(ctx context.Context, registrationID *int64, activityType string, payload map[string]any, originAddr, originAgent string)
}
