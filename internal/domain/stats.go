package domain

import (
	"context"
	"time"
)

// StatTotalRegistrations is the counter incremented once per accepted
// registration.
const StatTotalRegistrations = "total_registrations"

// StatDefaults are the fallback values served for counters that have no row
// in system_stats yet.
var StatDefaults = map[string]int64{
	StatTotalRegistrations: 0,
}

// SystemStatsRepository maintains the named counters. Increment must be a
// single atomic statement on the datastore, never read-modify-write.
type SystemStatsRepository interface {
	// Increment atomically adds delta to the named counter, creating it if
	// absent, and returns the new value.
	Increment(ctx context.Context, name string, delta int64) (int64, error)
	GetAll(ctx context.Context) (map[string]int64, error)
}

// EventStats is the per-event slice of a stats snapshot. FillPercentage is
// nil when the event has no capacity to fill against.
type EventStats struct {
	EventKey        string   `json:"event_key"`
	Name            string   `json:"event_name"`
	EventType       string   `json:"event_type"`
	PrizeAmount     int64    `json:"prize_amount"`
	MaxParticipants int      `json:"max_participants"`
	Registrations   int64    `json:"registrations"`
	FillPercentage  *float64 `json:"fill_percentage"`
}

// DailyCount is one day of registration activity.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// HourlyCount is one hour of registration activity.
type HourlyCount struct {
	Hour  string `json:"hour"`
	Count int64  `json:"count"`
}

// StatsSnapshot is a point-in-time view of the system for the dashboard.
// The underlying queries are independent reads; a small inconsistency window
// between them is accepted.
type StatsSnapshot struct {
	SystemStats            map[string]int64 `json:"system_stats"`
	RecentRegistrations24h int64            `json:"recent_registrations_24h"`
	TotalEvents            int              `json:"total_events"`
	TotalPrizePool         int64            `json:"total_prize_pool"`
	AverageFillRate        float64          `json:"average_fill_rate"`
	Events                 []EventStats     `json:"events"`
	ActivityChart          []DailyCount     `json:"activity_chart"`
	HourlyActivity         []HourlyCount    `json:"hourly_activity"`
	LastUpdated            time.Time        `json:"last_updated"`
}

// StatsService computes dashboard statistics. Read-only, side-effect free.
type StatsService interface {
	ComputeStats(ctx context.Context) (*StatsSnapshot, error)
}
