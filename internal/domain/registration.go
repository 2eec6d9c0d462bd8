package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors returned by repositories and services.
var (
	// ErrDuplicateEmail signals that a registration already exists for the
	// email. The unique constraint on registrations.email is the
	// authoritative source of this error; the service-level pre-check maps
	// to the same value.
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("not found")
)

// SyncStatusSynced is the initial sync status of an accepted registration.
const SyncStatusSynced = "synced"

// Registration is one accepted submission. PublicID is assigned exactly once,
// inside the same transaction as the insert, and never changes afterwards.
type Registration struct {
	ID         int64     `json:"id"`
	PublicID   string    `json:"public_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	College    string    `json:"college"`
	EventKey   string    `json:"event"`
	SyncStatus string    `json:"sync_status"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewRegistration returns a Registration ready for insertion. ID and PublicID
// are set by the repository on create.
func NewRegistration(name, email, phone, college, eventKey string, createdAt time.Time) *Registration {
	return &Registration{
		Name:       name,
		Email:      email,
		Phone:      phone,
		College:    college,
		EventKey:   eventKey,
		SyncStatus: SyncStatusSynced,
		CreatedAt:  createdAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create inserts the registration and binds its public identifier in a
	// single transaction. Returns ErrDuplicateEmail on a unique violation.
	Create(ctx context.Context, reg *Registration) error
	// GetByEmail returns ErrNotFound when no registration exists for email.
	GetByEmail(ctx context.Context, email string) (*Registration, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByEvent(ctx context.Context) (map[string]int64, error)
	DailyCounts(ctx context.Context, since time.Time) ([]DailyCount, error)
	// HourlyCounts returns per-hour registration counts since the given
	// time, keyed by the UTC hour formatted as "2006-01-02 15".
	HourlyCounts(ctx context.Context, since time.Time) (map[string]int64, error)
}

// IdentifierGenerator mints the public-facing identifier for a freshly
// inserted registration. It is called exactly once per registration, inside
// the insert transaction.
type IdentifierGenerator interface {
	Generate(internalID int64) string
}

// RegistrationInput is a validated, sanitized submission plus its origin.
type RegistrationInput struct {
	Name        string
	Email       string
	Phone       string
	College     string
	EventKey    string
	OriginAddr  string
	OriginAgent string
}

// RegistrationResult is the success payload of a registration.
type RegistrationResult struct {
	UserID            int64  `json:"user_id"`
	PublicID          string `json:"public_id"`
	RegistrationCount int64  `json:"registration_count"`
	EventRegistered   string `json:"event_registered"`
	SyncStatus        string `json:"sync_status"`
}

// RegistrationService orchestrates validation-passed submissions:
// uniqueness enforcement, persistence, identifier issuance, and the
// post-commit best-effort side effects.
type RegistrationService interface {
	Register(ctx context.Context, input RegistrationInput) (*RegistrationResult, error)
}
