package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"festregistry/internal/domain"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type registrationRepository struct {
	DB    *sql.DB
	IDGen domain.IdentifierGenerator
}

// NewRegistrationRepository creates a RegistrationRepository backed by the
// given pool. The identifier generator is invoked inside the insert
// transaction so no committed row is ever visible without a public id.
func NewRegistrationRepository(db *sql.DB, idgen domain.IdentifierGenerator) domain.RegistrationRepository {
	return &registrationRepository{DB: db, IDGen: idgen}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insert := `
		INSERT INTO registrations (name, email, phone, college, event_key, sync_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, insert,
		reg.Name, reg.Email, reg.Phone, reg.College, reg.EventKey, reg.SyncStatus, reg.CreatedAt).
		Scan(&reg.ID)
	if err != nil {
		return translateUnique(err)
	}

	reg.PublicID = r.IDGen.Generate(reg.ID)
	bind := `UPDATE registrations SET public_id = $1 WHERE id = $2`
	if _, err := tx.ExecContext(ctx, bind, reg.PublicID, reg.ID); err != nil {
		return translateUnique(err)
	}

	return tx.Commit()
}

func (r *registrationRepository) GetByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	query := `
		SELECT id, public_id, name, email, phone, college, event_key, sync_status, created_at
		FROM registrations
		WHERE email = $1
	`
	reg := &domain.Registration{}
	var publicID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&reg.ID, &publicID, &reg.Name, &reg.Email, &reg.Phone, &reg.College,
		&reg.EventKey, &reg.SyncStatus, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	reg.PublicID = publicID.String
	return reg, nil
}

func (r *registrationRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM registrations WHERE created_at >= $1`
	var count int64
	if err := r.DB.QueryRowContext(ctx, query, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *registrationRepository) CountByEvent(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT event_key, COUNT(*)
		FROM registrations
		GROUP BY event_key
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *registrationRepository) DailyCounts(ctx context.Context, since time.Time) ([]domain.DailyCount, error) {
	query := `
		SELECT to_char(date_trunc('day', created_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD') AS day, COUNT(*)
		FROM registrations
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.DailyCount
	for rows.Next() {
		var dc domain.DailyCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []domain.DailyCount{}
	}
	return counts, nil
}

func (r *registrationRepository) HourlyCounts(ctx context.Context, since time.Time) (map[string]int64, error) {
	query := `
		SELECT to_char(date_trunc('hour', created_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD HH24') AS hour, COUNT(*)
		FROM registrations
		WHERE created_at >= $1
		GROUP BY hour
	`
	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var hour string
		var count int64
		if err := rows.Scan(&hour, &count); err != nil {
			return nil, err
		}
		counts[hour] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// translateUnique maps a Postgres unique violation to ErrDuplicateEmail.
// The constraint is the authoritative duplicate check; callers must not treat
// this as a generic infrastructure failure.
func translateUnique(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrDuplicateEmail
	}
	return err
}
