package postgres

import (
	"context"
	"database/sql"

	"festregistry/internal/domain"
)

type contactRepository struct {
	DB *sql.DB
}

// NewContactRepository creates a ContactRepository backed by the given pool.
func NewContactRepository(db *sql.DB) domain.ContactRepository {
	return &contactRepository{DB: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt).
		Scan(&msg.ID)
}
