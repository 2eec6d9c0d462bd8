package domain

import (
	"context"
	"time"
)

// ContactMessage is a "contact us" submission. Plain append, no uniqueness.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactRepository defines storage operations for contact messages.
type ContactRepository interface {
	Create(ctx context.Context, msg *ContactMessage) error
}

// ContactService stores inbound contact messages.
type ContactService interface {
	Submit(ctx context.Context, msg *ContactMessage) (int64, error)
}
