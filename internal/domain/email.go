package domain

import "context"

// Mailer sends an email with optional HTML and text bodies.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// WelcomeEmailData carries the fields of the post-registration welcome mail.
type WelcomeEmailData struct {
	Name     string
	Email    string
	PublicID string
	EventKey string
}

// EmailService composes and sends transactional mail. Callers treat it as
// best-effort; a failed send never affects a committed registration.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeEmailData) error
}
