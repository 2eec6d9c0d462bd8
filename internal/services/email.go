package services

import (
	"context"
	"fmt"

	"festregistry/internal/domain"
)

type emailService struct {
	mailer domain.Mailer
}

// NewEmailService returns an EmailService that sends through the given Mailer.
func NewEmailService(mailer domain.Mailer) domain.EmailService {
	return &emailService{mailer: mailer}
}

// SendWelcomeMessage sends the post-registration confirmation mail.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome message data is nil")
	}
	subject := "Registration confirmed"
	html := fmt.Sprintf(
		`<html><body>
<h2>Welcome, %s!</h2>
<p>Your registration has been confirmed.</p>
<p><strong>Registration ID:</strong> %s<br>
<strong>Event:</strong> %s</p>
<p>Keep your registration ID safe; you will need it for event access.</p>
</body></html>`,
		data.Name, data.PublicID, data.EventKey)
	text := fmt.Sprintf(
		"Welcome, %s!\n\nYour registration has been confirmed.\nRegistration ID: %s\nEvent: %s\n\nKeep your registration ID safe; you will need it for event access.\n",
		data.Name, data.PublicID, data.EventKey)

	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
