package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"festregistry/internal/domain"
	"festregistry/internal/metrics"
)

type registrationService struct {
	repo     domain.RegistrationRepository
	stats    domain.SystemStatsRepository
	activity domain.ActivityLogger
	email    domain.EmailService
	metrics  *metrics.Metrics
	logger   *slog.Logger
	timeout  time.Duration
}

// NewRegistrationService creates the RegistrationService. The activity
// logger, email service, and metrics are best-effort collaborators; any of
// them may be nil.
func NewRegistrationService(
	repo domain.RegistrationRepository,
	stats domain.SystemStatsRepository,
	activity domain.ActivityLogger,
	email domain.EmailService,
	m *metrics.Metrics,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		repo:     repo,
		stats:    stats,
		activity: activity,
		email:    email,
		metrics:  m,
		logger:   logger,
		timeout:  timeout,
	}
}

func (s *registrationService) Register(ctx context.Context, input domain.RegistrationInput) (*domain.RegistrationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Advisory pre-check. Two concurrent submissions can both miss here, so
	// the unique constraint enforced inside Create remains the authoritative
	// duplicate guard.
	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		s.metrics.IncRegistration("duplicate")
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.metrics.IncRegistration("error")
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	reg := domain.NewRegistration(input.Name, input.Email, input.Phone, input.College, input.EventKey, time.Now().UTC())
	if err := s.repo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			s.metrics.IncRegistration("duplicate")
			return nil, domain.ErrDuplicateEmail
		}
		s.metrics.IncRegistration("error")
		return nil, fmt.Errorf("create registration: %w", err)
	}

	// The registration is committed. Everything below is best-effort and may
	// only be logged, never surfaced: the registrant already succeeded.
	count, err := s.stats.Increment(ctx, domain.StatTotalRegistrations, 1)
	if err != nil {
		s.logger.ErrorContext(ctx, "registration counter increment failed",
			"registration_id", reg.ID, "err", err)
		count = 0
	}

	if s.activity != nil {
		regID := reg.ID
		s.activity.Log(ctx, &regID, domain.ActivityRegistrationCompleted, map[string]any{
			"event":   reg.EventKey,
			"college": reg.College,
		}, input.OriginAddr, input.OriginAgent)
	}

	if s.email != nil {
		data := &domain.WelcomeEmailData{
			Name:     reg.Name,
			Email:    reg.Email,
			PublicID: reg.PublicID,
			EventKey: reg.EventKey,
		}
		if err := s.email.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed",
				"registration_id", reg.ID, "err", err)
		}
	}

	s.metrics.IncRegistration("success")
	return &domain.RegistrationResult{
		UserID:            reg.ID,
		PublicID:          reg.PublicID,
		RegistrationCount: count,
		EventRegistered:   reg.EventKey,
		SyncStatus:        reg.SyncStatus,
	}, nil
}
