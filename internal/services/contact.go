package services

import (
	"context"
	"fmt"
	"time"

	"festregistry/internal/domain"
	"festregistry/internal/metrics"
)

type contactService struct {
	repo    domain.ContactRepository
	metrics *metrics.Metrics
	timeout time.Duration
}

// NewContactService creates the ContactService. Metrics may be nil.
func NewContactService(repo domain.ContactRepository, m *metrics.Metrics, timeout time.Duration) domain.ContactService {
	return &contactService{repo: repo, metrics: m, timeout: timeout}
}

func (s *contactService) Submit(ctx context.Context, msg *domain.ContactMessage) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg.CreatedAt = time.Now().UTC()
	if err := s.repo.Create(ctx, msg); err != nil {
		s.metrics.IncContactMessage("error")
		return 0, fmt.Errorf("store contact message: %w", err)
	}
	s.metrics.IncContactMessage("success")
	return msg.ID, nil
}
