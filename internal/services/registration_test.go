package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"festregistry/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// stubRegRepo enforces email uniqueness under a mutex, mirroring the
// database constraint, so concurrent Create calls behave like the real
// store. With precheck disabled GetByEmail never reports a hit, which
// forces the insert path to be the deciding guard.
type stubRegRepo struct {
	mu        sync.Mutex
	emails    map[string]*domain.Registration
	precheck  bool
	createErr error
	getErr    error
	nextID    int64
	creates   int
}

func newStubRegRepo(precheck bool) *stubRegRepo {
	return &stubRegRepo{emails: map[string]*domain.Registration{}, precheck: precheck}
}

func (r *stubRegRepo) Create(ctx context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.emails[reg.Email]; exists {
		return domain.ErrDuplicateEmail
	}
	r.nextID++
	reg.ID = r.nextID
	reg.PublicID = fmt.Sprintf("PUB-%d", reg.ID)
	r.emails[reg.Email] = reg
	return nil
}

func (r *stubRegRepo) GetByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.precheck {
		r.mu.Lock()
		defer r.mu.Unlock()
		if reg, ok := r.emails[email]; ok {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubRegRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return 0, nil
}

func (r *stubRegRepo) CountByEvent(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (r *stubRegRepo) DailyCounts(ctx context.Context, since time.Time) ([]domain.DailyCount, error) {
	return []domain.DailyCount{}, nil
}

func (r *stubRegRepo) HourlyCounts(ctx context.Context, since time.Time) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type stubStatsRepo struct {
	mu     sync.Mutex
	values map[string]int64
	incErr error
}

func newStubStatsRepo() *stubStatsRepo {
	return &stubStatsRepo{values: map[string]int64{}}
}

func (r *stubStatsRepo) Increment(ctx context.Context, name string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incErr != nil {
		return 0, r.incErr
	}
	r.values[name] += delta
	return r.values[name], nil
}

func (r *stubStatsRepo) GetAll(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int64, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

type recordingActivityLogger struct {
	mu    sync.Mutex
	calls []string
}

func (l *recordingActivityLogger) Log(ctx context.Context, registrationID *int64, activityType string, payload map[string]any, originAddr, originAgent string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, activityType)
}

type stubEmailService struct {
	mu      sync.Mutex
	sent    int
	sendErr error
}

func (s *stubEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeEmailData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent++
	return nil
}

func validInput() domain.RegistrationInput {
	return domain.RegistrationInput{
		Name:        "Al",
		Email:       "al@x.com",
		Phone:       "9876543210",
		College:     "MIT",
		EventKey:    "hack",
		OriginAddr:  "203.0.113.9",
		OriginAgent: "test-agent",
	}
}

func TestRegistrationService_Register_Success(t *testing.T) {
	repo := newStubRegRepo(true)
	stats := newStubStatsRepo()
	activity := &recordingActivityLogger{}
	email := &stubEmailService{}
	svc := NewRegistrationService(repo, stats, activity, email, nil, testLogger(), time.Second)

	result, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, int64(1), result.UserID)
	require.Equal(t, "PUB-1", result.PublicID)
	require.Equal(t, int64(1), result.RegistrationCount)
	require.Equal(t, "hack", result.EventRegistered)
	require.Equal(t, domain.SyncStatusSynced, result.SyncStatus)
	require.Equal(t, []string{domain.ActivityRegistrationCompleted}, activity.calls)
	require.Equal(t, 1, email.sent)
}

func TestRegistrationService_Register_SequentialDuplicate(t *testing.T) {
	repo := newStubRegRepo(true)
	stats := newStubStatsRepo()
	svc := NewRegistrationService(repo, stats, &recordingActivityLogger{}, &stubEmailService{}, nil, testLogger(), time.Second)

	input := validInput()
	input.Email = "dup@x.com"
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	// Second call must not create a row or move the counter.
	require.Len(t, repo.emails, 1)
	require.Equal(t, int64(1), stats.values[domain.StatTotalRegistrations])
}

func TestRegistrationService_Register_InsertConflictIsDuplicate(t *testing.T) {
	// Pre-check disabled: both the existence check and the insert race are
	// decided by the uniqueness guard inside Create.
	repo := newStubRegRepo(false)
	stats := newStubStatsRepo()
	svc := NewRegistrationService(repo, stats, &recordingActivityLogger{}, &stubEmailService{}, nil, testLogger(), time.Second)

	input := validInput()
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	require.Equal(t, int64(1), stats.values[domain.StatTotalRegistrations])
}

func TestRegistrationService_Register_ConcurrentDuplicate(t *testing.T) {
	repo := newStubRegRepo(false)
	stats := newStubStatsRepo()
	svc := NewRegistrationService(repo, stats, &recordingActivityLogger{}, &stubEmailService{}, nil, testLogger(), time.Second)

	input := validInput()
	input.Email = "race@x.com"

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), input)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrDuplicateEmail):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, 1, duplicates)
	require.Equal(t, int64(1), stats.values[domain.StatTotalRegistrations])
}

func TestRegistrationService_Register_CounterFailureStillSucceeds(t *testing.T) {
	repo := newStubRegRepo(true)
	stats := newStubStatsRepo()
	stats.incErr = errors.New("stats store down")
	svc := NewRegistrationService(repo, stats, &recordingActivityLogger{}, &stubEmailService{}, nil, testLogger(), time.Second)

	result, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, int64(0), result.RegistrationCount)
	require.NotEmpty(t, result.PublicID)
}

func TestRegistrationService_Register_EmailFailureStillSucceeds(t *testing.T) {
	repo := newStubRegRepo(true)
	email := &stubEmailService{sendErr: errors.New("smtp down")}
	svc := NewRegistrationService(repo, newStubStatsRepo(), &recordingActivityLogger{}, email, nil, testLogger(), time.Second)

	result, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	require.NotEmpty(t, result.PublicID)
}

func TestRegistrationService_Register_InfraErrorIsGeneric(t *testing.T) {
	repo := newStubRegRepo(true)
	repo.createErr = errors.New("connection reset")
	svc := NewRegistrationService(repo, newStubStatsRepo(), &recordingActivityLogger{}, &stubEmailService{}, nil, testLogger(), time.Second)

	_, err := svc.Register(context.Background(), validInput())
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestRegistrationService_Register_PrecheckErrorPropagates(t *testing.T) {
	repo := newStubRegRepo(true)
	repo.getErr = errors.New("connection reset")
	svc := NewRegistrationService(repo, newStubStatsRepo(), &recordingActivityLogger{}, &stubEmailService{}, nil, testLogger(), time.Second)

	_, err := svc.Register(context.Background(), validInput())
	require.Error(t, err)
	require.Equal(t, 0, repo.creates)
}
