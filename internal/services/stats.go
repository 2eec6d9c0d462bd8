package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"festregistry/internal/domain"
	"festregistry/internal/metrics"
)

const (
	recentWindow    = 24 * time.Hour
	activityDays    = 7
	hourlySeriesLen = 24
)

type statsService struct {
	regRepo   domain.RegistrationRepository
	eventRepo domain.EventRepository
	statsRepo domain.SystemStatsRepository
	metrics   *metrics.Metrics
	timeout   time.Duration
	now       func() time.Time
}

// NewStatsService creates the StatsService. The snapshot is composed from
// independent read queries; no cross-query consistency is guaranteed.
// Metrics may be nil.
func NewStatsService(
	regRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	statsRepo domain.SystemStatsRepository,
	m *metrics.Metrics,
	timeout time.Duration,
) domain.StatsService {
	return &statsService{
		regRepo:   regRepo,
		eventRepo: eventRepo,
		statsRepo: statsRepo,
		metrics:   m,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (s *statsService) ComputeStats(ctx context.Context) (*domain.StatsSnapshot, error) {
	snapshot, err := s.computeStats(ctx)
	if err != nil {
		s.metrics.IncStatsRequest("error")
		return nil, err
	}
	s.metrics.IncStatsRequest("success")
	return snapshot, nil
}

func (s *statsService) computeStats(ctx context.Context) (*domain.StatsSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := s.now().UTC()

	counters, err := s.statsRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read system stats: %w", err)
	}
	for name, fallback := range domain.StatDefaults {
		if _, ok := counters[name]; !ok {
			counters[name] = fallback
		}
	}

	recent, err := s.regRepo.CountSince(ctx, now.Add(-recentWindow))
	if err != nil {
		return nil, fmt.Errorf("count recent registrations: %w", err)
	}

	events, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active events: %w", err)
	}
	perEvent, err := s.regRepo.CountByEvent(ctx)
	if err != nil {
		return nil, fmt.Errorf("count registrations per event: %w", err)
	}

	eventStats := make([]domain.EventStats, 0, len(events))
	var prizePool int64
	var fillSum float64
	var fillCount int
	for _, ev := range events {
		regs := perEvent[ev.EventKey]
		fill := fillPercentage(regs, ev.MaxParticipants)
		if fill != nil {
			fillSum += *fill
			fillCount++
		}
		prizePool += ev.PrizeAmount
		eventStats = append(eventStats, domain.EventStats{
			EventKey:        ev.EventKey,
			Name:            ev.Name,
			EventType:       ev.EventType,
			PrizeAmount:     ev.PrizeAmount,
			MaxParticipants: ev.MaxParticipants,
			Registrations:   regs,
			FillPercentage:  fill,
		})
	}

	averageFill := 0.0
	if fillCount > 0 {
		averageFill = round1(fillSum / float64(fillCount))
	}

	daily, err := s.regRepo.DailyCounts(ctx, now.AddDate(0, 0, -activityDays))
	if err != nil {
		return nil, fmt.Errorf("daily registration counts: %w", err)
	}

	hourly, err := s.hourlySeries(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("hourly registration counts: %w", err)
	}

	return &domain.StatsSnapshot{
		SystemStats:            counters,
		RecentRegistrations24h: recent,
		TotalEvents:            len(events),
		TotalPrizePool:         prizePool,
		AverageFillRate:        averageFill,
		Events:                 eventStats,
		ActivityChart:          daily,
		HourlyActivity:         hourly,
		LastUpdated:            now,
	}, nil
}

// hourlySeries builds the fixed-size dashboard time series: one bucket per
// hour over the trailing day, zero-filled where no registrations happened.
func (s *statsService) hourlySeries(ctx context.Context, now time.Time) ([]domain.HourlyCount, error) {
	start := now.Truncate(time.Hour).Add(-(hourlySeriesLen - 1) * time.Hour)
	counts, err := s.regRepo.HourlyCounts(ctx, start)
	if err != nil {
		return nil, err
	}

	series := make([]domain.HourlyCount, 0, hourlySeriesLen)
	for i := 0; i < hourlySeriesLen; i++ {
		h := start.Add(time.Duration(i) * time.Hour)
		series = append(series, domain.HourlyCount{
			Hour:  h.Format("2006-01-02 15:00"),
			Count: counts[h.Format("2006-01-02 15")],
		})
	}
	return series, nil
}

// fillPercentage returns round(regs/capacity*100, 1), or nil when the event
// has no capacity to fill against.
func fillPercentage(regs int64, capacity int) *float64 {
	if capacity <= 0 {
		return nil
	}
	v := round1(float64(regs) / float64(capacity) * 100)
	return &v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
