package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"festregistry/internal/domain"
)

type statsFixtures struct {
	counters map[string]int64
	recent   int64
	events   []*domain.Event
	perEvent map[string]int64
	daily    []domain.DailyCount
	hourly   map[string]int64
}

type fixtureRegRepo struct {
	fx statsFixtures
}

func (r *fixtureRegRepo) Create(ctx context.Context, reg *domain.Registration) error {
	panic("not used")
}

func (r *fixtureRegRepo) GetByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	panic("not used")
}

func (r *fixtureRegRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return r.fx.recent, nil
}

func (r *fixtureRegRepo) CountByEvent(ctx context.Context) (map[string]int64, error) {
	return r.fx.perEvent, nil
}

func (r *fixtureRegRepo) DailyCounts(ctx context.Context, since time.Time) ([]domain.DailyCount, error) {
	return r.fx.daily, nil
}

func (r *fixtureRegRepo) HourlyCounts(ctx context.Context, since time.Time) (map[string]int64, error) {
	return r.fx.hourly, nil
}

type fixtureEventRepo struct {
	events []*domain.Event
}

func (r *fixtureEventRepo) ListActive(ctx context.Context) ([]*domain.Event, error) {
	return r.events, nil
}

type fixtureStatsRepo struct {
	counters map[string]int64
}

func (r *fixtureStatsRepo) Increment(ctx context.Context, name string, delta int64) (int64, error) {
	panic("not used")
}

func (r *fixtureStatsRepo) GetAll(ctx context.Context) (map[string]int64, error) {
	return r.counters, nil
}

func newFixtureStatsService(fx statsFixtures) domain.StatsService {
	return NewStatsService(
		&fixtureRegRepo{fx: fx},
		&fixtureEventRepo{events: fx.events},
		&fixtureStatsRepo{counters: fx.counters},
		nil,
		time.Second,
	)
}

func TestStatsService_FillPercentages(t *testing.T) {
	fx := statsFixtures{
		counters: map[string]int64{domain.StatTotalRegistrations: 35},
		recent:   5,
		events: []*domain.Event{
			{EventKey: "hack", Name: "Hackathon", EventType: "technical", PrizeAmount: 50000, MaxParticipants: 50, IsActive: true},
			{EventKey: "quiz", Name: "Tech Quiz", EventType: "technical", PrizeAmount: 10000, MaxParticipants: 40, IsActive: true},
			{EventKey: "open", Name: "Open Mic", EventType: "cultural", PrizeAmount: 5000, MaxParticipants: 0, IsActive: true},
		},
		perEvent: map[string]int64{"hack": 25, "quiz": 10, "open": 3},
		daily:    []domain.DailyCount{{Date: "2025-03-01", Count: 4}},
		hourly:   map[string]int64{},
	}
	svc := newFixtureStatsService(fx)

	snap, err := svc.ComputeStats(context.Background())
	require.NoError(t, err)

	require.Equal(t, 3, snap.TotalEvents)
	require.Equal(t, int64(65000), snap.TotalPrizePool)
	require.Equal(t, int64(5), snap.RecentRegistrations24h)
	require.Equal(t, int64(35), snap.SystemStats[domain.StatTotalRegistrations])

	byKey := map[string]domain.EventStats{}
	for _, es := range snap.Events {
		byKey[es.EventKey] = es
	}

	require.NotNil(t, byKey["hack"].FillPercentage)
	require.Equal(t, 50.0, *byKey["hack"].FillPercentage)
	require.NotNil(t, byKey["quiz"].FillPercentage)
	require.Equal(t, 25.0, *byKey["quiz"].FillPercentage)

	// Capacity 0 is "not computable", never a division fault, and excluded
	// from the average.
	require.Nil(t, byKey["open"].FillPercentage)
	require.Equal(t, 37.5, snap.AverageFillRate)
}

func TestStatsService_FillPercentageRounding(t *testing.T) {
	fx := statsFixtures{
		counters: map[string]int64{},
		events: []*domain.Event{
			{EventKey: "ctf", Name: "CTF", EventType: "technical", MaxParticipants: 3, IsActive: true},
		},
		perEvent: map[string]int64{"ctf": 1},
		daily:    []domain.DailyCount{},
		hourly:   map[string]int64{},
	}
	svc := newFixtureStatsService(fx)

	snap, err := svc.ComputeStats(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Events, 1)
	require.NotNil(t, snap.Events[0].FillPercentage)
	require.Equal(t, 33.3, *snap.Events[0].FillPercentage)
}

func TestStatsService_NoActiveEvents(t *testing.T) {
	fx := statsFixtures{
		counters: map[string]int64{},
		events:   []*domain.Event{},
		perEvent: map[string]int64{},
		daily:    []domain.DailyCount{},
		hourly:   map[string]int64{},
	}
	svc := newFixtureStatsService(fx)

	snap, err := svc.ComputeStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, snap.TotalEvents)
	require.Equal(t, int64(0), snap.TotalPrizePool)
	require.Equal(t, 0.0, snap.AverageFillRate)
}

func TestStatsService_CounterDefaults(t *testing.T) {
	fx := statsFixtures{
		counters: map[string]int64{},
		events:   []*domain.Event{},
		perEvent: map[string]int64{},
		daily:    []domain.DailyCount{},
		hourly:   map[string]int64{},
	}
	svc := newFixtureStatsService(fx)

	snap, err := svc.ComputeStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(0), snap.SystemStats[domain.StatTotalRegistrations])
}

func TestStatsService_HourlySeriesIsFixedSize(t *testing.T) {
	fx := statsFixtures{
		counters: map[string]int64{},
		events:   []*domain.Event{},
		perEvent: map[string]int64{},
		daily:    []domain.DailyCount{},
		hourly:   map[string]int64{},
	}
	svc := newFixtureStatsService(fx)

	snap, err := svc.ComputeStats(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.HourlyActivity, 24)
	for _, hc := range snap.HourlyActivity {
		require.Zero(t, hc.Count)
		require.NotEmpty(t, hc.Hour)
	}
}

func TestStatsService_HourlySeriesCarriesCounts(t *testing.T) {
	now := time.Date(2025, 3, 2, 10, 30, 0, 0, time.UTC)
	fx := statsFixtures{
		counters: map[string]int64{},
		events:   []*domain.Event{},
		perEvent: map[string]int64{},
		daily:    []domain.DailyCount{},
		hourly: map[string]int64{
			"2025-03-02 10": 4,
			"2025-03-02 09": 2,
		},
	}
	svc := newFixtureStatsService(fx).(*statsService)
	svc.now = func() time.Time { return now }

	snap, err := svc.ComputeStats(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.HourlyActivity, 24)
	last := snap.HourlyActivity[len(snap.HourlyActivity)-1]
	require.Equal(t, "2025-03-02 10:00", last.Hour)
	require.Equal(t, int64(4), last.Count)
	require.Equal(t, int64(2), snap.HourlyActivity[len(snap.HourlyActivity)-2].Count)
}
