package services

import (
	"context"
	"errors"
	"time"

	"github.com/daylog/daylog/server/internal/aggregate"
	"github.com/daylog/daylog/server/internal/model"
	"github.com/daylog/daylog/server/internal/store"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 365
)

// AnalyticsService derives read-time views: daily summaries, category
// breakdowns, streaks, rolling overviews and insights. Nothing here is
// persisted; every answer is recomputed from the records.
type AnalyticsService struct {
	store store.Store
	loc   *time.Location
	th    aggregate.SummaryThresholds
	now   func() time.Time
}

func NewAnalyticsService(s store.Store, loc *time.Location) *AnalyticsService {
	return &AnalyticsService{
		store: s,
		loc:   loc,
		th:    aggregate.DefaultThresholds,
		now:   time.Now,
	}
}

// WithThresholds overrides the narrative cutoffs.
func (s *AnalyticsService) WithThresholds(th aggregate.SummaryThresholds) *AnalyticsService {
	s.th = th
	return s
}

// WithNow pins the clock, for tests.
func (s *AnalyticsService) WithNow(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// DailySummary derives the view of one calendar day. A missing plan is not
// an error: the summary reports actuals with an explicit no-plan state.
func (s *AnalyticsService) DailySummary(ctx context.Context, userID, date string) (aggregate.DailySummary, error) {
	if err := validDate(date); err != nil {
		return aggregate.DailySummary{}, err
	}

	plan, err := s.store.Plans().GetByDate(ctx, userID, date)
	if errors.Is(err, model.ErrNotFound) {
		plan = nil
	} else if err != nil {
		return aggregate.DailySummary{}, err
	}

	goals, err := s.store.Goals().State(ctx, userID, date)
	if err != nil {
		return aggregate.DailySummary{}, err
	}

	r, err := s.dayRange(date)
	if err != nil {
		return aggregate.DailySummary{}, err
	}
	activities, interruptions, err := s.fetch(ctx, userID, r)
	if err != nil {
		return aggregate.DailySummary{}, err
	}

	return aggregate.DeriveDailySummary(plan, activities, interruptions, goals, date, s.loc, s.th), nil
}

// Breakdown returns the per-category totals over the trailing window.
func (s *AnalyticsService) Breakdown(ctx context.Context, userID string, days int) ([]aggregate.BreakdownEntry, error) {
	w, r := s.window(days)
	activities, _, err := s.fetch(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	return aggregate.Breakdown(activities, w, s.loc), nil
}

// Streaks reports consecutive-day activity runs anchored on today.
func (s *AnalyticsService) Streaks(ctx context.Context, userID string) (aggregate.Streaks, error) {
	_, r := s.window(maxWindowDays)
	activities, _, err := s.fetch(ctx, userID, r)
	if err != nil {
		return aggregate.Streaks{}, err
	}
	return aggregate.DeriveStreaks(activities, s.now(), s.loc), nil
}

// Summary returns the rolling-window overview.
func (s *AnalyticsService) Summary(ctx context.Context, userID string, days int) (aggregate.AnalyticsSummary, error) {
	w, r := s.window(days)
	activities, interruptions, err := s.fetch(ctx, userID, r)
	if err != nil {
		return aggregate.AnalyticsSummary{}, err
	}
	return aggregate.DeriveAnalyticsSummary(activities, interruptions, w, s.now(), s.loc), nil
}

// Insights derives behavioral patterns over the trailing window.
func (s *AnalyticsService) Insights(ctx context.Context, userID string, days int) (aggregate.Insights, error) {
	_, r := s.window(days)
	activities, interruptions, err := s.fetch(ctx, userID, r)
	if err != nil {
		return aggregate.Insights{}, err
	}
	return aggregate.DeriveInsights(activities, interruptions, s.loc), nil
}

// window clamps days to [1, maxWindowDays] and returns both the day-key
// window and the matching fetch range.
func (s *AnalyticsService) window(days int) (aggregate.Window, model.ListRange) {
	if days < 1 {
		days = defaultWindowDays
	}
	if days > maxWindowDays {
		days = maxWindowDays
	}
	w := aggregate.LastNDays(s.now(), days, s.loc)
	start, _ := aggregate.ParseDayKey(w.Start, s.loc)
	return w, model.ListRange{Start: start}
}

// dayRange covers the calendar day plus a margin on both sides so blocks
// straddling midnight are fetched; the day-key filter in the aggregation
// decides what actually counts.
func (s *AnalyticsService) dayRange(date string) (model.ListRange, error) {
	start, err := aggregate.ParseDayKey(date, s.loc)
	if err != nil {
		return model.ListRange{}, err
	}
	return model.ListRange{
		Start: start.Add(-time.Hour),
		End:   start.AddDate(0, 0, 1).Add(time.Hour),
	}, nil
}

func (s *AnalyticsService) fetch(ctx context.Context, userID string, r model.ListRange) ([]model.Activity, []model.Interruption, error) {
	acts, err := s.store.Activities().List(ctx, userID, r)
	if err != nil {
		return nil, nil, err
	}
	ints, err := s.store.Interruptions().List(ctx, userID, r)
	if err != nil {
		return nil, nil, err
	}

	activities := make([]model.Activity, len(acts))
	for i, a := range acts {
		activities[i] = *a
	}
	interruptions := make([]model.Interruption, len(ints))
	for i, it := range ints {
		interruptions[i] = *it
	}
	return activities, interruptions, nil
}
