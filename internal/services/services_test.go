package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daylog/daylog/server/internal/aggregate"
	"github.com/daylog/daylog/server/internal/model"
	"github.com/daylog/daylog/server/internal/store"
)

func ptr[T any](v T) *T { return &v }

// --- Fakes ---

type fakeStore struct {
	activities    []*model.Activity
	interruptions []*model.Interruption
	plans         map[string]*model.DailyPlan   // keyed by date
	reviews       map[string]*model.DailyReview // keyed by date
	goals         map[string]model.GoalState    // keyed by date
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		plans:   map[string]*model.DailyPlan{},
		reviews: map[string]*model.DailyReview{},
		goals:   map[string]model.GoalState{},
	}
}

func (f *fakeStore) Activities() store.Activities       { return &fakeActivities{f} }
func (f *fakeStore) Interruptions() store.Interruptions { return &fakeInterruptions{f} }
func (f *fakeStore) Plans() store.Plans                 { return &fakePlans{f} }
func (f *fakeStore) Reviews() store.Reviews             { return &fakeReviews{f} }
func (f *fakeStore) Goals() store.Goals                 { return &fakeGoals{f} }

type fakeActivities struct{ p *fakeStore }

func (a *fakeActivities) Create(_ context.Context, in *model.Activity) (*model.Activity, error) {
	rec := *in
	rec.ID = "act-1"
	rec.CreatedAt = time.Now().UTC()
	a.p.activities = append(a.p.activities, &rec)
	return &rec, nil
}

func (a *fakeActivities) List(_ context.Context, userID string, r model.ListRange) ([]*model.Activity, error) {
	var out []*model.Activity
	for _, rec := range a.p.activities {
		if rec.UserID != userID {
			continue
		}
		if !r.Start.IsZero() && rec.StartTime.Before(r.Start) {
			continue
		}
		if !r.End.IsZero() && rec.StartTime.After(r.End) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

type fakeInterruptions struct{ p *fakeStore }

func (s *fakeInterruptions) Create(_ context.Context, in *model.Interruption) (*model.Interruption, error) {
	rec := *in
	rec.ID = "int-1"
	rec.CreatedAt = time.Now().UTC()
	s.p.interruptions = append(s.p.interruptions, &rec)
	return &rec, nil
}

func (s *fakeInterruptions) List(_ context.Context, userID string, r model.ListRange) ([]*model.Interruption, error) {
	var out []*model.Interruption
	for _, rec := range s.p.interruptions {
		if rec.UserID != userID {
			continue
		}
		if !r.Start.IsZero() && rec.Time.Before(r.Start) {
			continue
		}
		if !r.End.IsZero() && rec.Time.After(r.End) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

type fakePlans struct{ p *fakeStore }

func (s *fakePlans) Upsert(_ context.Context, p *model.DailyPlan) (*model.DailyPlan, error) {
	rec := *p
	if existing, ok := s.p.plans[p.Date]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.ID = "plan-" + p.Date
		rec.CreatedAt = time.Now().UTC()
	}
	s.p.plans[p.Date] = &rec
	return &rec, nil
}

func (s *fakePlans) GetByDate(_ context.Context, _, date string) (*model.DailyPlan, error) {
	if p, ok := s.plansFor(date); ok {
		return p, nil
	}
	return nil, model.ErrNotFound
}

func (s *fakePlans) plansFor(date string) (*model.DailyPlan, bool) {
	p, ok := s.p.plans[date]
	return p, ok
}

type fakeReviews struct{ p *fakeStore }

func (s *fakeReviews) GetByDate(_ context.Context, _, date string) (*model.DailyReview, error) {
	if r, ok := s.p.reviews[date]; ok {
		return r, nil
	}
	return nil, model.ErrNotFound
}

func (s *fakeReviews) Upsert(_ context.Context, userID, date string, f model.ReviewFields) (*model.DailyReview, error) {
	r, ok := s.p.reviews[date]
	if !ok {
		r = &model.DailyReview{
			ID:        "rev-" + date,
			UserID:    userID,
			Date:      date,
			CreatedAt: time.Now().UTC(),
		}
		s.p.reviews[date] = r
	}
	if f.PlanID != nil {
		r.PlanID = f.PlanID
	}
	if f.GoalsMet != nil {
		r.GoalsMet = f.GoalsMet
	}
	if f.ActualFocusHours != nil {
		r.ActualFocusHours = f.ActualFocusHours
	}
	if f.WhatWorked != nil {
		r.WhatWorked = f.WhatWorked
	}
	if f.WhatDidnt != nil {
		r.WhatDidnt = f.WhatDidnt
	}
	if f.Why != nil {
		r.Why = f.Why
	}
	if f.Adjustment != nil {
		r.Adjustment = f.Adjustment
	}
	r.UpdatedAt = time.Now().UTC()
	return r, nil
}

func (s *fakeReviews) List(_ context.Context, _, startDate, endDate string) ([]*model.DailyReview, error) {
	var out []*model.DailyReview
	for date, r := range s.p.reviews {
		if startDate != "" && date < startDate {
			continue
		}
		if endDate != "" && date > endDate {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

type fakeGoals struct{ p *fakeStore }

func (s *fakeGoals) SetCompletion(_ context.Context, g model.GoalCompletion) error {
	state, ok := s.p.goals[g.Date]
	if !ok {
		state = model.GoalState{}
		s.p.goals[g.Date] = state
	}
	state[g.GoalIndex] = g.Completed
	return nil
}

func (s *fakeGoals) State(_ context.Context, _, date string) (model.GoalState, error) {
	state, ok := s.p.goals[date]
	if !ok {
		return model.GoalState{}, nil
	}
	return state, nil
}

// --- ActivityService ---

func TestLogActivityValidation(t *testing.T) {
	svc := NewActivityService(newFakeStore())
	ctx := context.Background()
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   model.Activity
	}{
		{"missing user", model.Activity{Category: model.CategoryWork, StartTime: start, EndTime: start.Add(time.Hour)}},
		{"unknown category", model.Activity{UserID: "u", Category: "Gardening", StartTime: start, EndTime: start.Add(time.Hour)}},
		{"end before start", model.Activity{UserID: "u", Category: model.CategoryWork, StartTime: start, EndTime: start.Add(-time.Minute)}},
		{"end equals start", model.Activity{UserID: "u", Category: model.CategoryWork, StartTime: start, EndTime: start}},
		{"over 24h", model.Activity{UserID: "u", Category: model.CategoryWork, StartTime: start, EndTime: start.Add(25 * time.Hour)}},
		{"bad energy cost", model.Activity{UserID: "u", Category: model.CategoryWork, StartTime: start, EndTime: start.Add(time.Hour), EnergyCost: ptr("extreme")}},
		{"bad work type", model.Activity{UserID: "u", Category: model.CategoryWork, StartTime: start, EndTime: start.Add(time.Hour), WorkType: ptr("turbo")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.in
			_, err := svc.LogActivity(ctx, &in)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}

func TestLogActivityNormalizesNote(t *testing.T) {
	fs := newFakeStore()
	svc := NewActivityService(fs)
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	created, err := svc.LogActivity(context.Background(), &model.Activity{
		UserID:    "u",
		Category:  model.CategoryCoding,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Note:      ptr("   "),
	})
	require.NoError(t, err)
	assert.Nil(t, created.Note, "blank note must be dropped, not stored as empty string")
}

// --- InterruptionService ---

func TestLogInterruptionValidation(t *testing.T) {
	svc := NewInterruptionService(newFakeStore())
	ctx := context.Background()
	at := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)

	_, err := svc.LogInterruption(ctx, &model.Interruption{
		UserID: "u", Time: at, Kind: "Doorbell",
	})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.LogInterruption(ctx, &model.Interruption{
		UserID: "u", Time: at, Kind: model.InterruptionPhone, DurationMinutes: ptr(0),
	})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.LogInterruption(ctx, &model.Interruption{
		UserID: "u", Time: at, Kind: model.InterruptionPhone, DurationMinutes: ptr(481),
	})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.LogInterruption(ctx, &model.Interruption{
		UserID: "u", Time: at, Kind: model.InterruptionPhone, EndTime: ptr(at.Add(-time.Minute)),
	})
	assert.ErrorIs(t, err, model.ErrValidation)

	created, err := svc.LogInterruption(ctx, &model.Interruption{
		UserID: "u", Time: at, Kind: model.InterruptionNoise,
	})
	require.NoError(t, err)
	assert.Nil(t, created.DurationMinutes)
}

// --- PlannerService ---

func TestSetPlanValidation(t *testing.T) {
	svc := NewPlannerService(newFakeStore())
	ctx := context.Background()

	_, err := svc.SetPlan(ctx, &model.DailyPlan{UserID: "u", Date: "01-04-2026"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.SetPlan(ctx, &model.DailyPlan{UserID: "u", Date: "2026-04-01", Goals: []string{"ok", "  "}})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.SetPlan(ctx, &model.DailyPlan{UserID: "u", Date: "2026-04-01", PlannedFocusHours: 25})
	assert.ErrorIs(t, err, model.ErrValidation)

	p, err := svc.SetPlan(ctx, &model.DailyPlan{
		UserID: "u", Date: "2026-04-01",
		Goals:             []string{"  write draft  "},
		PlannedFocusHours: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"write draft"}, p.Goals)
}

func TestToggleGoalBounds(t *testing.T) {
	fs := newFakeStore()
	svc := NewPlannerService(fs)
	ctx := context.Background()

	// no plan yet
	err := svc.ToggleGoal(ctx, model.GoalCompletion{UserID: "u", Date: "2026-04-02", GoalIndex: 0, Completed: true})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.SetPlan(ctx, &model.DailyPlan{
		UserID: "u", Date: "2026-04-02", Goals: []string{"a", "b"}, PlannedFocusHours: 2,
	})
	require.NoError(t, err)

	err = svc.ToggleGoal(ctx, model.GoalCompletion{UserID: "u", Date: "2026-04-02", GoalIndex: 2, Completed: true})
	assert.ErrorIs(t, err, model.ErrValidation)

	err = svc.ToggleGoal(ctx, model.GoalCompletion{UserID: "u", Date: "2026-04-02", GoalIndex: -1, Completed: true})
	assert.ErrorIs(t, err, model.ErrValidation)

	require.NoError(t, svc.ToggleGoal(ctx, model.GoalCompletion{UserID: "u", Date: "2026-04-02", GoalIndex: 1, Completed: true}))

	state, err := svc.GoalState(ctx, "u", "2026-04-02")
	require.NoError(t, err)
	assert.Equal(t, model.GoalState{1: true}, state)
}

// --- ReflectionService ---

func TestSaveReflectionUpsertConverges(t *testing.T) {
	fs := newFakeStore()
	svc := NewReflectionService(fs)
	ctx := context.Background()

	fields := model.ReviewFields{
		GoalsMet:   ptr(model.GoalsMetPartial),
		WhatWorked: ptr("focused morning"),
		WhatDidnt:  ptr("  "), // blank, must be dropped
	}
	a, err := svc.SaveReflection(ctx, "u", "2026-04-03", fields)
	require.NoError(t, err)
	assert.Nil(t, a.WhatDidnt)

	b, err := svc.SaveReflection(ctx, "u", "2026-04-03", fields)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID, "same-day save must update, never create a second review")
	require.NotNil(t, b.WhatWorked)
	assert.Equal(t, "focused morning", *b.WhatWorked)

	// partial update preserves earlier fields
	c, err := svc.SaveReflection(ctx, "u", "2026-04-03", model.ReviewFields{
		Adjustment: ptr("shorter meetings"),
	})
	require.NoError(t, err)
	require.NotNil(t, c.WhatWorked)
	require.NotNil(t, c.GoalsMet)
	assert.Equal(t, model.GoalsMetPartial, *c.GoalsMet)
}

func TestSaveReflectionValidation(t *testing.T) {
	svc := NewReflectionService(newFakeStore())
	ctx := context.Background()

	bad := model.GoalsMet("mostly")
	_, err := svc.SaveReflection(ctx, "u", "2026-04-03", model.ReviewFields{GoalsMet: &bad})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.SaveReflection(ctx, "u", "2026-04-03", model.ReviewFields{ActualFocusHours: ptr(-1.0)})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.SaveReflection(ctx, "u", "not-a-date", model.ReviewFields{})
	assert.ErrorIs(t, err, model.ErrValidation)
}

// --- AnalyticsService ---

func seedDay(t *testing.T, fs *fakeStore, userID string, day time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := fs.Activities().Create(ctx, &model.Activity{
		UserID:    userID,
		Category:  model.CategoryCoding,
		StartTime: day.Add(9 * time.Hour),
		EndTime:   day.Add(10*time.Hour + 30*time.Minute),
	})
	require.NoError(t, err)
	_, err = fs.Activities().Create(ctx, &model.Activity{
		UserID:    userID,
		Category:  model.CategoryRest,
		StartTime: day.Add(12 * time.Hour),
		EndTime:   day.Add(12*time.Hour + 30*time.Minute),
	})
	require.NoError(t, err)
	_, err = fs.Interruptions().Create(ctx, &model.Interruption{
		UserID:          userID,
		Time:            day.Add(9*time.Hour + 45*time.Minute),
		DurationMinutes: ptr(10),
		Kind:            model.InterruptionPhone,
	})
	require.NoError(t, err)
}

func TestDailySummaryEndToEnd(t *testing.T) {
	fs := newFakeStore()
	day := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	seedDay(t, fs, "u", day)

	planner := NewPlannerService(fs)
	_, err := planner.SetPlan(context.Background(), &model.DailyPlan{
		UserID: "u", Date: "2026-04-06",
		Goals:             []string{"a", "b"},
		PlannedFocusHours: 1.5,
	})
	require.NoError(t, err)
	require.NoError(t, planner.ToggleGoal(context.Background(),
		model.GoalCompletion{UserID: "u", Date: "2026-04-06", GoalIndex: 0, Completed: true}))

	svc := NewAnalyticsService(fs, time.UTC)
	sum, err := svc.DailySummary(context.Background(), "u", "2026-04-06")
	require.NoError(t, err)

	assert.True(t, sum.HasPlan)
	assert.Equal(t, 1.5, sum.ActualFocusHours, "rest blocks must not count toward focus")
	assert.Equal(t, 100, sum.TimeAccuracy)
	assert.Equal(t, 100, sum.FocusProgress)
	assert.Equal(t, aggregate.NarrativeGreat, sum.Narrative)
	assert.Equal(t, 2, sum.GoalsTotal)
	assert.Equal(t, 1, sum.GoalsCompleted)
	assert.Equal(t, 50, sum.GoalsProgress)
	assert.Equal(t, 10.0, sum.InterruptionMinutes)
	assert.Equal(t, 1, sum.InterruptionCount)
}

func TestDailySummaryWithoutPlan(t *testing.T) {
	fs := newFakeStore()
	day := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	seedDay(t, fs, "u", day)

	svc := NewAnalyticsService(fs, time.UTC)
	sum, err := svc.DailySummary(context.Background(), "u", "2026-04-07")
	require.NoError(t, err)

	assert.False(t, sum.HasPlan)
	assert.Empty(t, sum.Narrative)
	assert.Equal(t, 1.5, sum.ActualFocusHours)
	assert.Zero(t, sum.GoalsTotal)
	assert.Zero(t, sum.TimeAccuracy)
}

func TestAnalyticsWindows(t *testing.T) {
	fs := newFakeStore()
	today := time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedDay(t, fs, "u", today.Truncate(24*time.Hour).AddDate(0, 0, -i))
	}

	svc := NewAnalyticsService(fs, time.UTC).WithNow(func() time.Time { return today })

	breakdown, err := svc.Breakdown(context.Background(), "u", 30)
	require.NoError(t, err)
	require.Len(t, breakdown, 2)
	assert.Equal(t, model.CategoryCoding, breakdown[0].Category)
	assert.Equal(t, 270.0, breakdown[0].TotalMinutes)

	streaks, err := svc.Streaks(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, 3, streaks.CurrentStreak)
	assert.Equal(t, 3, streaks.DaysWithActivity)

	sum, err := svc.Summary(context.Background(), "u", 30)
	require.NoError(t, err)
	assert.Equal(t, 4.5, sum.TotalFocusHours)
	assert.Equal(t, 1.5, sum.AvgDailyFocusHours)
	assert.Equal(t, 30.0, sum.TotalInterruptionMinutes)
	assert.Equal(t, 3, sum.Streaks.CurrentStreak)

	insights, err := svc.Insights(context.Background(), "u", 30)
	require.NoError(t, err)
	assert.Contains(t, insights.PeakFocusWindow, "09:00 - 10:00")
}
