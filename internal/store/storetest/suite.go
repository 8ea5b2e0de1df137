// Package storetest holds a backend-agnostic conformance suite for the
// Store contract. Each driver package runs it against a real instance.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daylog/daylog/server/internal/model"
	"github.com/daylog/daylog/server/internal/store"
)

func ptr[T any](v T) *T { return &v }

// RunStoreTests exercises the full Store contract against s.
func RunStoreTests(t *testing.T, s store.Store) {
	t.Run("ActivityCreateAndList", func(t *testing.T) { testActivities(t, s) })
	t.Run("ActivityRangeFilter", func(t *testing.T) { testActivityRange(t, s) })
	t.Run("InterruptionCreateAndList", func(t *testing.T) { testInterruptions(t, s) })
	t.Run("PlanUpsertReplacesGoals", func(t *testing.T) { testPlanUpsert(t, s) })
	t.Run("PlanGetMissing", func(t *testing.T) { testPlanMissing(t, s) })
	t.Run("ReviewUpsertMergesFields", func(t *testing.T) { testReviewUpsert(t, s) })
	t.Run("ReviewUpsertIdempotent", func(t *testing.T) { testReviewIdempotent(t, s) })
	t.Run("ReviewList", func(t *testing.T) { testReviewList(t, s) })
	t.Run("GoalCompletionRoundTrip", func(t *testing.T) { testGoals(t, s) })
}

func testActivities(t *testing.T, s store.Store) {
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// insert out of order; List must return ascending by start time
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		_, err := s.Activities().Create(ctx, &model.Activity{
			UserID:    "user-act",
			Category:  model.CategoryCoding,
			StartTime: base.Add(offset),
			EndTime:   base.Add(offset + 30*time.Minute),
			Note:      ptr("block"),
		})
		require.NoError(t, err)
	}

	got, err := s.Activities().List(ctx, "user-act", model.ListRange{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].StartTime.Before(got[i-1].StartTime))
	}
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].CreatedAt.IsZero())
	require.NotNil(t, got[0].Note)
	assert.Equal(t, "block", *got[0].Note)
}

func testActivityRange(t *testing.T, s store.Store) {
	ctx := context.Background()
	base := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		_, err := s.Activities().Create(ctx, &model.Activity{
			UserID:    "user-range",
			Category:  model.CategoryStudy,
			StartTime: base.AddDate(0, 0, i),
			EndTime:   base.AddDate(0, 0, i).Add(time.Hour),
		})
		require.NoError(t, err)
	}

	got, err := s.Activities().List(ctx, "user-range", model.ListRange{
		Start: base.AddDate(0, 0, 1),
		End:   base.AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func testInterruptions(t *testing.T, s store.Store) {
	ctx := context.Background()
	at := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)

	created, err := s.Interruptions().Create(ctx, &model.Interruption{
		UserID:          "user-int",
		Time:            at,
		DurationMinutes: ptr(12),
		Kind:            model.InterruptionPhone,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// end-time variant, duration left nil
	_, err = s.Interruptions().Create(ctx, &model.Interruption{
		UserID:  "user-int",
		Time:    at.Add(time.Hour),
		EndTime: ptr(at.Add(time.Hour + 8*time.Minute)),
		Kind:    model.InterruptionNoise,
	})
	require.NoError(t, err)

	got, err := s.Interruptions().List(ctx, "user-int", model.ListRange{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].DurationMinutes)
	assert.Equal(t, 12, *got[0].DurationMinutes)
	assert.Nil(t, got[0].EndTime)
	assert.Nil(t, got[1].DurationMinutes)
	require.NotNil(t, got[1].EndTime)
}

func testPlanUpsert(t *testing.T, s store.Store) {
	ctx := context.Background()

	first, err := s.Plans().Upsert(ctx, &model.DailyPlan{
		UserID:            "user-plan",
		Date:              "2026-03-13",
		Goals:             []string{"draft report", "review PRs"},
		PlannedFocusHours: 5,
	})
	require.NoError(t, err)
	assert.Len(t, first.Goals, 2)

	second, err := s.Plans().Upsert(ctx, &model.DailyPlan{
		UserID:            "user-plan",
		Date:              "2026-03-13",
		Goals:             []string{"ship release"},
		PlannedFocusHours: 3.5,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ship release"}, second.Goals)
	assert.Equal(t, 3.5, second.PlannedFocusHours)

	got, err := s.Plans().GetByDate(ctx, "user-plan", "2026-03-13")
	require.NoError(t, err)
	assert.Equal(t, []string{"ship release"}, got.Goals)
}

func testPlanMissing(t *testing.T, s store.Store) {
	_, err := s.Plans().GetByDate(context.Background(), "user-plan", "1999-01-01")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func testReviewUpsert(t *testing.T, s store.Store) {
	ctx := context.Background()
	const user, date = "user-rev", "2026-03-14"

	first, err := s.Reviews().Upsert(ctx, user, date, model.ReviewFields{
		WhatWorked: ptr("morning deep work"),
		GoalsMet:   ptr(model.GoalsMetPartial),
	})
	require.NoError(t, err)
	assert.Equal(t, date, first.Date)
	require.NotNil(t, first.WhatWorked)

	// second write touches different fields; earlier ones must survive
	second, err := s.Reviews().Upsert(ctx, user, date, model.ReviewFields{
		Adjustment:       ptr("start before 9am"),
		ActualFocusHours: ptr(4.5),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.WhatWorked)
	assert.Equal(t, "morning deep work", *second.WhatWorked)
	require.NotNil(t, second.GoalsMet)
	assert.Equal(t, model.GoalsMetPartial, *second.GoalsMet)
	require.NotNil(t, second.Adjustment)
	assert.Equal(t, "start before 9am", *second.Adjustment)
	require.NotNil(t, second.ActualFocusHours)
	assert.Equal(t, 4.5, *second.ActualFocusHours)
}

func testReviewIdempotent(t *testing.T, s store.Store) {
	ctx := context.Background()
	const user, date = "user-rev-idem", "2026-03-15"

	fields := model.ReviewFields{Why: ptr("slept badly")}
	a, err := s.Reviews().Upsert(ctx, user, date, fields)
	require.NoError(t, err)
	b, err := s.Reviews().Upsert(ctx, user, date, fields)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	require.NotNil(t, b.Why)
	assert.Equal(t, *a.Why, *b.Why)

	got, err := s.Reviews().GetByDate(ctx, user, date)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func testReviewList(t *testing.T, s store.Store) {
	ctx := context.Background()
	const user = "user-rev-list"

	for _, date := range []string{"2026-03-01", "2026-03-02", "2026-03-03"} {
		_, err := s.Reviews().Upsert(ctx, user, date, model.ReviewFields{
			WhatWorked: ptr("entry " + date),
		})
		require.NoError(t, err)
	}

	got, err := s.Reviews().List(ctx, user, "2026-03-02", "2026-03-03")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// newest first
	assert.Equal(t, "2026-03-03", got[0].Date)
	assert.Equal(t, "2026-03-02", got[1].Date)
}

func testGoals(t *testing.T, s store.Store) {
	ctx := context.Background()
	const user, date = "user-goals", "2026-03-16"

	require.NoError(t, s.Goals().SetCompletion(ctx, model.GoalCompletion{
		UserID: user, Date: date, GoalIndex: 0, Completed: true,
	}))
	require.NoError(t, s.Goals().SetCompletion(ctx, model.GoalCompletion{
		UserID: user, Date: date, GoalIndex: 2, Completed: true,
	}))
	// toggling the same index overwrites, never duplicates
	require.NoError(t, s.Goals().SetCompletion(ctx, model.GoalCompletion{
		UserID: user, Date: date, GoalIndex: 2, Completed: false,
	}))

	state, err := s.Goals().State(ctx, user, date)
	require.NoError(t, err)
	assert.Equal(t, model.GoalState{0: true, 2: false}, state)

	empty, err := s.Goals().State(ctx, user, "2026-03-17")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
