package store

import (
	"context"

	"github.com/daylog/daylog/server/internal/model"
)

// Store exposes the record collections the engine aggregates over.
// Implementations live under internal/store/<driver>/ (sqlite, postgres,
// remote); the aggregation core never branches on which backend is active.
type Store interface {
	Activities() Activities
	Interruptions() Interruptions
	Plans() Plans
	Reviews() Reviews
	Goals() Goals
}

type Activities interface {
	Create(ctx context.Context, a *model.Activity) (*model.Activity, error)
	// List returns activities ordered by start time ascending. Zero range
	// bounds mean unbounded.
	List(ctx context.Context, userID string, r model.ListRange) ([]*model.Activity, error)
}

type Interruptions interface {
	Create(ctx context.Context, i *model.Interruption) (*model.Interruption, error)
	List(ctx context.Context, userID string, r model.ListRange) ([]*model.Interruption, error)
}

type Plans interface {
	// Upsert stores the plan for its date, replacing goals and the focus
	// budget of an existing plan for the same day.
	Upsert(ctx context.Context, p *model.DailyPlan) (*model.DailyPlan, error)
	GetByDate(ctx context.Context, userID, date string) (*model.DailyPlan, error)
}

type Reviews interface {
	GetByDate(ctx context.Context, userID, date string) (*model.DailyReview, error)
	// Upsert merges the provided fields into the review for (userID, date),
	// creating it when absent. Nil fields leave stored values untouched.
	// The date-uniqueness invariant is enforced here, not by callers.
	Upsert(ctx context.Context, userID, date string, f model.ReviewFields) (*model.DailyReview, error)
	// List returns reviews with startDate <= date <= endDate, newest first.
	// Empty bounds mean unbounded.
	List(ctx context.Context, userID, startDate, endDate string) ([]*model.DailyReview, error)
}

type Goals interface {
	SetCompletion(ctx context.Context, g model.GoalCompletion) error
	State(ctx context.Context, userID, date string) (model.GoalState, error)
}
